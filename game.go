package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/gravity-sim-go/input"
	"github.com/olivierh59500/gravity-sim-go/sim"
	"github.com/olivierh59500/gravity-sim-go/space"
)

// bindings maps window keys to simulation keys. Several window keys may
// share one simulation key.
var bindings = []struct {
	from ebiten.Key
	to   input.Key
}{
	{ebiten.KeySpace, input.KeySpace},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyArrowUp, input.KeyUp},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeyTab, input.KeyTab},
	{ebiten.KeyMinus, input.KeyMinus},
	{ebiten.KeyNumpadSubtract, input.KeyMinus},
	{ebiten.KeyEqual, input.KeyEqual},
	{ebiten.KeyNumpadAdd, input.KeyEqual},
	{ebiten.KeyC, input.KeyC},
	{ebiten.KeyR, input.KeyR},
	{ebiten.KeyG, input.KeyG},
	{ebiten.KeyW, input.KeyW},
	{ebiten.KeyA, input.KeyA},
	{ebiten.KeyS, input.KeyS},
	{ebiten.KeyD, input.KeyD},
}

var hudBackdrop = color.RGBA{0, 0, 0, 160}

// mergeCue is notified of the merge count after every frame.
type mergeCue interface {
	Merge(n int) bool
}

// Game adapts a Simulation to the ebiten game loop.
type Game struct {
	sim   *sim.Simulation
	in    *input.Reducer
	cue   mergeCue
	timer *sim.FrameTimer
	hud   bool

	canvas     *ebiten.Image
	canvasSize space.Vec2[int, space.Render]
	window     space.Vec2[int, space.Screen]
}

// NewGame wraps s. cue may be nil.
func NewGame(s *sim.Simulation, cue mergeCue, hud bool) *Game {
	cfg := s.Config()
	return &Game{
		sim:   s,
		in:    input.NewReducer(cfg.KeyCooldown(), cfg.DragThreshold),
		cue:   cue,
		timer: sim.NewFrameTimer(int(cfg.TargetFPS)),
		hud:   hud,
	}
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if ebiten.IsWindowMinimized() {
		return nil
	}

	g.pollInput()
	g.sim.Update(g.in)

	if g.cue != nil {
		g.cue.Merge(g.sim.View().Merges)
	}
	if g.timer.Tick(time.Now()) {
		sim.Logger().Debug("fps", "fps", g.timer.FPS(), "tps", ebiten.ActualTPS(), "particles", len(g.sim.Particles()))
	}
	return nil
}

func (g *Game) pollInput() {
	for _, b := range bindings {
		if inpututil.IsKeyJustPressed(b.from) {
			g.in.KeyDown(b.to)
		}
		if inpututil.IsKeyJustReleased(b.from) {
			g.in.KeyUp(b.to)
		}
	}
	mx, my := ebiten.CursorPosition()
	g.in.MouseMove(space.V[float64, space.Screen](float64(mx), float64(my)))
	g.in.MouseButton(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	v := g.sim.View()
	if g.canvas == nil || g.canvasSize != v.Size {
		if g.canvas != nil {
			g.canvas.Deallocate()
		}
		g.canvas = ebiten.NewImage(v.Size.X, v.Size.Y)
		g.canvasSize = v.Size
	}
	g.canvas.WritePixels(v.Pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(v.Scale), float64(v.Scale))
	screen.DrawImage(g.canvas, op)

	if g.hud {
		g.drawHUD(screen, v)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, v sim.View) {
	st := g.sim.State()
	vector.DrawFilledRect(screen, 0, 0, 230, 64, hudBackdrop, false)
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS %.0f  TPS %.0f\nparticles %d  merges %d\n%s  %s\nbrush %s %d  scale %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		v.Particles, v.Merges,
		st.Run, g.sim.Physics(),
		st.Shape, st.DrawSize, v.Scale,
	))
}

// Layout follows the window so one logical pixel is one screen pixel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := space.V[int, space.Screen](outsideWidth, outsideHeight)
	if w != g.window {
		g.window = w
		g.sim.Resize(w)
	}
	return max(1, outsideWidth), max(1, outsideHeight)
}
