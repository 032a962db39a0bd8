// Package term runs the simulation inside a terminal. Every character cell
// shows two stacked pixels: the upper half block takes the top pixel as its
// foreground and the bottom pixel as its background.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/gravity-sim-go/input"
	"github.com/olivierh59500/gravity-sim-go/raster"
	"github.com/olivierh59500/gravity-sim-go/sim"
	"github.com/olivierh59500/gravity-sim-go/space"
)

const halfBlock = '▀'

// MergeCue is notified of the merge count after every frame.
type MergeCue interface {
	Merge(n int) bool
}

// Frontend feeds terminal events into the simulation and paints its frames.
type Frontend struct {
	screen tcell.Screen
	sim    *sim.Simulation
	in     *input.Reducer
	cue    MergeCue
	timer  *sim.FrameTimer

	// Terminals report presses only. Every key is released again after
	// the frame that saw it.
	pending []input.Key
}

// New wires s to screen. The screen is initialized by Run. cue may be nil.
func New(screen tcell.Screen, s *sim.Simulation, cue MergeCue) *Frontend {
	cfg := s.Config()
	return &Frontend{
		screen: screen,
		sim:    s,
		in:     input.NewReducer(cfg.KeyCooldown(), cfg.DragThreshold),
		cue:    cue,
		timer:  sim.NewFrameTimer(int(cfg.TargetFPS)),
	}
}

// Run drives the simulation at the configured frame rate until the user
// quits or ctx is cancelled.
func (f *Frontend) Run(ctx context.Context) error {
	if err := f.screen.Init(); err != nil {
		return fmt.Errorf("term: init screen: %w", err)
	}
	defer f.screen.Fini()
	f.screen.EnableMouse()
	f.screen.HideCursor()
	f.resize(f.screen.Size())

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	interval := time.Duration(float64(time.Second) / f.sim.Config().TargetFPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !f.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			f.frame(now)
		}
	}
}

// handle applies one terminal event. It returns false when the user asked
// to quit.
func (f *Frontend) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuit(ev) {
			return false
		}
		if k, ok := mapKey(ev); ok {
			f.in.KeyDown(k)
			f.pending = append(f.pending, k)
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		f.in.MouseMove(cellToScreen(x, y))
		f.in.MouseButton(ev.Buttons()&tcell.Button1 != 0)
	case *tcell.EventResize:
		f.resize(ev.Size())
		f.screen.Sync()
	}
	return true
}

func (f *Frontend) frame(now time.Time) {
	f.sim.Update(f.in)
	for _, k := range f.pending {
		f.in.KeyUp(k)
	}
	f.pending = f.pending[:0]

	v := f.sim.View()
	f.draw(v)
	if f.cue != nil {
		f.cue.Merge(v.Merges)
	}
	if f.timer.Tick(now) {
		sim.Logger().Debug("fps", "fps", f.timer.FPS(), "particles", v.Particles)
	}
}

// resize maps a terminal of cols x rows cells to cols x 2*rows pixels.
func (f *Frontend) resize(cols, rows int) {
	f.sim.Resize(space.V[int, space.Screen](cols, rows*2))
}

func (f *Frontend) draw(v sim.View) {
	cols, rows := f.screen.Size()
	bg := f.sim.Config().Palette.Background
	for cy := range rows {
		for cx := range cols {
			top := pixel(v, cx, 2*cy, bg)
			bottom := pixel(v, cx, 2*cy+1, bg)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			f.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
	f.screen.Show()
}

// pixel samples the buffer cell under screen pixel (x, y), or fallback when
// the pixel lies past the buffer's edge.
func pixel(v sim.View, x, y int, fallback raster.Color) raster.Color {
	scale := max(1, v.Scale)
	bx, by := x/scale, y/scale
	if x < 0 || y < 0 || bx >= v.Size.X || by >= v.Size.Y {
		return fallback
	}
	i := (by*v.Size.X + bx) * 4
	p := v.Pixels[i : i+4 : i+4]
	return raster.Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func rgb(c raster.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func cellToScreen(x, y int) space.Vec2[float64, space.Screen] {
	return space.V[float64, space.Screen](float64(x), float64(y*2))
}
