package term

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/gravity-sim-go/input"
	"github.com/olivierh59500/gravity-sim-go/raster"
	"github.com/olivierh59500/gravity-sim-go/sim"
	"github.com/olivierh59500/gravity-sim-go/space"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want input.Key
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), input.KeySpace, true},
		{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), input.KeyW, true},
		{tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModShift), input.KeyD, true},
		{tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), input.KeyEqual, true},
		{tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone), input.KeyMinus, true},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), input.KeyRight, true},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), input.KeyTab, true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), 0, false},
	}
	for _, tt := range tests {
		got, ok := mapKey(tt.ev)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("mapKey(%s) = %v, %v; want %v, %v", tt.ev.Name(), got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsQuit(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
	} {
		if !isQuit(ev) {
			t.Errorf("%s does not quit", ev.Name())
		}
	}
	if isQuit(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone)) {
		t.Error("g quits")
	}
}

func TestPixelSamplesScaledBuffer(t *testing.T) {
	fallback := raster.RGB(9, 9, 9)
	red := raster.RGB(255, 0, 0)
	v := sim.View{
		Pixels: make([]byte, 2*2*4),
		Size:   space.V[int, space.Render](2, 2),
		Scale:  2,
	}
	copy(v.Pixels[12:16], []byte{red.R, red.G, red.B, red.A}) // cell (1, 1)

	tests := []struct {
		x, y int
		want raster.Color
	}{
		{0, 0, raster.Color{}},
		{2, 2, red},
		{3, 3, red},
		{4, 0, fallback},
		{0, 4, fallback},
		{-1, 0, fallback},
	}
	for _, tt := range tests {
		if got := pixel(v, tt.x, tt.y, fallback); got != tt.want {
			t.Errorf("pixel(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func newTestFrontend(t *testing.T) (*Frontend, *sim.Simulation, tcell.SimulationScreen) {
	t.Helper()
	cfg := sim.DefaultConfig()
	cfg.WindowWidth, cfg.WindowHeight = 40, 40
	cfg.Scale = 1
	cfg.Seed = sim.SeedEmpty
	cfg.Workers = 1
	s, err := sim.New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(20, 10)

	f := New(screen, s, nil)
	f.resize(screen.Size())
	return f, s, screen
}

func TestResizeDoublesRows(t *testing.T) {
	_, s, _ := newTestFrontend(t)
	if want := space.V[int, space.Render](20, 20); s.Size() != want {
		t.Errorf("size = %v, want %v", s.Size(), want)
	}
}

func TestKeysReleasedAfterFrame(t *testing.T) {
	f, s, _ := newTestFrontend(t)
	if !f.handle(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone)) {
		t.Fatal("g quit the frontend")
	}
	f.frame(time.Now())
	if s.Physics() != sim.PhysicsCursor {
		t.Errorf("physics = %v, want cursor", s.Physics())
	}
	if len(f.pending) != 0 {
		t.Errorf("%d keys still pending after the frame", len(f.pending))
	}
	if fr := f.in.Reduce(); fr.IsHeld(input.KeyG) {
		t.Error("g still held after the frame")
	}
	if f.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape did not quit")
	}
}

func TestMouseClickSpawns(t *testing.T) {
	f, s, _ := newTestFrontend(t)
	f.handle(tcell.NewEventMouse(5, 3, tcell.Button1, tcell.ModNone))
	f.frame(time.Now())
	f.handle(tcell.NewEventMouse(5, 3, tcell.ButtonNone, tcell.ModNone))
	f.frame(time.Now())

	ps := s.Particles()
	if len(ps) != 1 {
		t.Fatalf("%d particles after click, want 1", len(ps))
	}
	if want := space.V[float64, space.World](5, 6); ps[0].Pos != want {
		t.Errorf("spawned at %v, want %v", ps[0].Pos, want)
	}
}

func TestDrawUsesHalfBlocks(t *testing.T) {
	f, s, screen := newTestFrontend(t)
	f.handle(tcell.NewEventMouse(2, 1, tcell.ButtonNone, tcell.ModNone))
	f.frame(time.Now())

	r, _, style, _ := screen.GetContent(19, 9)
	if r != halfBlock {
		t.Errorf("cell rune = %q, want %q", r, halfBlock)
	}
	bg := rgb(s.Config().Palette.Background)
	if fg, back, _ := style.Decompose(); fg != bg || back != bg {
		t.Errorf("empty cell colors = %v/%v, want background", fg, back)
	}

	// cursor brush centered on pixel (2, 2), the top half of cell (2, 1)
	_, _, style, _ = screen.GetContent(2, 1)
	if fg, _, _ := style.Decompose(); fg != rgb(s.Config().Palette.Cursor) {
		t.Errorf("cursor cell foreground = %v, want cursor color", fg)
	}
}
