package sim

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/olivierh59500/gravity-sim-go/raster"
	"github.com/olivierh59500/gravity-sim-go/space"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := cfg.KeyCooldown(); got != 100*time.Millisecond {
		t.Errorf("KeyCooldown = %v, want 100ms", got)
	}
	if got := cfg.Dt(); got != 1.0/60 {
		t.Errorf("Dt = %v, want 1/60", got)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scale = 0
	cfg.Damping = 1.5
	cfg.Seed = "spiral"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate accepted a broken config")
	}
	for _, want := range []string{"scale 0", "damping 1.5", `"spiral"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.json")
	data := `{
		"scale": 4,
		"seed": "nebula",
		"palette": {"particle": "#ff8000"}
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Scale != 4 || cfg.Seed != SeedNebula {
		t.Errorf("overlay not applied: scale=%d seed=%q", cfg.Scale, cfg.Seed)
	}
	if want := raster.RGB(255, 128, 0); cfg.Palette.Particle != want {
		t.Errorf("particle color = %v, want %v", cfg.Palette.Particle, want)
	}
	def := DefaultConfig()
	if cfg.WindowWidth != def.WindowWidth || cfg.GravConst != def.GravConst {
		t.Error("keys missing from the file lost their defaults")
	}
	if cfg.Palette.Background != def.Palette.Background {
		t.Errorf("background = %v, want default %v", cfg.Palette.Background, def.Palette.Background)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file accepted")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"scale": `), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("truncated JSON accepted")
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"target_fps": 0}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(invalid); err == nil {
		t.Error("target_fps 0 accepted")
	}

	color := filepath.Join(dir, "color.json")
	if err := os.WriteFile(color, []byte(`{"palette": {"cursor": "lime"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(color); err == nil {
		t.Error("named color accepted")
	}
}

func TestWriteConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Physics = PhysicsCursor
	cfg.Palette.Guide = raster.RGB(1, 2, 3)

	var buf bytes.Buffer
	if err := WriteConfig(&buf, cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if !strings.Contains(buf.String(), `"guide": "#010203"`) {
		t.Errorf("guide color not written as hex:\n%s", buf.String())
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip changed config:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestSeedModes(t *testing.T) {
	cfg := DefaultConfig()
	size := space.V[int, space.Render](266, 200)

	cfg.Seed = SeedEmpty
	if ps := seedParticles(cfg, size); len(ps) != 0 {
		t.Errorf("empty seed gave %d particles", len(ps))
	}

	cfg.Seed = SeedBinary
	ps := seedParticles(cfg, size)
	if len(ps) != 2 {
		t.Fatalf("binary seed gave %d particles, want 2", len(ps))
	}
	for _, p := range ps {
		if p.Radius != cfg.SunRadius || p.Vel != (vec{}) {
			t.Errorf("sun %+v, want radius %v at rest", p, cfg.SunRadius)
		}
	}
}
