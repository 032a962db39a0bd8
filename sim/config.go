package sim

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olivierh59500/gravity-sim-go/raster"
)

// SeedMode selects the particles present at startup and after a reset.
type SeedMode string

const (
	SeedBinary SeedMode = "binary" // two suns
	SeedEmpty  SeedMode = "empty"
	SeedNebula SeedMode = "nebula" // Perlin-noise dust field
)

// PhysicsMode selects the force model. Exactly one is active.
type PhysicsMode string

const (
	PhysicsGravity PhysicsMode = "gravity" // pairwise Newtonian with merging
	PhysicsCursor  PhysicsMode = "cursor"  // every particle pulled toward the cursor
)

// Palette holds the colors written into the pixel buffer.
type Palette struct {
	Background raster.Color `json:"background"`
	Particle   raster.Color `json:"particle"`
	Cursor     raster.Color `json:"cursor"`
	Guide      raster.Color `json:"guide"`
}

// Config is the tuning surface of the simulation. Zero values are not
// meaningful; start from DefaultConfig.
type Config struct {
	WindowWidth  int     `json:"window_width"`
	WindowHeight int     `json:"window_height"`
	Scale        int     `json:"scale"`     // screen pixels per buffer cell
	MaxScale     int     `json:"max_scale"` // upper bound for Scale
	DrawSize     int     `json:"draw_size"` // brush size
	MaxDrawSize  int     `json:"max_draw_size"`
	TargetFPS    float64 `json:"target_fps"` // physics assumes dt = 1/TargetFPS

	GravConst   float64 `json:"grav_const"`
	Damping     float64 `json:"damping"`      // velocity multiplier per step
	MergeFactor float64 `json:"merge_factor"` // merge when distance < factor * larger radius
	Density     float64 `json:"density"`      // density of drawn particles
	Workers     int     `json:"workers"`      // force pass goroutines, 0 = GOMAXPROCS

	CursorPull        float64 `json:"cursor_pull"`
	CursorRepelRadius float64 `json:"cursor_repel_radius"`

	CameraSpeed        float64 `json:"camera_speed"`
	CameraDamping      float64 `json:"camera_damping"`
	DrawbackMultiplier float64 `json:"drawback_multiplier"`
	KeyCooldownMS      int     `json:"key_cooldown_ms"`
	DragThreshold      float64 `json:"drag_threshold"` // screen pixels

	Seed       SeedMode    `json:"seed"`
	SunRadius  float64     `json:"sun_radius"`
	SunDensity float64     `json:"sun_density"`
	NoiseSeed  int64       `json:"noise_seed"`
	Physics    PhysicsMode `json:"physics"`

	Palette Palette `json:"palette"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		WindowWidth:  800,
		WindowHeight: 600,
		Scale:        3,
		MaxScale:     10,
		DrawSize:     8,
		MaxDrawSize:  500,
		TargetFPS:    60,

		GravConst:   0.1,
		Damping:     0.999,
		MergeFactor: 0.95,
		Density:     5.514,

		CursorPull:        2,
		CursorRepelRadius: 5,

		CameraSpeed:        0.1,
		CameraDamping:      0.97,
		DrawbackMultiplier: 20,
		KeyCooldownMS:      100,
		DragThreshold:      4,

		Seed:       SeedBinary,
		SunRadius:  20,
		SunDensity: 10,
		NoiseSeed:  1,
		Physics:    PhysicsGravity,

		Palette: Palette{
			Background: raster.Background,
			Particle:   raster.White,
			Cursor:     raster.Green,
			Guide:      raster.Red,
		},
	}
}

// KeyCooldown is the minimum gap between two accepted taps of one key.
func (c Config) KeyCooldown() time.Duration {
	return time.Duration(c.KeyCooldownMS) * time.Millisecond
}

// Dt is the fixed step applied to forces. It does not follow wall-clock
// time: a slow frame slows the simulation down.
func (c Config) Dt() float64 {
	return 1 / c.TargetFPS
}

// Validate reports every out-of-range setting.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.WindowWidth > 0 && c.WindowHeight > 0, "window size %dx%d must be positive", c.WindowWidth, c.WindowHeight)
	check(c.MaxScale >= 1, "max_scale %d must be >= 1", c.MaxScale)
	check(c.Scale >= 1 && c.Scale <= c.MaxScale, "scale %d must be in [1, %d]", c.Scale, c.MaxScale)
	check(c.MaxDrawSize >= 1, "max_draw_size %d must be >= 1", c.MaxDrawSize)
	check(c.DrawSize >= 1 && c.DrawSize <= c.MaxDrawSize, "draw_size %d must be in [1, %d]", c.DrawSize, c.MaxDrawSize)
	check(c.TargetFPS > 0, "target_fps %v must be positive", c.TargetFPS)
	check(c.GravConst >= 0, "grav_const %v must not be negative", c.GravConst)
	check(c.Damping > 0 && c.Damping <= 1, "damping %v must be in (0, 1]", c.Damping)
	check(c.CameraDamping >= 0 && c.CameraDamping < 1, "camera_damping %v must be in [0, 1)", c.CameraDamping)
	check(c.MergeFactor >= 0, "merge_factor %v must not be negative", c.MergeFactor)
	check(c.Density > 0 && c.SunDensity > 0, "densities must be positive")
	check(c.SunRadius > 0, "sun_radius %v must be positive", c.SunRadius)
	check(c.Workers >= 0, "workers %d must not be negative", c.Workers)
	check(c.KeyCooldownMS >= 0, "key_cooldown_ms %d must not be negative", c.KeyCooldownMS)
	check(c.DragThreshold >= 0, "drag_threshold %v must not be negative", c.DragThreshold)
	switch c.Seed {
	case SeedBinary, SeedEmpty, SeedNebula:
	default:
		errs = append(errs, fmt.Errorf("unknown seed mode %q", c.Seed))
	}
	switch c.Physics {
	case PhysicsGravity, PhysicsCursor:
	default:
		errs = append(errs, fmt.Errorf("unknown physics mode %q", c.Physics))
	}
	if len(errs) > 0 {
		return fmt.Errorf("sim: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// LoadConfig reads a JSON file over DefaultConfig. Keys missing from the
// file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("sim: read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("sim: parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WriteConfig writes cfg as indented JSON.
func WriteConfig(w io.Writer, cfg Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("sim: encode config: %w", err)
	}
	return nil
}
