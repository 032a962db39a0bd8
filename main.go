package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/gravity-sim-go/audio"
	"github.com/olivierh59500/gravity-sim-go/sim"
	"github.com/olivierh59500/gravity-sim-go/term"
)

var (
	configPath = flag.String("config", "", "JSON config file laid over the defaults")
	termMode   = flag.Bool("term", false, "run in the terminal instead of a window")
	sound      = flag.Bool("sound", false, "play a tone when particles merge")
	debug      = flag.Bool("debug", false, "log at debug level")
	logPath    = flag.String("log", "", "append logs to this file (terminal mode discards them otherwise)")
	seedMode   = flag.String("seed", "", "initial particles: binary, empty or nebula")
	physics    = flag.String("physics", "", "force model: gravity or cursor")
	hud        = flag.Bool("hud", true, "show the status overlay in the window")
	dumpConfig = flag.Bool("dump-config", false, "print the effective config and exit")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logOut := io.Writer(os.Stderr)
	switch {
	case *logPath != "":
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	case *termMode:
		logOut = io.Discard // stderr shares the terminal
	}
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	sim.SetLogger(logger)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *dumpConfig {
		return sim.WriteConfig(os.Stdout, cfg)
	}

	s, err := sim.New(cfg)
	if err != nil {
		return err
	}
	logger.Info("simulation ready", "size", s.Size(), "particles", len(s.Particles()), "seed", cfg.Seed)

	var cue *audio.Cue
	if *sound {
		cue = audio.NewCue(audio.MinGap)
		if err := cue.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
			cue = nil
		} else {
			defer cue.Close()
		}
	}

	if *termMode {
		return runTerminal(s, cue)
	}
	return runWindow(s, cue)
}

func loadConfig() (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = sim.LoadConfig(*configPath); err != nil {
			return cfg, err
		}
	}
	if *seedMode != "" {
		cfg.Seed = sim.SeedMode(*seedMode)
	}
	if *physics != "" {
		cfg.Physics = sim.PhysicsMode(*physics)
	}
	return cfg, cfg.Validate()
}

func runWindow(s *sim.Simulation, cue *audio.Cue) error {
	cfg := s.Config()
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("Gravity Simulation")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(cfg.TargetFPS))

	var mc mergeCue
	if cue != nil {
		mc = cue
	}
	return ebiten.RunGame(NewGame(s, mc, *hud))
}

func runTerminal(s *sim.Simulation, cue *audio.Cue) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var mc term.MergeCue
	if cue != nil {
		mc = cue
	}
	err = term.New(screen, s, mc).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
