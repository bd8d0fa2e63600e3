package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/vi-voxel/asset"
	"github.com/lixenwraith/vi-voxel/audio"
	"github.com/lixenwraith/vi-voxel/config"
	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/data"
	"github.com/lixenwraith/vi-voxel/input"
	"github.com/lixenwraith/vi-voxel/render"
)

var (
	configFlag  = flag.String("config", "voxelworld.toml", "Config file, defaults apply when missing")
	profileFlag = flag.String("profile", "", "Profile mode: cpu, mem")
	initFlag    = flag.Bool("init", false, "Write the default config to -config and exit")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "voxelworld: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *initFlag {
		return writeDefaultConfig(*configFlag)
	}

	cfg, err := config.LoadOrDefault(*configFlag)
	if err != nil {
		return eris.Wrap(err, "load config")
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return eris.Wrap(err, "init logger")
	}
	defer log.Sync()

	mode, err := profileMode(*profileFlag)
	if err != nil {
		return err
	}
	if mode != nil {
		defer profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	palette, err := loadPalette(cfg.Paths.Palette)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return eris.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return eris.Wrap(err, "init screen")
	}
	defer screen.Fini()
	core.SetCrashScreen(screen)
	screen.EnableMouse()
	screen.HideCursor()

	var sound audio.Player = audio.Nop{}
	if cfg.Audio.Enabled {
		synth := audio.NewSynth(cfg.Audio.SampleRate, cfg.Audio.Volume, log.Named("audio"))
		if err := synth.Init(); err != nil {
			log.Warn("audio unavailable, continuing silent", zap.Error(err))
		} else {
			sound = synth
			defer synth.Close()
		}
	}

	g, err := newGame(cfg, palette, render.NewTerminal(screen), sound, log)
	if err != nil {
		return err
	}
	defer g.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pump := input.NewPump(screen, g.world.Queue, input.NewTranslator(input.DefaultHold), log.Named("input"))
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		// A closed screen returns nil, the loop still has to stop
		defer cancel()
		return pump.Run(gctx)
	})
	group.Go(func() error { return g.loop(gctx) })

	err = group.Wait()
	if errors.Is(err, input.ErrQuit) {
		log.Info("quit requested")
		return nil
	}
	return err
}

// profileMode maps the -profile flag to a profile option, nil when profiling is off
func profileMode(name string) (func(*profile.Profile), error) {
	switch name {
	case "":
		return nil, nil
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfileAllocs, nil
	}
	return nil, eris.Errorf("unknown profile mode %q", name)
}

func loadPalette(path string) (*data.Palette, error) {
	if path == "" {
		return data.DefaultPalette(), nil
	}
	p, err := data.LoadPalette(path)
	if err != nil {
		return nil, eris.Wrapf(err, "load palette %s", path)
	}
	return p, nil
}

// writeDefaultConfig refuses to overwrite an existing file
func writeDefaultConfig(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	if _, err := f.WriteString(asset.DefaultConfig); err != nil {
		f.Close()
		return eris.Wrapf(err, "write %s", path)
	}
	return f.Close()
}

// newLogger writes to cfg.File since the terminal owns stdout and stderr while running
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
