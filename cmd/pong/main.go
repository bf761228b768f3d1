// Command pong runs the example game on top of the scene engine.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/younwookim/pongkit/internal/application/engine"
	"github.com/younwookim/pongkit/internal/application/input"
	"github.com/younwookim/pongkit/internal/application/replay"
	"github.com/younwookim/pongkit/internal/application/scene"
	"github.com/younwookim/pongkit/internal/infrastructure/config"
	"github.com/younwookim/pongkit/internal/infrastructure/logging"
	"github.com/younwookim/pongkit/internal/infrastructure/perf"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "pong",
		Short:        "Pong built on the pongkit scene engine",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Flags parsed; run errors are logged, not echoed by cobra.
			cmd.SilenceErrors = true
			opts.changed = cmd.Flags().Changed
			return run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.settingsPath, "settings", config.DefaultSettingsPath, "Path to the settings file")
	f.StringVar(&opts.assetsDir, "assets", defaultAssetsDir, "Directory holding game assets")
	f.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	f.StringVar(&opts.logDir, "log-dir", defaultLogDir, "Directory for session log files; empty disables file logging")
	f.BoolVar(&opts.fullscreen, "fullscreen", false, "Start in fullscreen mode")
	f.StringVar(&opts.record, "record", "", "Record input to this file")
	f.StringVar(&opts.replay, "replay", "", "Play back a recorded input file")
	f.StringVar(&opts.perfCSV, "perf-csv", "", "Write section timings to this CSV file on exit")
	f.Int64Var(&opts.seed, "seed", 0, "Match random seed; 0 picks one from the clock")
	cmd.MarkFlagsMutuallyExclusive("record", "replay")

	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pong %s\n", version)
		},
	}
}

func run(parent context.Context, opts *options) error {
	env, envErr := config.LoadEnv(".env")
	cfg := opts.resolve(env)

	level := new(slog.LevelVar)
	level.Set(logging.ParseLevel(cfg.logLevel))

	var (
		out      io.Writer = os.Stderr
		noColor  bool
		logClose func()
	)
	if cfg.logDir != "" {
		f, err := logging.OpenFile(cfg.logDir, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "file logging disabled: %v\n", err)
		} else {
			async := logging.NewAsyncWriter(f, logging.DefaultBufferSize)
			out = io.MultiWriter(os.Stderr, async)
			noColor = true
			logClose = func() {
				_ = async.Close()
				_ = f.Close()
			}
		}
	}
	logger := logging.New(logging.Options{Writer: out, Level: level, NoColor: noColor})
	if logClose != nil {
		defer logClose()
	}
	if envErr != nil {
		logger.Warn("ignoring environment overrides", "err", envErr)
	}
	logger.Info("starting", "version", version, "settings", cfg.settingsPath, "assets", cfg.assetsDir)

	store := config.NewStore(cfg.settingsPath)
	settings, err := store.Load()
	if err != nil {
		logger.Warn("using default settings", "path", store.Path(), "err", err)
	}
	env.ApplyTo(&settings)
	if opts.changed("fullscreen") {
		settings.Display.Fullscreen = opts.fullscreen
	}
	settings = settings.Normalize()

	manifest, err := loadManifest(cfg.assetsDir)
	if err != nil {
		logger.Warn("using bundled asset manifest", "err", err)
		if manifest, err = bundledManifest(); err != nil {
			return fail(logger, fmt.Errorf("bundled manifest: %w", err))
		}
	}

	in, err := newInput(opts, settings.Display.FPSLimit)
	if err != nil {
		return fail(logger, err)
	}

	e := engine.New(engine.Options{
		Input:     in.src,
		Assets:    os.DirFS(cfg.assetsDir),
		Manifest:  manifest,
		Settings:  &settings,
		Store:     store,
		Logger:    logger,
		LogLevel:  level,
		BaseLevel: level.Level(),
		Monitor:   perf.New(),
		PerfCSV:   opts.perfCSV,
		FixedStep: in.step,
	})

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := start(ctx, e, in.seed); err != nil {
		return fail(logger, err)
	}

	runErr := e.Run(ctx)
	if in.rec != nil {
		if err := in.rec.Save(opts.record); err != nil {
			logger.Warn("replay not saved", "path", opts.record, "err", err)
		} else {
			logger.Info("replay saved", "path", opts.record, "frames", in.rec.FrameCount())
		}
	}
	if runErr != nil {
		return fail(logger, runErr)
	}
	logger.Info("exited cleanly", "frames", e.Frames())
	return nil
}

// start brings up the platform, preloads assets and enters the main menu.
// The platform comes first so the menu's Enter already has audio.
func start(ctx context.Context, e *engine.Engine, seed int64) error {
	if err := e.Initialize(); err != nil {
		return err
	}
	e.Preload(ctx)
	registerScenes(e.Services(), seed)
	e.Scenes().MustSwitchTo(scene.MainMenu)
	return nil
}

type inputSetup struct {
	src  input.Source
	rec  *replay.Recorder
	seed int64
	step float64
}

// newInput picks the input source. Recording and playback run on a fixed
// step so a replay reproduces the session.
func newInput(opts *options, fps int) (inputSetup, error) {
	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	switch {
	case opts.replay != "":
		data, err := replay.LoadReplay(opts.replay)
		if err != nil {
			return inputSetup{}, fmt.Errorf("load replay: %w", err)
		}
		r := replay.NewReplayer(*data)
		return inputSetup{src: r, seed: r.Seed(), step: r.FixedStep()}, nil
	case opts.record != "":
		step := 1 / float64(max(fps, 1))
		rec := replay.NewRecorder(input.NewEbitenSource(), seed, step)
		return inputSetup{src: rec, rec: rec, seed: seed, step: step}, nil
	}
	return inputSetup{src: input.NewEbitenSource(), seed: seed}, nil
}

func fail(logger *slog.Logger, err error) error {
	if errors.Is(err, engine.ErrPlatformInit) {
		logger.Error("cannot start", "err", err)
	} else {
		logger.Error("fatal", "err", err)
	}
	return err
}
