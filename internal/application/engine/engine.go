// Package engine runs the frame loop: it polls input, drives the scene
// manager and presents each frame.
package engine

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/pongkit/internal/application/input"
	"github.com/younwookim/pongkit/internal/application/scene"
	"github.com/younwookim/pongkit/internal/infrastructure/config"
	"github.com/younwookim/pongkit/internal/infrastructure/logging"
	"github.com/younwookim/pongkit/internal/infrastructure/perf"
	"github.com/younwookim/pongkit/internal/infrastructure/resource"
)

// ErrPlatformInit wraps display or audio bring-up failures. The process
// cannot continue after one.
var ErrPlatformInit = errors.New("platform initialization failed")

// Reserved hotkeys. They are consumed by the engine and never reach scenes.
const (
	KeyToggleDebug = ebiten.KeyF1
	KeyTogglePerf  = ebiten.KeyF2
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultTitle  = "Pong"
)

// Options configures an Engine. Zero values pick defaults.
type Options struct {
	Title         string
	Width, Height int
	// Scale multiplies the window size in windowed mode.
	Scale      int
	Background color.Color

	Platform Platform
	Input    input.Source
	// Assets resolves resource paths. nil means the working directory.
	Assets   fs.FS
	Manifest *config.Manifest

	// Settings is used as is when set. Otherwise it is loaded from Store,
	// falling back to defaults.
	Settings *config.Settings
	Store    *config.Store

	Logger *slog.Logger
	// LogLevel, when set, is toggled between debug and BaseLevel by F1.
	LogLevel  *slog.LevelVar
	BaseLevel slog.Level

	Monitor *perf.Monitor
	// PerfCSV is written with section statistics on shutdown.
	PerfCSV string

	// FixedStep, when positive, replaces the measured frame time. Replays
	// use it for deterministic playback.
	FixedStep float64
	Now       func() time.Time
}

// Engine owns the platform, scene manager, resources and performance
// monitor, and implements ebiten.Game.
type Engine struct {
	title         string
	width, height int
	scale         int
	background    color.Color

	platform  Platform
	source    input.Source
	manifest  *config.Manifest
	settings  *config.Settings
	store     *config.Store
	logger    *slog.Logger
	level     *slog.LevelVar
	baseLevel slog.Level
	monitor   *perf.Monitor
	perfCSV   string
	fixedStep float64
	now       func() time.Time

	resources *resource.Manager
	scenes    *scene.Manager
	services  *scene.Services

	backbuffer *ebiten.Image
	events     []input.Event

	ctx         context.Context
	running     bool
	initialized bool
	shutdown    bool
	debug       bool
	lastFrame   time.Time
	frames      uint64
}

// New creates an engine. Platform bring-up happens in Initialize.
func New(opts Options) *Engine {
	e := &Engine{
		title:      opts.Title,
		width:      opts.Width,
		height:     opts.Height,
		scale:      opts.Scale,
		background: opts.Background,
		platform:   opts.Platform,
		source:     opts.Input,
		manifest:   opts.Manifest,
		store:      opts.Store,
		logger:     logging.OrDiscard(opts.Logger).With("component", "engine"),
		level:      opts.LogLevel,
		baseLevel:  opts.BaseLevel,
		monitor:    opts.Monitor,
		perfCSV:    opts.PerfCSV,
		fixedStep:  opts.FixedStep,
		now:        opts.Now,
	}
	if e.title == "" {
		e.title = DefaultTitle
	}
	if e.width <= 0 || e.height <= 0 {
		e.width, e.height = DefaultWidth, DefaultHeight
	}
	if e.scale <= 0 {
		e.scale = 1
	}
	if e.background == nil {
		e.background = color.Black
	}
	if e.platform == nil {
		e.platform = NewEbitenPlatform()
	}
	if e.source == nil {
		e.source = input.NewEbitenSource()
	}
	if e.monitor == nil {
		e.monitor = perf.New()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.level != nil {
		e.debug = e.level.Level() <= slog.LevelDebug
	}

	e.settings = opts.Settings
	if e.settings == nil {
		e.settings = e.loadSettings()
	}

	logger := logging.OrDiscard(opts.Logger)
	e.resources = resource.NewManager(opts.Assets, logger)
	e.scenes = scene.NewManager(logger)
	e.services = &scene.Services{
		Resources:    e.resources,
		Scenes:       e.scenes,
		Settings:     e.settings,
		Display:      e,
		Logger:       logger,
		Width:        e.width,
		Height:       e.height,
		Quit:         e.Stop,
		SaveSettings: e.SaveSettings,
	}
	return e
}

func (e *Engine) loadSettings() *config.Settings {
	if e.store == nil {
		s := config.Default()
		return &s
	}
	s, err := e.store.Load()
	if err != nil {
		e.logger.Warn("using default settings", "path", e.store.Path(), "err", err)
	}
	return &s
}

// Initialize brings up the platform and applies the display settings.
// It is called by Run when needed; calling it again is a no-op.
func (e *Engine) Initialize() error {
	if e.initialized {
		return nil
	}
	if err := e.platform.Init(); err != nil {
		return fmt.Errorf("%w: %w", ErrPlatformInit, err)
	}
	e.services.Audio = e.platform.Audio()

	if e.settings.Display.Fullscreen {
		mw, mh := e.platform.MonitorSize()
		e.logger.Info("entering fullscreen", "monitor_width", mw, "monitor_height", mh)
		e.platform.SetFullscreen(true)
	} else {
		e.platform.SetWindowSize(e.width*e.scale, e.height*e.scale)
	}
	e.ensureBackbuffer()
	e.platform.SetWindowTitle(e.title)
	e.platform.SetTPS(e.settings.Display.FPSLimit)
	e.platform.SetVsync(e.settings.Display.VSync)

	e.initialized = true
	e.logger.Info("engine initialized",
		"width", e.width,
		"height", e.height,
		"fps_limit", e.settings.Display.FPSLimit,
		"vsync", e.settings.Display.VSync,
	)
	return nil
}

// Preload loads the manifest into the resource manager.
func (e *Engine) Preload(ctx context.Context) resource.Report {
	return e.resources.Preload(ctx, e.manifest, resource.DefaultPreloadWorkers)
}

// Run initializes the engine if needed and blocks until it stops, then runs
// the shutdown sequence. Cancelling ctx stops the loop at the next frame
// boundary.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.Initialize(); err != nil {
		return err
	}
	if e.scenes.Current() == nil {
		e.logger.Warn("running with no current scene")
	}

	e.ctx = ctx
	e.running = true
	err := e.platform.Run(e)
	e.running = false
	e.Shutdown()

	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}

// Update runs one frame. It implements ebiten.Game.
func (e *Engine) Update() error {
	e.monitor.StartFrame()

	now := e.now()
	dt := 0.0
	if !e.lastFrame.IsZero() {
		dt = now.Sub(e.lastFrame).Seconds()
	}
	e.lastFrame = now
	if e.fixedStep > 0 {
		dt = e.fixedStep
	}

	e.events = e.source.Poll(e.events[:0])
	e.Step(dt, e.events)

	if e.ctx != nil && e.ctx.Err() != nil {
		e.Stop()
	}
	if !e.running {
		return ebiten.Termination
	}
	return nil
}

// Step processes one frame with the given frame time and events: input,
// then advance, then draw into the back buffer.
func (e *Engine) Step(dt float64, events []input.Event) {
	if dt < 0 {
		dt = 0
	}
	e.frames++

	e.monitor.Measure(perf.SectionInput, func() {
		for _, ev := range events {
			e.handleEvent(ev)
		}
	})

	e.monitor.Measure(perf.SectionAdvance, func() {
		e.scenes.Advance(dt)
		if e.services.Audio != nil {
			e.services.Audio.Advance(time.Duration(dt * float64(time.Second)))
		}
	})

	e.monitor.Measure(perf.SectionDraw, func() {
		e.ensureBackbuffer()
		e.backbuffer.Fill(e.background)
		e.scenes.Draw(e.backbuffer)
		if e.monitor.Visible() {
			e.monitor.Draw(e.backbuffer)
		}
	})
}

func (e *Engine) handleEvent(ev input.Event) {
	switch {
	case ev.Kind == input.Quit:
		e.logger.Info("quit requested")
		e.Stop()
	case ev.IsKeyDown(KeyToggleDebug):
		e.toggleDebug()
		return
	case ev.IsKeyDown(KeyTogglePerf):
		e.logger.Debug("perf overlay toggled", "visible", e.monitor.Toggle())
		return
	case ev.IsKeyUp(KeyToggleDebug), ev.IsKeyUp(KeyTogglePerf):
		return
	}
	e.scenes.DispatchInput(ev)
}

func (e *Engine) toggleDebug() {
	if e.level != nil {
		e.debug = logging.Toggle(e.level, e.baseLevel)
	} else {
		e.debug = !e.debug
	}
	e.logger.Info("debug logging toggled", "debug", e.debug)
}

func (e *Engine) ensureBackbuffer() {
	if e.backbuffer == nil {
		e.backbuffer = ebiten.NewImage(e.width, e.height)
	}
}

// Draw presents the back buffer completed in Update. It implements
// ebiten.Game.
func (e *Engine) Draw(screen *ebiten.Image) {
	if e.backbuffer == nil {
		return
	}
	screen.DrawImage(e.backbuffer, nil)
}

// Layout implements ebiten.Game.
func (e *Engine) Layout(_, _ int) (int, int) {
	return e.width, e.height
}

// Stop ends the loop at the next frame boundary.
func (e *Engine) Stop() {
	e.running = false
}

// SetFullscreen switches the display mode and records it in the settings.
func (e *Engine) SetFullscreen(on bool) {
	e.platform.SetFullscreen(on)
	e.settings.Display.Fullscreen = on
	if !on {
		e.platform.SetWindowSize(e.width*e.scale, e.height*e.scale)
	}
}

// IsFullscreen reports the platform display mode.
func (e *Engine) IsFullscreen() bool {
	return e.platform.IsFullscreen()
}

// SaveSettings writes the current settings through the store.
func (e *Engine) SaveSettings() error {
	if e.store == nil {
		return nil
	}
	if err := e.store.Save(*e.settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	e.logger.Debug("settings saved", "path", e.store.Path())
	return nil
}

// Shutdown persists settings, restores windowed mode and releases the
// platform. Only the first call has an effect.
func (e *Engine) Shutdown() {
	if e.shutdown {
		return
	}
	e.shutdown = true
	e.running = false

	if err := e.SaveSettings(); err != nil {
		e.logger.Warn("failed to save settings", "err", err)
	}
	if e.initialized {
		if e.platform.IsFullscreen() {
			e.platform.SetFullscreen(false)
		}
		if err := e.platform.Close(); err != nil {
			e.logger.Warn("failed to close platform", "err", err)
		}
	}
	if e.perfCSV != "" {
		if err := e.writePerfCSV(); err != nil {
			e.logger.Warn("failed to export perf stats", "path", e.perfCSV, "err", err)
		}
	}

	e.logger.Info("engine stopped",
		"frames", e.frames,
		"resources", e.resources,
		"perf", e.monitor,
	)
}

func (e *Engine) writePerfCSV() error {
	f, err := os.Create(e.perfCSV)
	if err != nil {
		return err
	}
	if err := e.monitor.WriteCSV(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Scenes returns the scene manager.
func (e *Engine) Scenes() *scene.Manager { return e.scenes }

// Resources returns the asset cache shared with scenes.
func (e *Engine) Resources() *resource.Manager { return e.resources }

// Services returns the collaborators handed to scenes. Audio is nil until
// Initialize.
func (e *Engine) Services() *scene.Services { return e.services }

// Settings returns the live settings.
func (e *Engine) Settings() *config.Settings { return e.settings }

// Monitor returns the performance monitor.
func (e *Engine) Monitor() *perf.Monitor { return e.monitor }

// Running reports whether the game loop is active.
func (e *Engine) Running() bool { return e.running }

// Frames is the number of frames stepped so far.
func (e *Engine) Frames() uint64 { return e.frames }

// DebugLogging reports whether F1 debug logging is on.
func (e *Engine) DebugLogging() bool { return e.debug }

// Width and Height are the logical screen size.
func (e *Engine) Width() int { return e.width }
func (e *Engine) Height() int { return e.height }

// Backbuffer holds the last frame drawn by Step.
func (e *Engine) Backbuffer() *ebiten.Image { return e.backbuffer }

var _ ebiten.Game = (*Engine)(nil)
