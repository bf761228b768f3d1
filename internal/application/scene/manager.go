package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/pongkit/internal/application/input"
	"github.com/younwookim/pongkit/internal/infrastructure/logging"
)

var (
	// ErrUnknownScene is returned when switching to a name that was never
	// registered.
	ErrUnknownScene = errors.New("unknown scene")

	// ErrTransitionInProgress is returned when a switch is requested from
	// inside another switch's Exit or Enter.
	ErrTransitionInProgress = errors.New("scene transition in progress")
)

// Manager owns the registered scenes and tracks the current one.
//
// current and currentName are always set together: either both are empty
// or currentName is the registered name of current.
type Manager struct {
	scenes      map[string]Scene
	current     Scene
	currentName string
	switching   bool
	logger      *slog.Logger
}

// NewManager creates an empty manager with no current scene.
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		scenes: make(map[string]Scene),
		logger: logging.OrDiscard(logger).With("component", "scene"),
	}
}

// Register stores s under name, replacing any scene already registered
// there. It reports whether a scene was replaced. Replacing the current
// scene does not change what is current until the next switch.
func (m *Manager) Register(name string, s Scene) bool {
	if name == "" {
		panic("scene: Register with empty name")
	}
	if s == nil {
		panic(fmt.Sprintf("scene: Register %q with nil scene", name))
	}

	_, replaced := m.scenes[name]
	if replaced {
		m.logger.Warn("scene replaced", "name", name)
	}
	m.scenes[name] = s
	return replaced
}

// SwitchTo makes the scene registered under name current, calling Exit on
// the previous scene first and Enter(nil) on the new one.
func (m *Manager) SwitchTo(name string) error {
	return m.SwitchWith(name, nil)
}

// SwitchWith is SwitchTo with params handed to the new scene's Enter.
// Switching to the current scene's own name exits and re-enters it.
// On error nothing changes.
func (m *Manager) SwitchWith(name string, params Params) error {
	next, ok := m.scenes[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	if m.switching {
		return fmt.Errorf("%w: switch to %q", ErrTransitionInProgress, name)
	}

	m.switching = true
	defer func() { m.switching = false }()

	from := m.currentName
	if m.current != nil {
		m.current.Exit()
	}
	m.current, m.currentName = next, name
	next.Enter(params)

	m.logger.Debug("scene switched", "from", from, "to", name)
	return nil
}

// MustSwitchTo is SwitchTo that panics on error.
func (m *Manager) MustSwitchTo(name string) {
	m.MustSwitchWith(name, nil)
}

// MustSwitchWith is SwitchWith that panics on error.
func (m *Manager) MustSwitchWith(name string, params Params) {
	if err := m.SwitchWith(name, params); err != nil {
		panic(err)
	}
}

// DispatchInput forwards ev to the current scene, if any.
func (m *Manager) DispatchInput(ev input.Event) {
	if m.current != nil {
		m.current.HandleInput(ev)
	}
}

// Advance forwards dt to the current scene, if any.
func (m *Manager) Advance(dt float64) {
	if m.current != nil {
		m.current.Advance(dt)
	}
}

// Draw forwards screen to the current scene, if any.
func (m *Manager) Draw(screen *ebiten.Image) {
	if m.current != nil {
		m.current.Draw(screen)
	}
}

// Current returns the current scene, or nil before the first switch.
func (m *Manager) Current() Scene {
	return m.current
}

// CurrentName returns the current scene's name, or "" before the first
// switch.
func (m *Manager) CurrentName() string {
	return m.currentName
}

// Scene looks up a registered scene.
func (m *Manager) Scene(name string) (Scene, bool) {
	s, ok := m.scenes[name]
	return s, ok
}

// Names returns the registered names in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.scenes))
	for name := range m.scenes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len is the number of registered scenes.
func (m *Manager) Len() int {
	return len(m.scenes)
}
