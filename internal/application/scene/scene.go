// Package scene defines the Scene interface for game screens and the Manager
// that switches between them.
//
// Each game screen (main menu, gameplay, pause, options, etc.) implements
// the Scene interface to react to input, advance its own state and render.
// Scenes are built once at startup, registered by name and then entered
// and exited any number of times.
package scene

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/pongkit/internal/application/input"
)

// Scene represents a game screen.
//
// The Manager delegates every call to the current scene only. A scene never
// receives HandleInput, Advance or Draw while it is not current.
type Scene interface {
	// Enter is called once each time the scene becomes current, after the
	// previous scene's Exit has returned. params may be nil.
	// Per-visit state must be reset here; Enter is not only called once.
	Enter(params Params)

	// Exit is called once when the scene stops being current, before the
	// next scene's Enter. State that must survive a revisit is kept.
	Exit()

	// HandleInput receives each raw event in the order it was produced.
	HandleInput(ev input.Event)

	// Advance moves the scene forward by dt seconds. dt is never negative
	// and may be zero.
	Advance(dt float64)

	// Draw renders the scene to the screen. It runs after Advance of the
	// same frame and must not change gameplay state.
	Draw(screen *ebiten.Image)
}

// Base provides no-op implementations of every Scene method. Embed it and
// override only what the scene needs.
type Base struct{}

func (Base) Enter(Params) {}
func (Base) Exit() {}
func (Base) HandleInput(input.Event) {}
func (Base) Advance(float64) {}
func (Base) Draw(*ebiten.Image) {}

var _ Scene = Base{}

// Params carries arguments from a switch request into Enter.
type Params map[string]any

// Int returns the int stored under key, or def.
func (p Params) Int(key string, def int) int {
	if v, ok := p[key].(int); ok {
		return v
	}
	return def
}

// Bool returns the bool stored under key, or def.
func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

// String returns the string stored under key, or def.
func (p Params) String(key string, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}
