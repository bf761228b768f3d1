// Package input turns ebiten's polled input state into an ordered stream of
// discrete events.
package input

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Kind discriminates Event.
type Kind int

const (
	Quit Kind = iota
	KeyDown
	KeyUp
	MouseMove
	MouseButtonDown
	MouseButtonUp
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case Quit:
		return "Quit"
	case KeyDown:
		return "KeyDown"
	case KeyUp:
		return "KeyUp"
	case MouseMove:
		return "MouseMove"
	case MouseButtonDown:
		return "MouseButtonDown"
	case MouseButtonUp:
		return "MouseButtonUp"
	default:
		return "Unknown"
	}
}

// Event is one raw input occurrence.
// Key is set for key events; X, Y for mouse events; Button for button events.
type Event struct {
	Kind   Kind               `json:"k"`
	Key    ebiten.Key         `json:"key,omitempty"`
	X      int                `json:"x,omitempty"`
	Y      int                `json:"y,omitempty"`
	Button ebiten.MouseButton `json:"b,omitempty"`
}

// Source yields the events produced since the previous Poll, in order.
// Implementations append to dst and return it so callers can reuse a buffer.
type Source interface {
	Poll(dst []Event) []Event
}

// Constructors for the common events.

func QuitEvent() Event { return Event{Kind: Quit} }

func KeyDownEvent(k ebiten.Key) Event { return Event{Kind: KeyDown, Key: k} }

func KeyUpEvent(k ebiten.Key) Event { return Event{Kind: KeyUp, Key: k} }

func MouseMoveEvent(x, y int) Event { return Event{Kind: MouseMove, X: x, Y: y} }

func MouseDownEvent(b ebiten.MouseButton, x, y int) Event {
	return Event{Kind: MouseButtonDown, Button: b, X: x, Y: y}
}

func MouseUpEvent(b ebiten.MouseButton, x, y int) Event {
	return Event{Kind: MouseButtonUp, Button: b, X: x, Y: y}
}

// IsKeyDown reports whether e is a key press of k.
func (e Event) IsKeyDown(k ebiten.Key) bool {
	return e.Kind == KeyDown && e.Key == k
}

// IsKeyUp reports whether e is a key release of k.
func (e Event) IsKeyUp(k ebiten.Key) bool {
	return e.Kind == KeyUp && e.Key == k
}

// IsMouse reports whether e carries a cursor position.
func (e Event) IsMouse() bool {
	return e.Kind == MouseMove || e.Kind == MouseButtonDown || e.Kind == MouseButtonUp
}

// Pos returns the cursor position of a mouse event.
func (e Event) Pos() (int, int) {
	return e.X, e.Y
}

func (e Event) String() string {
	switch e.Kind {
	case KeyDown, KeyUp:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Key)
	case MouseMove:
		return fmt.Sprintf("%s(%d,%d)", e.Kind, e.X, e.Y)
	case MouseButtonDown, MouseButtonUp:
		return fmt.Sprintf("%s(%d@%d,%d)", e.Kind, e.Button, e.X, e.Y)
	default:
		return e.Kind.String()
	}
}
