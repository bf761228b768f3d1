package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/younwookim/pongkit/internal/application/input"
)

// Button fires OnClick when the left mouse button is pressed and released
// over it, or when a Menu activates it from the keyboard.
type Button struct {
	Base
	Text    string
	Face    text.Face
	OnClick func()

	// Focused draws the hover look without the pointer being over it.
	Focused bool

	hovered bool
	pressed bool
}

func NewButton(x, y, w, h int, label string, face text.Face, onClick func()) *Button {
	return &Button{
		Base:    NewBase(x, y, w, h),
		Text:    label,
		Face:    face,
		OnClick: onClick,
	}
}

func (b *Button) Hovered() bool { return b.hovered }
func (b *Button) Pressed() bool { return b.pressed }

func (b *Button) HandleInput(ev input.Event) bool {
	if !b.active() {
		b.hovered, b.pressed = false, false
		return false
	}

	switch ev.Kind {
	case input.MouseMove:
		b.hovered = b.Contains(ev.X, ev.Y)
	case input.MouseButtonDown:
		if ev.Button != ebiten.MouseButtonLeft {
			return false
		}
		b.hovered = b.Contains(ev.X, ev.Y)
		if b.hovered {
			b.pressed = true
			return true
		}
	case input.MouseButtonUp:
		if ev.Button != ebiten.MouseButtonLeft || !b.pressed {
			return false
		}
		b.pressed = false
		b.hovered = b.Contains(ev.X, ev.Y)
		if b.hovered {
			b.Activate()
		}
		return true
	}
	return false
}

// Activate fires OnClick as if the button had been clicked.
func (b *Button) Activate() {
	if !b.active() || b.OnClick == nil {
		return
	}
	b.OnClick()
}

func (b *Button) Draw(screen *ebiten.Image) {
	if b.Hidden {
		return
	}

	bg, fg := ColorBackground, ColorText
	switch {
	case b.Disabled:
		bg, fg = ColorDisabled, ColorDisabledText
	case b.pressed:
		bg = ColorPressed
	case b.hovered || b.Focused:
		bg = ColorHover
	}
	fillRect(screen, b.Rect, bg)
	strokeRect(screen, b.Rect, 2, ColorBorder)
	drawLabelText(screen, b.Rect, b.Face, b.Text, true, fg)
}
