package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/pongkit/internal/application/input"
)

const (
	toggleTrackW = 50
	toggleTrackH = 24
	toggleInset  = 10
)

// Toggle is a labelled on/off switch. A left click anywhere on it flips the
// state.
type Toggle struct {
	Base
	Text     string
	Face     text.Face
	On       bool
	OnChange func(on bool)

	hovered bool
}

func NewToggle(x, y, w, h int, label string, face text.Face, on bool, onChange func(bool)) *Toggle {
	return &Toggle{
		Base:     NewBase(x, y, w, h),
		Text:     label,
		Face:     face,
		On:       on,
		OnChange: onChange,
	}
}

func (t *Toggle) HandleInput(ev input.Event) bool {
	if !t.active() {
		return false
	}
	switch ev.Kind {
	case input.MouseMove:
		t.hovered = t.Contains(ev.X, ev.Y)
	case input.MouseButtonDown:
		if ev.Button == ebiten.MouseButtonLeft && t.Contains(ev.X, ev.Y) {
			t.Flip()
			return true
		}
	}
	return false
}

// Flip inverts the state and notifies OnChange.
func (t *Toggle) Flip() {
	t.On = !t.On
	if t.OnChange != nil {
		t.OnChange(t.On)
	}
}

// track is the switch area at the right edge.
func (t *Toggle) track() image.Rectangle {
	x := t.Rect.Max.X - toggleTrackW - toggleInset
	y := t.Rect.Min.Y + (t.Rect.Dy()-toggleTrackH)/2
	return image.Rect(x, y, x+toggleTrackW, y+toggleTrackH)
}

func (t *Toggle) Draw(screen *ebiten.Image) {
	if t.Hidden {
		return
	}

	bg := ColorBackground
	if t.hovered {
		bg = ColorHover
	}
	fillRect(screen, t.Rect, bg)
	strokeRect(screen, t.Rect, 2, ColorBorder)

	fg := ColorText
	if t.Disabled {
		fg = ColorDisabledText
	}
	drawLabelText(screen, t.Rect, t.Face, t.Text, false, fg)

	tr := t.track()
	trackColor := ColorDisabled
	if t.On {
		trackColor = ColorOn
		if t.hovered {
			trackColor = ColorOnHover
		}
	}
	fillRect(screen, tr, trackColor)

	r := float32(toggleTrackH)/2 - 2
	knobX := float32(tr.Min.X) + r + 2
	if t.On {
		knobX = float32(tr.Max.X) - r - 2
	}
	vector.DrawFilledCircle(screen, knobX, float32(tr.Min.Y)+float32(toggleTrackH)/2, r, ColorHandle, true)
}
