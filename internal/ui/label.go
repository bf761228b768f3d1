package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const labelPadding = 5

// Label is static text, optionally on a filled background.
type Label struct {
	Base
	Text       string
	Face       text.Face
	Color      color.Color
	Background color.Color // nil draws no background
	Centered   bool
}

func NewLabel(x, y, w, h int, s string, face text.Face) *Label {
	return &Label{
		Base:     NewBase(x, y, w, h),
		Text:     s,
		Face:     face,
		Color:    ColorText,
		Centered: true,
	}
}

func (l *Label) SetText(s string) { l.Text = s }

func (l *Label) Draw(screen *ebiten.Image) {
	if l.Hidden {
		return
	}
	if l.Background != nil {
		fillRect(screen, l.Rect, l.Background)
	}
	drawLabelText(screen, l.Rect, l.Face, l.Text, l.Centered, l.Color)
}

func drawLabelText(screen *ebiten.Image, r image.Rectangle, face text.Face, s string, centered bool, clr color.Color) {
	cx, cy := centerOf(r)
	if centered {
		DrawText(screen, face, s, cx, cy, text.AlignCenter, clr)
		return
	}
	DrawText(screen, face, s, float64(r.Min.X+labelPadding), cy, text.AlignStart, clr)
}
