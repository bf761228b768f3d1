package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// debug font cell size used when no face is available.
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

func fillRect(dst *ebiten.Image, r image.Rectangle, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y),
		float32(r.Dx()), float32(r.Dy()), clr, false)
}

func strokeRect(dst *ebiten.Image, r image.Rectangle, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y),
		float32(r.Dx()), float32(r.Dy()), width, clr, false)
}

// MeasureText returns the rendered size of s.
func MeasureText(face text.Face, s string) (w, h float64) {
	if face == nil {
		return float64(len(s) * debugGlyphW), debugGlyphH
	}
	return text.Measure(s, face, 0)
}

// DrawText draws s with its vertical center at y. x is the left edge, the
// center, or the right edge depending on align. A nil face falls back to the
// debug font.
func DrawText(dst *ebiten.Image, face text.Face, s string, x, y float64, align text.Align, clr color.Color) {
	if face == nil {
		w, h := MeasureText(nil, s)
		switch align {
		case text.AlignCenter:
			x -= w / 2
		case text.AlignEnd:
			x -= w
		}
		ebitenutil.DebugPrintAt(dst, s, int(x), int(y-h/2))
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, s, face, op)
}

func centerOf(r image.Rectangle) (float64, float64) {
	return float64(r.Min.X+r.Max.X) / 2, float64(r.Min.Y+r.Max.Y) / 2
}
