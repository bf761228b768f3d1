package ui

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/younwookim/pongkit/internal/application/input"
)

const (
	sliderHandleW = 16
	sliderLabelY  = 12 // label center above the bar
)

// Slider selects a value in [Min, Max] by dragging a handle along a bar.
// Clicking the bar jumps the handle to the pointer and starts a drag.
type Slider struct {
	Base
	Text     string
	Face     text.Face
	Min, Max float64
	OnChange func(v float64)

	value      float64
	dragging   bool
	dragOffset int
	hovered    bool
}

func NewSlider(x, y, w, h int, label string, face text.Face, minV, maxV, value float64, onChange func(float64)) *Slider {
	s := &Slider{
		Base:     NewBase(x, y, w, h),
		Text:     label,
		Face:     face,
		Min:      minV,
		Max:      maxV,
		OnChange: onChange,
	}
	s.SetValue(value)
	return s
}

func (s *Slider) Value() float64 { return s.value }
func (s *Slider) Dragging() bool { return s.dragging }

// SetValue clamps v into range without notifying OnChange.
func (s *Slider) SetValue(v float64) {
	s.value = min(max(v, s.Min), s.Max)
}

// ValueText is the caption drawn above the bar.
func (s *Slider) ValueText() string {
	return fmt.Sprintf("%s: %.2f", s.Text, s.value)
}

func (s *Slider) travel() int {
	return max(s.Rect.Dx()-sliderHandleW, 1)
}

func (s *Slider) handle() image.Rectangle {
	span := s.Max - s.Min
	frac := 0.0
	if span > 0 {
		frac = (s.value - s.Min) / span
	}
	x := s.Rect.Min.X + int(frac*float64(s.travel())+0.5)
	return image.Rect(x, s.Rect.Min.Y, x+sliderHandleW, s.Rect.Max.Y)
}

// moveHandle places the handle's left edge at x and derives the value.
func (s *Slider) moveHandle(x int) {
	x = min(max(x, s.Rect.Min.X), s.Rect.Min.X+s.travel())
	v := s.Min + float64(x-s.Rect.Min.X)/float64(s.travel())*(s.Max-s.Min)
	if v == s.value {
		return
	}
	s.value = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
}

func (s *Slider) HandleInput(ev input.Event) bool {
	if !s.active() {
		s.dragging = false
		return false
	}

	switch ev.Kind {
	case input.MouseMove:
		s.hovered = s.Contains(ev.X, ev.Y)
		if s.dragging {
			s.moveHandle(ev.X - s.dragOffset)
			return true
		}
	case input.MouseButtonDown:
		if ev.Button != ebiten.MouseButtonLeft {
			return false
		}
		if h := s.handle(); image.Pt(ev.X, ev.Y).In(h) {
			s.dragging = true
			s.dragOffset = ev.X - h.Min.X
			return true
		}
		if s.Contains(ev.X, ev.Y) {
			s.dragging = true
			s.dragOffset = sliderHandleW / 2
			s.moveHandle(ev.X - s.dragOffset)
			return true
		}
	case input.MouseButtonUp:
		if ev.Button == ebiten.MouseButtonLeft && s.dragging {
			s.dragging = false
			return true
		}
	}
	return false
}

func (s *Slider) Draw(screen *ebiten.Image) {
	if s.Hidden {
		return
	}

	fg := ColorText
	if s.Disabled {
		fg = ColorDisabledText
	}
	DrawText(screen, s.Face, s.ValueText(), float64(s.Rect.Min.X), float64(s.Rect.Min.Y-sliderLabelY), text.AlignStart, fg)

	fillRect(screen, s.Rect, ColorBackground)
	strokeRect(screen, s.Rect, 1, ColorBorder)

	hc := ColorHandle
	if s.dragging || s.hovered {
		hc = ColorHandleActive
	}
	fillRect(screen, s.handle(), hc)
}
