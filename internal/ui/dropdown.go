package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/pongkit/internal/application/input"
)

const dropdownLabelY = 14 // caption center above the box

// Dropdown picks one of Options. Clicking the box opens a list stacked
// below it; picking an entry or clicking elsewhere closes it.
type Dropdown struct {
	Base
	Text     string
	Face     text.Face
	Options  []string
	OnChange func(index int, option string)

	selected int
	open     bool
	hover    int // option under the pointer, -1 for none
}

func NewDropdown(x, y, w, h int, label string, face text.Face, options []string, selected int, onChange func(int, string)) *Dropdown {
	d := &Dropdown{
		Base:     NewBase(x, y, w, h),
		Text:     label,
		Face:     face,
		Options:  options,
		OnChange: onChange,
		hover:    -1,
	}
	d.SetSelected(selected)
	return d
}

func (d *Dropdown) Open() bool { return d.open }
func (d *Dropdown) Selected() int { return d.selected }

// Value returns the selected option, or "" when there are none.
func (d *Dropdown) Value() string {
	if d.selected < 0 || d.selected >= len(d.Options) {
		return ""
	}
	return d.Options[d.selected]
}

// SetSelected changes the selection without notifying OnChange. Out of
// range indexes are ignored.
func (d *Dropdown) SetSelected(i int) {
	if i >= 0 && i < len(d.Options) {
		d.selected = i
	}
}

// Select selects the first option equal to s.
func (d *Dropdown) Select(s string) bool {
	for i, o := range d.Options {
		if o == s {
			d.selected = i
			return true
		}
	}
	return false
}

func (d *Dropdown) optionRect(i int) image.Rectangle {
	h := d.Rect.Dy()
	return d.Rect.Add(image.Pt(0, (i+1)*h))
}

func (d *Dropdown) optionAt(x, y int) int {
	if !d.open {
		return -1
	}
	for i := range d.Options {
		if image.Pt(x, y).In(d.optionRect(i)) {
			return i
		}
	}
	return -1
}

func (d *Dropdown) HandleInput(ev input.Event) bool {
	if !d.active() {
		d.open = false
		return false
	}

	switch ev.Kind {
	case input.MouseMove:
		d.hover = d.optionAt(ev.X, ev.Y)
		return d.hover >= 0
	case input.MouseButtonDown:
		if ev.Button != ebiten.MouseButtonLeft {
			return false
		}
		if i := d.optionAt(ev.X, ev.Y); i >= 0 {
			d.open = false
			d.hover = -1
			if i != d.selected {
				d.selected = i
				if d.OnChange != nil {
					d.OnChange(i, d.Options[i])
				}
			}
			return true
		}
		if d.Contains(ev.X, ev.Y) {
			d.open = !d.open
			return true
		}
		d.open = false
	}
	return false
}

func (d *Dropdown) Draw(screen *ebiten.Image) {
	if d.Hidden {
		return
	}

	fg := ColorText
	if d.Disabled {
		fg = ColorDisabledText
	}
	DrawText(screen, d.Face, d.Text, float64(d.Rect.Min.X), float64(d.Rect.Min.Y-dropdownLabelY), text.AlignStart, fg)

	fillRect(screen, d.Rect, ColorBackground)
	strokeRect(screen, d.Rect, 2, ColorBorder)
	drawLabelText(screen, d.Rect, d.Face, d.Value(), false, fg)

	// chevron
	ax := float32(d.Rect.Max.X - 20)
	ay := float32(d.Rect.Min.Y + d.Rect.Dy()/2)
	tip := ay + 4
	if d.open {
		tip = ay - 4
	}
	vector.StrokeLine(screen, ax-6, 2*ay-tip, ax, tip, 2, fg, true)
	vector.StrokeLine(screen, ax, tip, ax+6, 2*ay-tip, 2, fg, true)
}

func (d *Dropdown) DrawOverlay(screen *ebiten.Image) {
	if d.Hidden || !d.open {
		return
	}
	for i, o := range d.Options {
		r := d.optionRect(i)
		bg := ColorBackground
		switch {
		case i == d.hover:
			bg = ColorHover
		case i == d.selected:
			bg = ColorPressed
		}
		fillRect(screen, r, bg)
		strokeRect(screen, r, 1, ColorBorder)
		drawLabelText(screen, r, d.Face, o, false, ColorText)
	}
}
