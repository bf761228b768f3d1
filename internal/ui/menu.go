package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/younwookim/pongkit/internal/application/input"
)

// Layout defaults.
const (
	MenuSpacing  = 10
	ButtonHeight = 40
	LabelHeight  = 30
	SliderHeight = 20
	ToggleHeight = 40

	menuInset = 20 // widgets are this much narrower than the menu
	captionH  = 24 // room above sliders and dropdowns for their caption
)

// Menu stacks widgets vertically. When Centered, X is the horizontal center
// of the column, otherwise its left edge.
//
// Buttons take keyboard focus: Up/Down (or W/S) move it, Enter or Space
// activates the focused one, and hovering a button with the mouse focuses it.
type Menu struct {
	Base
	Face     text.Face
	Width    int
	Spacing  int
	Centered bool
	// OnHover runs whenever focus moves to a different button.
	OnHover func(b *Button)

	x         int
	cursor    int
	elements  []Element
	buttons   []*Button
	dropdowns []*Dropdown
	focus     int
}

// NewMenu creates an empty column starting at y.
func NewMenu(x, y, width int, face text.Face, centered bool) *Menu {
	return &Menu{
		Base:     NewBase(x, y, 0, 0),
		Face:     face,
		Width:    width,
		Spacing:  MenuSpacing,
		Centered: centered,
		x:        x,
		cursor:   y,
		focus:    -1,
	}
}

// Add places e below the previous widget.
func (m *Menu) Add(e Element) {
	m.place(e)
	m.elements = append(m.elements, e)
}

func (m *Menu) place(e Element) {
	b := e.Bounds()
	x := m.x
	if m.Centered {
		x -= b.Dx() / 2
	}
	e.SetPosition(x, m.cursor)
	m.cursor += b.Dy() + m.Spacing

	placed := e.Bounds()
	if len(m.elements) == 0 {
		m.Rect = placed
	} else {
		m.Rect = m.Rect.Union(placed)
	}
}

func (m *Menu) itemWidth() int { return max(m.Width-menuInset, 1) }

// AddButton appends a button that calls onClick when activated.
func (m *Menu) AddButton(label string, onClick func()) *Button {
	b := NewButton(0, 0, m.itemWidth(), ButtonHeight, label, m.Face, onClick)
	m.Add(b)
	m.buttons = append(m.buttons, b)
	return b
}

// AddLabel appends a line of text.
func (m *Menu) AddLabel(s string) *Label {
	l := NewLabel(0, 0, m.itemWidth(), LabelHeight, s, m.Face)
	m.Add(l)
	return l
}

// AddSpacer appends h pixels of empty space.
func (m *Menu) AddSpacer(h int) *Spacer {
	s := NewSpacer(m.itemWidth(), h)
	m.Add(s)
	return s
}

// AddToggle appends an on/off switch.
func (m *Menu) AddToggle(label string, on bool, onChange func(bool)) *Toggle {
	t := NewToggle(0, 0, m.itemWidth(), ToggleHeight, label, m.Face, on, onChange)
	m.Add(t)
	return t
}

// AddSlider leaves room above the bar for the value caption.
func (m *Menu) AddSlider(label string, minV, maxV, value float64, onChange func(float64)) *Slider {
	m.cursor += captionH
	s := NewSlider(0, 0, m.itemWidth(), SliderHeight, label, m.Face, minV, maxV, value, onChange)
	m.Add(s)
	return s
}

// AddDropdown leaves room above the box for the caption.
func (m *Menu) AddDropdown(label string, options []string, selected int, onChange func(int, string)) *Dropdown {
	m.cursor += captionH
	d := NewDropdown(0, 0, m.itemWidth(), LabelHeight, label, m.Face, options, selected, onChange)
	m.Add(d)
	m.dropdowns = append(m.dropdowns, d)
	return d
}

// Elements returns every widget in layout order; Buttons only the buttons.
// Focus is the focused button's index, or -1.
func (m *Menu) Elements() []Element { return m.elements }
func (m *Menu) Buttons() []*Button { return m.buttons }
func (m *Menu) Focus() int { return m.focus }

// Focused returns the button holding keyboard focus, or nil.
func (m *Menu) Focused() *Button {
	if m.focus < 0 || m.focus >= len(m.buttons) {
		return nil
	}
	return m.buttons[m.focus]
}

// SetFocus moves focus to button i; -1 clears it.
func (m *Menu) SetFocus(i int) {
	if i < -1 || i >= len(m.buttons) || i == m.focus {
		return
	}
	if prev := m.Focused(); prev != nil {
		prev.Focused = false
	}
	m.focus = i
	if b := m.Focused(); b != nil {
		b.Focused = true
		if m.OnHover != nil {
			m.OnHover(b)
		}
	}
}

// moveFocus steps focus by dir, wrapping and skipping inactive buttons.
func (m *Menu) moveFocus(dir int) {
	n := len(m.buttons)
	if n == 0 {
		return
	}
	i := m.focus
	if i < 0 && dir < 0 {
		i = 0
	}
	for range n {
		i = ((i+dir)%n + n) % n
		if m.buttons[i].active() {
			m.SetFocus(i)
			return
		}
	}
}

// SetPosition moves the whole column, keeping relative placement.
func (m *Menu) SetPosition(x, y int) {
	d := image.Pt(x-m.Rect.Min.X, y-m.Rect.Min.Y)
	for _, e := range m.elements {
		b := e.Bounds().Add(d)
		e.SetPosition(b.Min.X, b.Min.Y)
	}
	m.Rect = m.Rect.Add(d)
	m.x += d.X
	m.cursor += d.Y
}

// HandleInput routes keyboard events to focus and mouse events to the
// widgets, open dropdowns first. It reports whether ev was consumed.
func (m *Menu) HandleInput(ev input.Event) bool {
	if !m.active() {
		return false
	}

	switch ev.Kind {
	case input.KeyDown:
		switch ev.Key {
		case ebiten.KeyArrowUp, ebiten.KeyW:
			m.moveFocus(-1)
			return len(m.buttons) > 0
		case ebiten.KeyArrowDown, ebiten.KeyS:
			m.moveFocus(1)
			return len(m.buttons) > 0
		case ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace:
			if b := m.Focused(); b != nil {
				b.Activate()
				return true
			}
		}
		return false

	case input.MouseMove:
		consumed := false
		for _, e := range m.elements {
			if e.HandleInput(ev) {
				consumed = true
			}
		}
		for i, b := range m.buttons {
			if b.Hovered() {
				m.SetFocus(i)
				break
			}
		}
		return consumed

	case input.MouseButtonDown, input.MouseButtonUp:
		// an open list lies over the widgets below it
		for _, d := range m.dropdowns {
			if d.Open() && d.HandleInput(ev) {
				return true
			}
		}
		for _, e := range m.elements {
			if e.HandleInput(ev) {
				return true
			}
		}
	}
	return false
}

func (m *Menu) Advance(dt float64) {
	for _, e := range m.elements {
		e.Advance(dt)
	}
}

func (m *Menu) Draw(screen *ebiten.Image) {
	if m.Hidden {
		return
	}
	for _, e := range m.elements {
		e.Draw(screen)
	}
	for _, e := range m.elements {
		e.DrawOverlay(screen)
	}
}
