// Package ui is a small immediate-input widget kit for menu scenes.
//
// Every widget implements Element in full, so containers dispatch without
// probing for capabilities. Widgets react to raw input events from the
// engine and draw with ebiten's vector and text packages.
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/pongkit/internal/application/input"
)

// Element is a widget.
type Element interface {
	// HandleInput reacts to ev and reports whether it consumed it.
	HandleInput(ev input.Event) bool
	Advance(dt float64)
	Draw(screen *ebiten.Image)
	// DrawOverlay draws content that must appear above sibling widgets,
	// such as an open dropdown list.
	DrawOverlay(screen *ebiten.Image)

	Bounds() image.Rectangle
	SetPosition(x, y int)
}

// Base holds the geometry and visibility shared by all widgets and gives
// no-op Element methods to embed.
type Base struct {
	Rect     image.Rectangle
	Hidden   bool
	Disabled bool
}

func NewBase(x, y, w, h int) Base {
	return Base{Rect: image.Rect(x, y, x+w, y+h)}
}

func (b *Base) HandleInput(input.Event) bool { return false }
func (b *Base) Advance(float64) {}
func (b *Base) Draw(*ebiten.Image) {}
func (b *Base) DrawOverlay(*ebiten.Image) {}
func (b *Base) Bounds() image.Rectangle { return b.Rect }

// SetPosition moves the top-left corner, keeping the size.
func (b *Base) SetPosition(x, y int) {
	b.Rect = b.Rect.Add(image.Pt(x, y).Sub(b.Rect.Min))
}

// SetSize resizes around the top-left corner.
func (b *Base) SetSize(w, h int) {
	b.Rect.Max = b.Rect.Min.Add(image.Pt(w, h))
}

func (b *Base) Show() { b.Hidden = false }
func (b *Base) Hide() { b.Hidden = true }
func (b *Base) Enable() { b.Disabled = false }
func (b *Base) Disable() { b.Disabled = true }
func (b *Base) Visible() bool { return !b.Hidden }
func (b *Base) Enabled() bool { return !b.Disabled }

// Contains reports whether x, y is inside the widget.
func (b *Base) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// active reports whether the widget takes input.
func (b *Base) active() bool {
	return !b.Hidden && !b.Disabled
}

// Spacer takes up room in a Menu and nothing else.
type Spacer struct {
	Base
}

func NewSpacer(w, h int) *Spacer {
	return &Spacer{Base: NewBase(0, 0, w, h)}
}

// Theme colors.
var (
	ColorBackground   = color.RGBA{80, 80, 80, 255}
	ColorHover        = color.RGBA{100, 100, 100, 255}
	ColorPressed      = color.RGBA{60, 60, 60, 255}
	ColorBorder       = color.RGBA{120, 120, 120, 255}
	ColorText         = color.RGBA{255, 255, 255, 255}
	ColorDisabled     = color.RGBA{60, 60, 60, 255}
	ColorDisabledText = color.RGBA{160, 160, 160, 255}
	ColorHandle       = color.RGBA{200, 200, 200, 255}
	ColorHandleActive = color.RGBA{240, 240, 240, 255}
	ColorOn           = color.RGBA{0, 180, 0, 255}
	ColorOnHover      = color.RGBA{0, 200, 0, 255}
)

var (
	_ Element = (*Spacer)(nil)
	_ Element = (*Label)(nil)
	_ Element = (*Button)(nil)
	_ Element = (*Toggle)(nil)
	_ Element = (*Slider)(nil)
	_ Element = (*Dropdown)(nil)
	_ Element = (*Menu)(nil)
)
