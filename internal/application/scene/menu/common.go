// Package menu provides the non-gameplay scenes: main menu, pause overlay,
// options, credits and game over. Each one rebuilds its widgets on Enter so
// every visit starts fresh.
package menu

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/younwookim/pongkit/internal/application/input"
	"github.com/younwookim/pongkit/internal/application/scene"
	"github.com/younwookim/pongkit/internal/ui"
)

// Asset names. Missing assets fall back to built-in fonts, generated
// backgrounds or silence.
const (
	FontTitle = "title"
	FontMenu  = "menu"

	SoundHover    = "menu_hover"
	SoundSelect   = "menu_select"
	SoundGameOver = "game_over"

	MusicMenu    = "menu_music"
	MusicVictory = "victory_music"
	MusicDefeat  = "defeat_music"

	ImageMenuBackground     = "menu_background"
	ImageGameOverBackground = "game_over_background"
)

const (
	titleSize = 64
	menuSize  = 32
	musicFade = 500 * time.Millisecond
)

var (
	colorTitle   = color.RGBA{255, 255, 255, 255}
	colorVictory = color.RGBA{255, 215, 0, 255}
	colorDefeat  = color.RGBA{255, 0, 0, 255}
	colorPanel   = color.RGBA{20, 20, 40, 255}
	colorHeader  = color.RGBA{40, 40, 80, 255}
	colorOverlay = color.RGBA{0, 0, 0, 128}
)

// screen is the part every menu scene shares: services, fonts and one
// widget column.
type screen struct {
	scene.Base
	svc *scene.Services

	menu      *ui.Menu
	titleFace text.Face
	itemFace  text.Face
	bg        *ebiten.Image
}

func (s *screen) loadFonts(titleSize, itemSize float64) {
	s.titleFace = s.svc.Font(FontTitle, titleSize)
	s.itemFace = s.svc.Font(FontMenu, itemSize)
}

// newMenu creates the widget column and wires the hover sound.
func (s *screen) newMenu(x, y, width int) *ui.Menu {
	s.menu = ui.NewMenu(x, y, width, s.itemFace, true)
	s.menu.OnHover = func(*ui.Button) { s.svc.PlayEffect(SoundHover) }
	return s.menu
}

// goTo plays the select sound and switches scenes. An unregistered name is
// a wiring bug and panics.
func (s *screen) goTo(name string, params scene.Params) {
	s.svc.PlayEffect(SoundSelect)
	s.svc.Scenes.MustSwitchWith(name, params)
}

func (s *screen) HandleInput(ev input.Event) {
	if s.menu != nil {
		s.menu.HandleInput(ev)
	}
}

func (s *screen) Advance(dt float64) {
	if s.menu != nil {
		s.menu.Advance(dt)
	}
}

func (s *screen) drawMenu(dst *ebiten.Image) {
	if s.menu != nil {
		s.menu.Draw(dst)
	}
}

func (s *screen) drawTitle(dst *ebiten.Image, title string, y float64, clr color.Color) {
	ui.DrawText(dst, s.titleFace, title, float64(s.svc.Width)/2, y, text.AlignCenter, clr)
}

// drawBackground draws the named image, or a vertical gradient from top to
// bottom when it is not loaded.
func (s *screen) drawBackground(dst *ebiten.Image, name string, top, bottom color.RGBA) {
	if s.svc.Resources != nil {
		if img := s.svc.Resources.Image(name); img != nil {
			dst.DrawImage(img, nil)
			return
		}
	}
	if s.bg == nil {
		s.bg = gradient(s.svc.Width, s.svc.Height, top, bottom)
	}
	dst.DrawImage(s.bg, nil)
}

// gradient renders a vertical two-color gradient.
func gradient(w, h int, top, bottom color.RGBA) *ebiten.Image {
	img := ebiten.NewImage(max(w, 1), max(h, 1))
	pix := make([]byte, 4*w*h)
	for y := range h {
		c := lerp(top, bottom, float64(y)/float64(max(h-1, 1)))
		for x := range w {
			i := 4 * (y*w + x)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	if w > 0 && h > 0 {
		img.WritePixels(pix)
	}
	return img
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}
