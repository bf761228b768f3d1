package menu

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/pongkit/internal/application/scene"
)

// Title is the game name shown on the main menu.
const Title = "Pong"

// MainMenu is the entry scene.
type MainMenu struct {
	screen
}

var _ scene.Scene = (*MainMenu)(nil)

// NewMainMenu creates the title screen.
func NewMainMenu(svc *scene.Services) *MainMenu {
	return &MainMenu{screen: screen{svc: svc}}
}

func (m *MainMenu) Enter(scene.Params) {
	m.loadFonts(titleSize, menuSize)

	menu := m.newMenu(m.svc.Width/2, m.svc.Height/2-60, 300)
	menu.AddButton("Play", func() { m.goTo(scene.Game, scene.Params{scene.ParamNewMatch: true}) })
	menu.AddButton("Options", func() { m.goTo(scene.Options, nil) })
	menu.AddButton("Credits", func() { m.goTo(scene.Credits, nil) })
	menu.AddButton("Quit", func() {
		m.svc.PlayEffect(SoundSelect)
		m.svc.RequestQuit()
	})

	m.svc.PlayMusic(MusicMenu)
}

func (m *MainMenu) Exit() {
	m.svc.FadeOutMusic(musicFade)
}

func (m *MainMenu) Draw(dst *ebiten.Image) {
	m.drawBackground(dst, ImageMenuBackground, color.RGBA{0, 0, 50, 255}, color.RGBA{0, 0, 140, 255})
	m.drawTitle(dst, Title, 130, colorTitle)
	m.drawMenu(dst)
}
