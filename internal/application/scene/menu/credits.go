package menu

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/pongkit/internal/application/input"
	"github.com/younwookim/pongkit/internal/application/scene"
)

// CreditLines are shown in order; an empty string leaves a gap.
var CreditLines = []string{
	"Programming",
	"The pongkit authors",
	"",
	"Built with",
	"Ebitengine",
	"",
	"Font",
	"Go fonts by Bigelow & Holmes",
}

// Credits lists who made the game.
type Credits struct {
	screen
}

var _ scene.Scene = (*Credits)(nil)

// NewCredits creates the credits scene.
func NewCredits(svc *scene.Services) *Credits {
	return &Credits{screen: screen{svc: svc}}
}

func (c *Credits) Enter(scene.Params) {
	c.loadFonts(titleSize, 28)

	menu := c.newMenu(c.svc.Width/2, 140, 500)
	for _, line := range CreditLines {
		if line == "" {
			menu.AddSpacer(10)
			continue
		}
		menu.AddLabel(line)
	}
	menu.AddSpacer(10)
	menu.AddButton("Back to Main Menu", c.back)
}

func (c *Credits) back() {
	c.goTo(scene.MainMenu, nil)
}

func (c *Credits) HandleInput(ev input.Event) {
	if ev.IsKeyDown(ebiten.KeyEscape) {
		c.back()
		return
	}
	c.screen.HandleInput(ev)
}

func (c *Credits) Draw(dst *ebiten.Image) {
	c.drawBackground(dst, "", color.RGBA{0, 0, 50, 255}, color.RGBA{0, 0, 0, 255})
	c.drawTitle(dst, "Credits", 80, colorTitle)
	c.drawMenu(dst)
}
