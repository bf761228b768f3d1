package menu

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/pongkit/internal/application/input"
	"github.com/younwookim/pongkit/internal/application/scene"
	"github.com/younwookim/pongkit/internal/infrastructure/config"
)

// Pause overlays the frozen match. The game scene only draws underneath;
// it receives no input or time while paused.
type Pause struct {
	screen
	resumeKey ebiten.Key
}

var _ scene.Scene = (*Pause)(nil)

// NewPause creates the pause overlay for the game scene.
func NewPause(svc *scene.Services) *Pause {
	return &Pause{screen: screen{svc: svc}}
}

func (p *Pause) Enter(scene.Params) {
	p.loadFonts(48, menuSize)
	p.resumeKey = ebiten.KeyEscape
	if p.svc.Settings != nil {
		p.resumeKey = p.svc.Settings.Key(config.ActionPause, ebiten.KeyEscape)
	}

	menu := p.newMenu(p.svc.Width/2, p.svc.Height/2-40, 250)
	menu.AddButton("Resume", p.resume)
	menu.AddButton("Options", func() { p.goTo(scene.OptionsFromPause, nil) })
	menu.AddButton("Main Menu", func() { p.goTo(scene.MainMenu, nil) })
}

func (p *Pause) resume() {
	p.goTo(scene.Game, nil)
}

func (p *Pause) HandleInput(ev input.Event) {
	if ev.IsKeyDown(p.resumeKey) || ev.IsKeyDown(ebiten.KeyEscape) {
		p.resume()
		return
	}
	p.screen.HandleInput(ev)
}

func (p *Pause) Draw(dst *ebiten.Image) {
	if game, ok := p.svc.Scenes.Scene(scene.Game); ok {
		game.Draw(dst)
	}
	w, h := float32(p.svc.Width), float32(p.svc.Height)
	vector.DrawFilledRect(dst, 0, 0, w, h, colorOverlay, false)
	p.drawTitle(dst, "PAUSED", 120, colorTitle)
	p.drawMenu(dst)
}
