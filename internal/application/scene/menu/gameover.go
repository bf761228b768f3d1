package menu

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/pongkit/internal/application/scene"
	"github.com/younwookim/pongkit/internal/ui"
)

const confettiCount = 20

var confettiColors = []color.RGBA{
	{255, 215, 0, 255},
	{255, 255, 255, 255},
	{255, 255, 0, 255},
}

// GameOver shows the result of a finished match. It reads the final score
// and outcome from Enter params.
type GameOver struct {
	screen
	score     int
	win       bool
	scoreFace text.Face
	rng       *rand.Rand
}

var _ scene.Scene = (*GameOver)(nil)

// NewGameOver creates the result screen.
func NewGameOver(svc *scene.Services) *GameOver {
	return &GameOver{
		screen: screen{svc: svc},
		rng:    rand.New(rand.NewPCG(1, 2)),
	}
}

// Score and Win are the result passed to the last Enter.
func (g *GameOver) Score() int { return g.score }
func (g *GameOver) Win() bool { return g.win }

// Headline is the title for the current outcome.
func (g *GameOver) Headline() string {
	if g.win {
		return "Victory!"
	}
	return "Game Over"
}

func (g *GameOver) Enter(params scene.Params) {
	g.score = params.Int(scene.ParamFinalScore, 0)
	g.win = params.Bool(scene.ParamWin, false)
	g.loadFonts(titleSize, menuSize)
	g.scoreFace = g.svc.Font(FontMenu, 48)

	menu := g.newMenu(g.svc.Width/2, g.svc.Height/2+50, 300)
	menu.AddButton("Play Again", func() { g.goTo(scene.Game, scene.Params{scene.ParamNewMatch: true}) })
	menu.AddButton("Main Menu", func() { g.goTo(scene.MainMenu, nil) })

	g.svc.PlayEffect(SoundGameOver)
	if g.win {
		g.svc.PlayMusic(MusicVictory)
	} else {
		g.svc.PlayMusic(MusicDefeat)
	}
}

func (g *GameOver) Exit() {
	g.svc.FadeOutMusic(musicFade)
}

func (g *GameOver) Draw(dst *ebiten.Image) {
	if img := g.background(); img != nil {
		dst.DrawImage(img, nil)
	} else {
		dst.Fill(colorPanel)
		g.drawEffects(dst)
	}

	clr := colorDefeat
	if g.win {
		clr = colorVictory
	}
	g.drawTitle(dst, g.Headline(), 130, clr)
	ui.DrawText(dst, g.scoreFace, fmt.Sprintf("Score: %d", g.score), float64(g.svc.Width)/2, 200, text.AlignCenter, colorTitle)
	g.drawMenu(dst)
}

func (g *GameOver) background() *ebiten.Image {
	if g.svc.Resources == nil {
		return nil
	}
	return g.svc.Resources.Image(ImageGameOverBackground)
}

// drawEffects scatters confetti on a win and dark red scanlines on a loss.
// The sparkle is cosmetic so it uses its own generator.
func (g *GameOver) drawEffects(dst *ebiten.Image) {
	w, h := g.svc.Width, g.svc.Height
	if g.win {
		for range confettiCount {
			x := float32(g.rng.IntN(max(w, 1)))
			y := float32(g.rng.IntN(max(h, 1)))
			r := float32(2 + g.rng.IntN(7))
			c := confettiColors[g.rng.IntN(len(confettiColors))]
			vector.DrawFilledCircle(dst, x, y, r, c, true)
		}
		return
	}
	for y := 0; y < h; y += 4 {
		a := uint8(10 + g.rng.IntN(21))
		vector.StrokeLine(dst, 0, float32(y), float32(w), float32(y), 1, color.RGBA{uint8(int(a) * 100 / 255), 0, 0, a}, false)
	}
}
