// Package pong provides the gameplay scene: one player paddle against a
// computer paddle, first to WinningScore.
package pong

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/pongkit/internal/application/input"
	"github.com/younwookim/pongkit/internal/application/scene"
	"github.com/younwookim/pongkit/internal/application/state"
	"github.com/younwookim/pongkit/internal/domain/entity"
	"github.com/younwookim/pongkit/internal/infrastructure/config"
	"github.com/younwookim/pongkit/internal/ui"
)

const (
	WinningScore = 5

	// DefaultServeDelay is how long the ball waits at the center after a
	// point, in seconds.
	DefaultServeDelay = 1.0

	musicFade = 500 * time.Millisecond
	scoreSize = 64
	scoreY    = 90
)

// Asset names requested by the scene. Missing ones are skipped.
const (
	SoundPaddleHit = "paddle_hit"
	SoundScore     = "score"
	MusicGame      = "game_music"
	FontScore      = "score"
)

var (
	colorCourt = color.RGBA{0, 0, 0, 255}
	colorLine  = color.RGBA{128, 128, 128, 128}
	colorWhite = color.RGBA{255, 255, 255, 255}
)

// Scene is the Pong match.
type Scene struct {
	svc *scene.Services
	rng *rand.Rand

	// ServeDelay overrides DefaultServeDelay; zero serves on the next frame.
	ServeDelay float64

	width, height float64
	player, ai    *entity.Paddle
	ball          *entity.Ball
	match         state.MatchState
	serveTimer    float64

	upKeys, downKeys []ebiten.Key
	pauseKey         ebiten.Key
	scoreFace        text.Face
}

var _ scene.Scene = (*Scene)(nil)

// New creates the scene. rng drives serve angles; a nil rng is seeded from
// the clock.
func New(svc *scene.Services, rng *rand.Rand) *Scene {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	s := &Scene{
		svc:        svc,
		rng:        rng,
		ServeDelay: DefaultServeDelay,
		width:      float64(svc.Width),
		height:     float64(svc.Height),
	}
	s.reset()
	s.match = state.MatchIdle
	return s
}

// NewSeeded creates the scene with a deterministic serve sequence.
func NewSeeded(svc *scene.Services, seed int64) *Scene {
	u := uint64(seed)
	return New(svc, rand.New(rand.NewPCG(u, u^0x9e3779b97f4a7c15)))
}

// Player, AI, Ball and Match expose the court for tests and overlays.
func (s *Scene) Player() *entity.Paddle { return s.player }
func (s *Scene) AI() *entity.Paddle { return s.ai }
func (s *Scene) Ball() *entity.Ball { return s.ball }
func (s *Scene) Match() state.MatchState { return s.match }

// Enter starts a new match when asked to or when none is in progress, and
// otherwise resumes the current one.
func (s *Scene) Enter(params scene.Params) {
	newMatch := params.Bool(scene.ParamNewMatch, false) || !s.match.InProgress()
	if newMatch {
		s.reset()
		s.svc.Log().Debug("match started")
	} else {
		s.svc.Log().Debug("match resumed", "player", s.player.Score, "ai", s.ai.Score)
	}

	s.bindKeys()
	s.player.Release()
	s.scoreFace = s.svc.Font(FontScore, scoreSize)
	s.svc.PlayMusic(MusicGame)
}

func (s *Scene) Exit() {
	s.player.Release()
	s.svc.FadeOutMusic(musicFade)
}

func (s *Scene) reset() {
	s.player = entity.NewPaddle(entity.PaddleOffset, (s.height-entity.PaddleHeight)/2)
	s.ai = entity.NewPaddle(s.width-entity.PaddleOffset-entity.PaddleWidth, (s.height-entity.PaddleHeight)/2)
	s.ball = entity.NewBall(s.width/2, s.height/2)
	s.match = state.MatchIdle
	s.queueServe()
}

// queueServe parks the ball at the center until the serve timer runs out.
func (s *Scene) queueServe() {
	s.ball.Center(s.width/2, s.height/2)
	s.ball.VX, s.ball.VY = 0, 0
	s.serveTimer = s.ServeDelay
	s.setMatch(state.MatchServing)
}

func (s *Scene) setMatch(next state.MatchState) {
	if !s.match.CanTransition(next) {
		s.svc.Log().Warn("illegal match transition", "from", s.match, "to", next)
	}
	s.match = next
}

func (s *Scene) bindKeys() {
	settings := config.Default()
	if s.svc.Settings != nil {
		settings = *s.svc.Settings
	}
	s.upKeys = []ebiten.Key{settings.Key(config.ActionMoveUp, ebiten.KeyArrowUp), ebiten.KeyW}
	s.downKeys = []ebiten.Key{settings.Key(config.ActionMoveDown, ebiten.KeyArrowDown), ebiten.KeyS}
	s.pauseKey = settings.Key(config.ActionPause, ebiten.KeyEscape)
}

func (s *Scene) aiFactor() float64 {
	if s.svc.Settings == nil {
		return config.GameplaySettings{}.AIFactor()
	}
	return s.svc.Settings.Gameplay.AIFactor()
}

func contains(keys []ebiten.Key, k ebiten.Key) bool {
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}

func (s *Scene) HandleInput(ev input.Event) {
	switch ev.Kind {
	case input.KeyDown:
		switch {
		case ev.Key == s.pauseKey:
			s.svc.Scenes.MustSwitchTo(scene.Pause)
		case contains(s.upKeys, ev.Key):
			s.player.MoveUp = true
		case contains(s.downKeys, ev.Key):
			s.player.MoveDown = true
		}
	case input.KeyUp:
		switch {
		case contains(s.upKeys, ev.Key):
			s.player.MoveUp = false
		case contains(s.downKeys, ev.Key):
			s.player.MoveDown = false
		}
	}
}

func (s *Scene) Advance(dt float64) {
	if !s.match.InProgress() {
		return
	}

	s.player.Drive(dt)
	s.player.ClampY(s.height)
	s.ai.Track(s.ball.CenterY(), s.aiFactor(), dt)
	s.ai.ClampY(s.height)

	if s.match == state.MatchServing {
		s.serveTimer -= dt
		if s.serveTimer <= 0 {
			s.ball.Serve(s.width/2, s.height/2, s.rng)
			s.setMatch(state.MatchPlaying)
		}
		return
	}

	s.ball.ApplyVelocity(dt)
	s.ball.WallBounce(s.height)
	if s.ball.Deflect(s.player) || s.ball.Deflect(s.ai) {
		s.svc.PlayEffect(SoundPaddleHit)
	}

	switch {
	case s.ball.Right() < 0:
		s.point(s.ai)
	case s.ball.X > s.width:
		s.point(s.player)
	}
}

func (s *Scene) point(scorer *entity.Paddle) {
	scorer.IncrementScore()
	s.svc.PlayEffect(SoundScore)
	s.svc.Log().Debug("point", "player", s.player.Score, "ai", s.ai.Score)

	if s.player.Score < WinningScore && s.ai.Score < WinningScore {
		s.queueServe()
		return
	}

	s.setMatch(state.MatchOver)
	win := s.player.Score >= WinningScore
	params := scene.Params{
		scene.ParamFinalScore: max(s.player.Score, s.ai.Score),
		scene.ParamWin:        win,
	}
	s.svc.Log().Info("match over", "win", win, "player", s.player.Score, "ai", s.ai.Score)
	s.svc.Scenes.MustSwitchWith(scene.GameOver, params)
}

func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(colorCourt)

	cx, cy := float32(s.width/2), float32(s.height/2)
	vector.StrokeLine(screen, cx, 0, cx, float32(s.height), 3, colorLine, false)
	vector.StrokeCircle(screen, cx, cy, 50, 3, colorLine, true)

	ui.DrawText(screen, s.scoreFace, fmt.Sprint(s.player.Score), s.width/4, scoreY, text.AlignCenter, colorWhite)
	ui.DrawText(screen, s.scoreFace, fmt.Sprint(s.ai.Score), s.width-s.width/4, scoreY, text.AlignCenter, colorWhite)

	fillRect(screen, s.player.Rect)
	fillRect(screen, s.ai.Rect)
	fillRect(screen, s.ball.Rect)
}

func fillRect(screen *ebiten.Image, r entity.Rect) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), colorWhite, false)
}
