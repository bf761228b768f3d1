package pong

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/pongkit/internal/application/input"
	"github.com/younwookim/pongkit/internal/application/scene"
	"github.com/younwookim/pongkit/internal/application/scene/scenetest"
	"github.com/younwookim/pongkit/internal/application/state"
	"github.com/younwookim/pongkit/internal/domain/entity"
	"github.com/younwookim/pongkit/internal/infrastructure/config"
)

// newGame registers a Pong scene as current next to stub pause and game
// over scenes.
func newGame(t *testing.T, sounds ...string) (*Scene, *scenetest.Env, map[string]*scenetest.Stub) {
	t.Helper()
	env := scenetest.New(sounds...)
	stubs := env.Register(scene.Pause, scene.GameOver)
	g := NewSeeded(env.Services, 1)
	g.ServeDelay = 0
	env.Scenes.Register(scene.Game, g)
	require.NoError(t, env.Scenes.SwitchTo(scene.Game))
	return g, env, stubs
}

// serve launches the ball.
func serve(t *testing.T, g *Scene) {
	t.Helper()
	g.Advance(0)
	require.Equal(t, state.MatchPlaying, g.Match())
}

func TestNew_IsIdle(t *testing.T) {
	env := scenetest.New()
	g := New(env.Services, nil)
	assert.Equal(t, state.MatchIdle, g.Match())

	g.Advance(1)
	assert.Equal(t, state.MatchIdle, g.Match(), "nothing moves before Enter")
}

func TestEnter_StartsMatch(t *testing.T) {
	g, _, _ := newGame(t)

	assert.Equal(t, state.MatchServing, g.Match())
	assert.Equal(t, entity.Rect{X: 50, Y: 250, W: 20, H: 100}, g.Player().Rect)
	assert.Equal(t, entity.Rect{X: 730, Y: 250, W: 20, H: 100}, g.AI().Rect)
	assert.Equal(t, 400.0, g.Ball().CenterX())
	assert.Equal(t, 300.0, g.Ball().CenterY())
	assert.Zero(t, g.Player().Score)
}

func TestServeDelay(t *testing.T) {
	env := scenetest.New()
	g := New(env.Services, nil)
	g.Enter(nil)

	g.Advance(0.5)
	assert.Equal(t, state.MatchServing, g.Match())
	assert.Zero(t, g.Ball().Speed())

	g.Advance(0.6)
	assert.Equal(t, state.MatchPlaying, g.Match())
	assert.InDelta(t, entity.BallSpeed, g.Ball().Speed(), 1e-9)
}

func TestPause_ResumesMatch(t *testing.T) {
	g, env, stubs := newGame(t)
	serve(t, g)
	g.Player().Score = 2
	g.AI().Score = 3
	g.HandleInput(input.KeyDownEvent(ebiten.KeyArrowUp))

	g.HandleInput(input.KeyDownEvent(ebiten.KeyEscape))
	assert.Equal(t, scene.Pause, env.Scenes.CurrentName())
	assert.Equal(t, 1, stubs[scene.Pause].Entries())
	assert.False(t, g.Player().MoveUp, "held keys are released on exit")

	require.NoError(t, env.Scenes.SwitchTo(scene.Game))
	assert.Equal(t, 2, g.Player().Score)
	assert.Equal(t, 3, g.AI().Score)
	assert.Equal(t, state.MatchPlaying, g.Match())
}

func TestEnter_NewMatchParamResets(t *testing.T) {
	g, env, _ := newGame(t)
	serve(t, g)
	g.Player().Score = 4

	require.NoError(t, env.Scenes.SwitchTo(scene.Pause))
	require.NoError(t, env.Scenes.SwitchWith(scene.Game, scene.Params{scene.ParamNewMatch: true}))
	assert.Zero(t, g.Player().Score)
	assert.Equal(t, state.MatchServing, g.Match())
}

func TestHandleInput_HeldKeys(t *testing.T) {
	g, _, _ := newGame(t)

	g.HandleInput(input.KeyDownEvent(ebiten.KeyArrowUp))
	assert.True(t, g.Player().MoveUp)
	g.HandleInput(input.KeyUpEvent(ebiten.KeyArrowUp))
	assert.False(t, g.Player().MoveUp)

	g.HandleInput(input.KeyDownEvent(ebiten.KeyS))
	assert.True(t, g.Player().MoveDown, "S is an alternate")
	g.HandleInput(input.KeyUpEvent(ebiten.KeyS))
	assert.False(t, g.Player().MoveDown)

	g.HandleInput(input.KeyDownEvent(ebiten.KeyW))
	g.Enter(nil)
	assert.False(t, g.Player().MoveUp, "Enter resets held keys")
}

func TestHandleInput_CustomBindings(t *testing.T) {
	env := scenetest.New()
	env.Settings.Controls[config.ActionMoveUp] = int(ebiten.KeyI)
	env.Settings.Controls[config.ActionPause] = int(ebiten.KeyP)
	env.Register(scene.Pause)
	g := New(env.Services, nil)
	env.Scenes.Register(scene.Game, g)
	require.NoError(t, env.Scenes.SwitchTo(scene.Game))

	g.HandleInput(input.KeyDownEvent(ebiten.KeyI))
	assert.True(t, g.Player().MoveUp)

	g.HandleInput(input.KeyDownEvent(ebiten.KeyEscape))
	assert.Equal(t, scene.Game, env.Scenes.CurrentName())
	g.HandleInput(input.KeyDownEvent(ebiten.KeyP))
	assert.Equal(t, scene.Pause, env.Scenes.CurrentName())
}

func TestAdvance_PaddleClamped(t *testing.T) {
	g, _, _ := newGame(t)
	g.HandleInput(input.KeyDownEvent(ebiten.KeyArrowUp))
	g.Advance(5)
	assert.Equal(t, 0.0, g.Player().Y)

	g.HandleInput(input.KeyUpEvent(ebiten.KeyArrowUp))
	g.HandleInput(input.KeyDownEvent(ebiten.KeyArrowDown))
	g.Advance(5)
	assert.Equal(t, float64(scenetest.Height-entity.PaddleHeight), g.Player().Y)
}

func TestAdvance_AIDifficulty(t *testing.T) {
	cases := map[string]float64{
		config.DifficultyEasy:   250 - 400*0.5*0.1,
		config.DifficultyNormal: 250 - 400*0.7*0.1,
		config.DifficultyHard:   250 - 400*0.9*0.1,
	}
	for d, want := range cases {
		t.Run(d, func(t *testing.T) {
			env := scenetest.New()
			env.Settings.Gameplay.Difficulty = d
			g := New(env.Services, nil)
			g.Enter(nil)

			// ball held at the top while serving
			g.Ball().Y = 0
			g.Advance(0.1)
			assert.InDelta(t, want, g.AI().Y, 1e-9)
		})
	}
}

func TestAdvance_PaddleHit(t *testing.T) {
	g, env, _ := newGame(t, SoundPaddleHit)
	serve(t, g)

	b := g.Ball()
	b.X, b.Y = 65, 290
	b.VX, b.VY = -300, 0
	g.Advance(0.001)

	assert.Greater(t, b.VX, 0.0)
	assert.Equal(t, g.Player().Right(), b.X)
	assert.Equal(t, 1, env.Audio.Effects)
}

func TestAdvance_WallBounce(t *testing.T) {
	g, _, _ := newGame(t)
	serve(t, g)

	b := g.Ball()
	b.X, b.Y = 400, 2
	b.VX, b.VY = 100, -300
	g.Advance(0.01)
	assert.Equal(t, 0.0, b.Y)
	assert.Greater(t, b.VY, 0.0)
}

func TestAdvance_AIScores(t *testing.T) {
	g, env, _ := newGame(t, SoundScore)
	serve(t, g)

	b := g.Ball()
	b.X, b.VX, b.VY = -100, -300, 0
	g.Advance(0.01)

	assert.Equal(t, 1, g.AI().Score)
	assert.Zero(t, g.Player().Score)
	assert.Equal(t, state.MatchServing, g.Match())
	assert.Equal(t, 400.0, b.CenterX(), "ball returns to the center")
	assert.Zero(t, b.Speed())
	assert.Equal(t, 1, env.Audio.Effects)
}

func TestAdvance_MissingSoundsAreSkipped(t *testing.T) {
	g, env, _ := newGame(t)
	serve(t, g)
	g.Ball().X = 900
	g.Ball().VX = 300

	assert.NotPanics(t, func() { g.Advance(0.01) })
	assert.Equal(t, 1, g.Player().Score)
	assert.Zero(t, env.Audio.Effects)
}

func TestGameOver(t *testing.T) {
	for _, tc := range []struct {
		name   string
		winner func(*Scene) *entity.Paddle
		ballX  float64
		win    bool
	}{
		{"player wins", (*Scene).Player, 900, true},
		{"ai wins", (*Scene).AI, -100, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, env, stubs := newGame(t)
			serve(t, g)
			tc.winner(g).Score = WinningScore - 1
			g.Ball().X = tc.ballX
			g.Ball().VX = 0
			g.Advance(0.01)

			assert.Equal(t, state.MatchOver, g.Match())
			assert.Equal(t, scene.GameOver, env.Scenes.CurrentName())
			params := stubs[scene.GameOver].Last()
			assert.Equal(t, WinningScore, params.Int(scene.ParamFinalScore, 0))
			assert.Equal(t, tc.win, params.Bool(scene.ParamWin, !tc.win))

			g.Advance(1)
			assert.Equal(t, state.MatchOver, g.Match(), "a finished match stays finished")

			// Play Again without new_match still starts over
			require.NoError(t, env.Scenes.SwitchTo(scene.Game))
			assert.Zero(t, g.Player().Score)
			assert.Zero(t, g.AI().Score)
		})
	}
}

func TestMusic(t *testing.T) {
	g, env, _ := newGame(t, MusicGame)
	assert.Equal(t, 1, env.Audio.Music)

	require.NoError(t, env.Scenes.SwitchTo(scene.Pause))
	assert.Equal(t, 1, env.Audio.Fades)

	env.Settings.Audio.MusicEnabled = false
	g.Enter(nil)
	assert.Equal(t, 1, env.Audio.Music, "disabled music is not started")
}

func TestDeterministicServe(t *testing.T) {
	run := func() (float64, float64) {
		env := scenetest.New()
		g := NewSeeded(env.Services, 99)
		g.ServeDelay = 0
		g.Enter(nil)
		g.Advance(0)
		return g.Ball().VX, g.Ball().VY
	}
	vx1, vy1 := run()
	vx2, vy2 := run()
	assert.Equal(t, vx1, vx2)
	assert.Equal(t, vy1, vy2)
}

func TestDraw(t *testing.T) {
	g, _, _ := newGame(t)
	screen := ebiten.NewImage(scenetest.Width, scenetest.Height)
	assert.NotPanics(t, func() { g.Draw(screen) })
}

func TestUnregisteredTargetsPanic(t *testing.T) {
	newBare := func(t *testing.T) (*Scene, *scenetest.Env) {
		env := scenetest.New()
		g := NewSeeded(env.Services, 1)
		g.ServeDelay = 0
		env.Scenes.Register(scene.Game, g)
		require.NoError(t, env.Scenes.SwitchTo(scene.Game))
		return g, env
	}

	t.Run("pause", func(t *testing.T) {
		g, env := newBare(t)
		assert.PanicsWithError(t, `unknown scene: "pause"`, func() {
			env.Scenes.DispatchInput(input.KeyDownEvent(ebiten.KeyEscape))
		})
		assert.Equal(t, scene.Game, env.Scenes.CurrentName())
		assert.Equal(t, state.MatchServing, g.Match())
	})

	t.Run("game over", func(t *testing.T) {
		g, _ := newBare(t)
		serve(t, g)
		g.Player().Score = WinningScore - 1
		g.Ball().X = 900
		g.Ball().VX = 0
		assert.Panics(t, func() { g.Advance(0.01) })
	})
}
