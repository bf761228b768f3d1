package scene

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/pongkit/internal/application/input"
)

// mockScene records lifecycle calls into a shared journal so ordering across
// scenes can be asserted.
type mockScene struct {
	name    string
	journal *[]string

	enterCalled   int
	exitCalled    int
	inputCalled   int
	advanceCalled int
	drawCalled    int

	lastParams Params
	events     []input.Event
	elapsed    float64

	onEnter func()
	onExit  func()
}

func newMock(name string, journal *[]string) *mockScene {
	return &mockScene{name: name, journal: journal}
}

func (m *mockScene) log(call string) {
	if m.journal != nil {
		*m.journal = append(*m.journal, m.name+"."+call)
	}
}

func (m *mockScene) Enter(params Params) {
	m.log("enter:begin")
	m.enterCalled++
	m.lastParams = params
	if m.onEnter != nil {
		m.onEnter()
	}
	m.log("enter:end")
}

func (m *mockScene) Exit() {
	m.log("exit:begin")
	m.exitCalled++
	if m.onExit != nil {
		m.onExit()
	}
	m.log("exit:end")
}

func (m *mockScene) HandleInput(ev input.Event) {
	m.inputCalled++
	m.events = append(m.events, ev)
}

func (m *mockScene) Advance(dt float64) {
	m.advanceCalled++
	m.elapsed += dt
}

func (m *mockScene) Draw(*ebiten.Image) {
	m.drawCalled++
}

func TestManager_Empty(t *testing.T) {
	m := NewManager(nil)

	assert.Nil(t, m.Current())
	assert.Empty(t, m.CurrentName())
	assert.Zero(t, m.Len())

	// Delegation with no current scene is a no-op.
	m.DispatchInput(input.KeyDownEvent(ebiten.KeyA))
	m.Advance(0.016)
	m.Draw(nil)
}

func TestManager_SwitchOrdering(t *testing.T) {
	var journal []string
	a := newMock("a", &journal)
	b := newMock("b", &journal)

	m := NewManager(nil)
	m.Register("a", a)
	m.Register("b", b)

	require.NoError(t, m.SwitchTo("a"))
	assert.Equal(t, 1, a.enterCalled)
	assert.Same(t, a, m.Current())
	assert.Equal(t, "a", m.CurrentName())

	require.NoError(t, m.SwitchTo("b"))
	assert.Equal(t, 1, a.exitCalled)
	assert.Equal(t, 1, b.enterCalled)
	assert.Equal(t, "b", m.CurrentName())

	assert.Equal(t, []string{
		"a.enter:begin", "a.enter:end",
		"a.exit:begin", "a.exit:end",
		"b.enter:begin", "b.enter:end",
	}, journal, "exit must complete before the next enter begins")

	err := m.SwitchTo("missing")
	assert.ErrorIs(t, err, ErrUnknownScene)
	assert.ErrorContains(t, err, `"missing"`)
	assert.Same(t, b, m.Current())
	assert.Equal(t, "b", m.CurrentName())
	assert.Zero(t, b.exitCalled, "a failed switch must not exit the current scene")
}

func TestManager_AtMostOneCurrent(t *testing.T) {
	names := []string{"a", "b", "c"}
	scenes := map[string]*mockScene{}
	m := NewManager(nil)
	for _, n := range names {
		scenes[n] = newMock(n, nil)
		m.Register(n, scenes[n])
	}

	sequence := []string{"a", "b", "a", "c", "c", "b", "a"}
	for _, target := range sequence {
		require.NoError(t, m.SwitchTo(target))

		active := 0
		for _, s := range scenes {
			// A scene is active when it was entered one more time than exited.
			switch s.enterCalled - s.exitCalled {
			case 1:
				active++
			case 0:
			default:
				t.Fatalf("scene %s entered %d exited %d", s.name, s.enterCalled, s.exitCalled)
			}
		}
		assert.Equal(t, 1, active)
		assert.Same(t, scenes[target], m.Current())
	}
}

func TestManager_SwitchToSelfReenters(t *testing.T) {
	a := newMock("a", nil)
	m := NewManager(nil)
	m.Register("a", a)

	require.NoError(t, m.SwitchTo("a"))
	require.NoError(t, m.SwitchTo("a"))

	assert.Equal(t, 2, a.enterCalled)
	assert.Equal(t, 1, a.exitCalled)
}

func TestManager_SwitchWithForwardsParams(t *testing.T) {
	a := newMock("a", nil)
	m := NewManager(nil)
	m.Register("a", a)

	require.NoError(t, m.SwitchWith("a", Params{"winner": "player", "score": 5}))
	assert.Equal(t, "player", a.lastParams.String("winner", ""))
	assert.Equal(t, 5, a.lastParams.Int("score", 0))

	require.NoError(t, m.SwitchTo("a"))
	assert.Nil(t, a.lastParams)
}

func TestManager_RegisterReplaces(t *testing.T) {
	old := newMock("old", nil)
	replacement := newMock("new", nil)
	m := NewManager(nil)

	assert.False(t, m.Register("game", old))
	assert.True(t, m.Register("game", replacement))
	assert.Equal(t, 1, m.Len())

	got, ok := m.Scene("game")
	require.True(t, ok)
	assert.Same(t, replacement, got)

	require.NoError(t, m.SwitchTo("game"))
	assert.Zero(t, old.enterCalled, "replaced scene must be unreachable")
	assert.Equal(t, 1, replacement.enterCalled)
}

func TestManager_RegisterInvalidPanics(t *testing.T) {
	m := NewManager(nil)

	assert.Panics(t, func() { m.Register("", newMock("x", nil)) })
	assert.Panics(t, func() { m.Register("x", nil) })
}

func TestManager_MustSwitch(t *testing.T) {
	m := NewManager(nil)
	m.Register("a", newMock("a", nil))

	assert.NotPanics(t, func() { m.MustSwitchTo("a") })
	assert.Panics(t, func() { m.MustSwitchTo("nope") })
	assert.Panics(t, func() { m.MustSwitchWith("nope", Params{"x": 1}) })
	assert.Equal(t, "a", m.CurrentName())
}

func TestManager_NestedSwitchRejected(t *testing.T) {
	a := newMock("a", nil)
	b := newMock("b", nil)
	c := newMock("c", nil)
	m := NewManager(nil)
	m.Register("a", a)
	m.Register("b", b)
	m.Register("c", c)

	var enterErr, exitErr error
	b.onEnter = func() { enterErr = m.SwitchTo("c") }
	a.onExit = func() { exitErr = m.SwitchTo("c") }

	require.NoError(t, m.SwitchTo("a"))
	require.NoError(t, m.SwitchTo("b"))

	assert.ErrorIs(t, enterErr, ErrTransitionInProgress)
	assert.ErrorIs(t, exitErr, ErrTransitionInProgress)
	assert.Zero(t, c.enterCalled)
	assert.Equal(t, "b", m.CurrentName())

	// The guard is released once the switch completes.
	b.onEnter = nil
	require.NoError(t, m.SwitchTo("c"))
}

func TestManager_DelegatesToCurrentOnly(t *testing.T) {
	a := newMock("a", nil)
	b := newMock("b", nil)
	m := NewManager(nil)
	m.Register("a", a)
	m.Register("b", b)
	require.NoError(t, m.SwitchTo("a"))

	ev := input.KeyDownEvent(ebiten.KeySpace)
	m.DispatchInput(ev)
	m.Advance(0.5)
	m.Draw(nil)

	assert.Equal(t, []input.Event{ev}, a.events)
	assert.Equal(t, 1, a.advanceCalled)
	assert.Equal(t, 1, a.drawCalled)
	assert.Zero(t, b.inputCalled+b.advanceCalled+b.drawCalled)
}

func TestManager_StatePersistsAcrossVisits(t *testing.T) {
	a := newMock("a", nil)
	m := NewManager(nil)
	m.Register("a", a)
	m.Register("b", newMock("b", nil))

	require.NoError(t, m.SwitchTo("a"))
	m.Advance(1.5)
	require.NoError(t, m.SwitchTo("b"))
	require.NoError(t, m.SwitchTo("a"))

	assert.InDelta(t, 1.5, a.elapsed, 1e-9, "scene instances are reused, not recreated")
}

func TestManager_Names(t *testing.T) {
	m := NewManager(nil)
	m.Register("pause", newMock("pause", nil))
	m.Register("game", newMock("game", nil))
	m.Register("main_menu", newMock("main_menu", nil))

	assert.Equal(t, []string{"game", "main_menu", "pause"}, m.Names())
}

func TestParams(t *testing.T) {
	p := Params{"score": 3, "resume": true, "winner": "ai", "wrong": 1.5}

	assert.Equal(t, 3, p.Int("score", 0))
	assert.Equal(t, 7, p.Int("wrong", 7))
	assert.True(t, p.Bool("resume", false))
	assert.Equal(t, "ai", p.String("winner", ""))
	assert.Equal(t, "x", p.String("absent", "x"))

	var nilParams Params
	assert.Equal(t, 9, nilParams.Int("score", 9))
	assert.False(t, nilParams.Bool("resume", false))
}

func TestBase_SatisfiesScene(t *testing.T) {
	type menu struct{ Base }
	var s Scene = menu{}

	assert.NotPanics(t, func() {
		s.Enter(nil)
		s.HandleInput(input.QuitEvent())
		s.Advance(0)
		s.Draw(nil)
		s.Exit()
	})
}
