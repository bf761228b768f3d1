package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// trackedButtons are the mouse buttons EbitenSource reports.
var trackedButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

// EbitenSource reads ebiten's per-tick input state.
//
// Ebiten exposes state, not a queue, so events within one tick are ordered
// by category: quit, key downs, key ups, mouse move, button downs, button ups.
// Window-close detection needs ebiten.SetWindowClosingHandled(true).
type EbitenSource struct {
	keys       []ebiten.Key
	lastX      int
	lastY      int
	seenCursor bool
	quitSent   bool
}

// NewEbitenSource creates a source backed by the running ebiten game.
func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

// Poll appends this tick's events to dst.
func (s *EbitenSource) Poll(dst []Event) []Event {
	if ebiten.IsWindowBeingClosed() && !s.quitSent {
		s.quitSent = true
		dst = append(dst, QuitEvent())
	}

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		dst = append(dst, KeyDownEvent(k))
	}
	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		dst = append(dst, KeyUpEvent(k))
	}

	mx, my := ebiten.CursorPosition()
	if !s.seenCursor || mx != s.lastX || my != s.lastY {
		s.seenCursor = true
		s.lastX, s.lastY = mx, my
		dst = append(dst, MouseMoveEvent(mx, my))
	}

	for _, b := range trackedButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			dst = append(dst, MouseDownEvent(b, mx, my))
		}
	}
	for _, b := range trackedButtons {
		if inpututil.IsMouseButtonJustReleased(b) {
			dst = append(dst, MouseUpEvent(b, mx, my))
		}
	}

	return dst
}

// Scripted emits a fixed list of events per Poll call, then nothing.
// It stands in for a real device in tests and headless runs.
type Scripted struct {
	frames [][]Event
	next   int
}

// NewScripted creates a source that yields frames[i] on the i-th Poll.
func NewScripted(frames ...[]Event) *Scripted {
	return &Scripted{frames: frames}
}

// Poll appends the next frame's events.
func (s *Scripted) Poll(dst []Event) []Event {
	if s.next >= len(s.frames) {
		return dst
	}
	dst = append(dst, s.frames[s.next]...)
	s.next++
	return dst
}

// Remaining reports how many scripted frames are left.
func (s *Scripted) Remaining() int {
	return len(s.frames) - s.next
}

// Push queues another frame of events.
func (s *Scripted) Push(events ...Event) {
	s.frames = append(s.frames, events)
}
