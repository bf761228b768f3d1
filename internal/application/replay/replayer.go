package replay

import (
	"github.com/younwookim/pongkit/internal/application/input"
)

// Replayer plays recorded events back as an input.Source. Once the recording
// is exhausted it emits a single Quit event.
type Replayer struct {
	data  ReplayData
	frame int
	next  int // index into data.Frames
	quit  bool
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// Poll appends the events recorded for the current frame and advances.
func (r *Replayer) Poll(dst []input.Event) []input.Event {
	if r.Done() {
		if !r.quit {
			r.quit = true
			dst = append(dst, input.QuitEvent())
		}
		return dst
	}

	for r.next < len(r.data.Frames) && r.data.Frames[r.next].F <= r.frame {
		if r.data.Frames[r.next].F == r.frame {
			dst = append(dst, r.data.Frames[r.next].Events...)
		}
		r.next++
	}
	r.frame++
	return dst
}

// Done reports whether every recorded frame has been played.
func (r *Replayer) Done() bool {
	return r.frame >= r.TotalFrames()
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	if n := len(r.data.Frames); n > 0 && r.data.Frames[n-1].F >= r.data.Length {
		return r.data.Frames[n-1].F + 1
	}
	return r.data.Length
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// FixedStep returns the recorded frame time in seconds.
func (r *Replayer) FixedStep() float64 {
	return r.data.FixedStep
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.next = 0
	r.quit = false
}
