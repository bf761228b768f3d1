package replay

import (
	"fmt"
	"slices"
	"time"

	"github.com/younwookim/pongkit/internal/application/input"
)

// Recorder wraps an input source and records everything it produces.
type Recorder struct {
	src       input.Source
	data      ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a recorder over src. seed and fixedStep are stored so
// playback can reproduce the session.
func NewRecorder(src input.Source, seed int64, fixedStep float64) *Recorder {
	return &Recorder{
		src: src,
		data: ReplayData{
			Version:   FormatVersion,
			Seed:      seed,
			StartTime: time.Now().Format(time.RFC3339),
			FixedStep: fixedStep,
			Frames:    make([]FrameEvents, 0, 256),
		},
		recording: true,
	}
}

// Poll forwards to the wrapped source and records the frame.
func (r *Recorder) Poll(dst []input.Event) []input.Event {
	start := len(dst)
	dst = r.src.Poll(dst)
	if !r.recording {
		return dst
	}

	if polled := dst[start:]; len(polled) > 0 {
		r.data.Frames = append(r.data.Frames, FrameEvents{
			F:      r.frame,
			Events: slices.Clone(polled),
		})
	}
	r.frame++
	r.data.Length = r.frame
	return dst
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if r.data.Length == 0 {
		return fmt.Errorf("no frames to save")
	}
	return r.data.Save(filename)
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return r.data.Length
}

// Data returns the recorded data.
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
