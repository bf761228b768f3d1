// Package audio decodes sound assets and plays them through ebiten's audio
// context.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// SampleRate is the rate every Sound is resampled to.
const SampleRate = 44100

// bytesPerFrame is 16-bit little endian stereo.
const bytesPerFrame = 4

// Sound is a fully decoded sound: 16-bit stereo PCM at SampleRate.
// It is immutable and safe to play many times concurrently.
type Sound struct {
	pcm []byte
}

// NewSound wraps already decoded PCM.
func NewSound(pcm []byte) *Sound {
	return &Sound{pcm: pcm}
}

// PCM returns the decoded samples. Callers must not modify them.
func (s *Sound) PCM() []byte {
	return s.pcm
}

// Len returns the PCM size in bytes.
func (s *Sound) Len() int {
	return len(s.pcm)
}

// Duration returns the playback length.
func (s *Sound) Duration() time.Duration {
	frames := len(s.pcm) / bytesPerFrame
	return time.Duration(frames) * time.Second / SampleRate
}

// Decode decodes r based on ext (".wav", ".ogg" or ".mp3").
func Decode(ext string, r io.Reader) (*Sound, error) {
	var (
		stream io.Reader
		err    error
	)
	switch strings.ToLower(ext) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(SampleRate, r)
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(SampleRate, r)
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(SampleRate, r)
	default:
		return nil, fmt.Errorf("unsupported sound format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ext, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s stream: %w", ext, err)
	}
	return &Sound{pcm: pcm}, nil
}

// DecodeFile decodes data using the extension of path.
func DecodeFile(path string, data []byte) (*Sound, error) {
	return Decode(filepath.Ext(path), bytes.NewReader(data))
}
