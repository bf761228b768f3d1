// Package scenetest provides fixtures for testing scenes without a window or
// an audio device.
package scenetest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing/fstest"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/pongkit/internal/application/scene"
	"github.com/younwookim/pongkit/internal/infrastructure/audio"
	"github.com/younwookim/pongkit/internal/infrastructure/config"
	"github.com/younwookim/pongkit/internal/infrastructure/resource"
)

const (
	Width  = 800
	Height = 600
)

// Audio counts player calls.
type Audio struct {
	audio.Silent
	Effects     int
	Music       int
	Fades       int
	Pauses      int
	Resumes     int
	MusicVolume float64
}

func (a *Audio) PlayEffect(*audio.Sound, float64) { a.Effects++ }
func (a *Audio) PlayMusic(*audio.Sound, float64, bool) { a.Music++ }
func (a *Audio) FadeOutMusic(time.Duration) { a.Fades++ }
func (a *Audio) PauseMusic() { a.Pauses++ }
func (a *Audio) ResumeMusic() { a.Resumes++ }
func (a *Audio) SetMusicVolume(v float64) { a.MusicVolume = v }

// Display is a fake window.
type Display struct {
	Fullscreen bool
	Changes    int
}

func (d *Display) SetFullscreen(on bool) {
	d.Fullscreen = on
	d.Changes++
}

func (d *Display) IsFullscreen() bool { return d.Fullscreen }

// Env is a Services value wired to fakes.
type Env struct {
	*scene.Services
	Audio    *Audio
	Display  *Display
	Settings *config.Settings
	Quits    int
	Saves    int
	// SaveErr is returned by SaveSettings when set.
	SaveErr error
}

// New creates an Env whose resource manager holds a short sound under each
// of the given names.
func New(sounds ...string) *Env {
	fsys := fstest.MapFS{}
	for _, name := range sounds {
		fsys["sounds/"+name+".wav"] = &fstest.MapFile{Data: WAV(441)}
	}
	res := resource.NewManager(fsys, nil)
	for _, name := range sounds {
		res.LoadSound(name, "sounds/"+name+".wav")
	}

	settings := config.Default()
	env := &Env{
		Audio:    &Audio{},
		Display:  &Display{},
		Settings: &settings,
	}
	env.Services = &scene.Services{
		Resources: res,
		Scenes:    scene.NewManager(nil),
		Settings:  env.Settings,
		Audio:     env.Audio,
		Display:   env.Display,
		Width:     Width,
		Height:    Height,
		Quit:      func() { env.Quits++ },
		SaveSettings: func() error {
			env.Saves++
			return env.SaveErr
		},
	}
	return env
}

// ErrSave is a convenience failure for SaveErr.
var ErrSave = errors.New("disk full")

// Stub is a scene that records its lifecycle.
type Stub struct {
	scene.Base
	Entered []scene.Params
	Exits   int
	Draws   int
}

func (s *Stub) Enter(p scene.Params) { s.Entered = append(s.Entered, p) }
func (s *Stub) Exit() { s.Exits++ }
func (s *Stub) Draw(*ebiten.Image) { s.Draws++ }

// Entries returns how many times the scene was entered.
func (s *Stub) Entries() int { return len(s.Entered) }

// Last returns the params of the latest Enter.
func (s *Stub) Last() scene.Params {
	if len(s.Entered) == 0 {
		return nil
	}
	return s.Entered[len(s.Entered)-1]
}

// Register adds a Stub under each name and returns them by name.
func (e *Env) Register(names ...string) map[string]*Stub {
	stubs := make(map[string]*Stub, len(names))
	for _, n := range names {
		stubs[n] = &Stub{}
		e.Scenes.Register(n, stubs[n])
	}
	return stubs
}

// WAV returns a silent 16-bit stereo 44.1kHz WAV file.
func WAV(frames int) []byte {
	dataLen := frames * 4
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVEfmt ")
	for _, v := range []any{uint32(16), uint16(1), uint16(2), uint32(44100), uint32(44100 * 4), uint16(4), uint16(16)} {
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataLen))
	buf.Write(make([]byte, dataLen))
	return buf.Bytes()
}
