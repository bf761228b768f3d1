package scene

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/younwookim/pongkit/internal/infrastructure/audio"
	"github.com/younwookim/pongkit/internal/infrastructure/config"
	"github.com/younwookim/pongkit/internal/infrastructure/logging"
	"github.com/younwookim/pongkit/internal/infrastructure/resource"
)

// Display is the part of the window a scene may change.
type Display interface {
	SetFullscreen(on bool)
	IsFullscreen() bool
}

// Services are the engine-owned collaborators handed to scenes at
// construction. Scenes hold the pointer but own none of the fields.
type Services struct {
	Resources *resource.Manager
	Scenes    *Manager
	Settings  *config.Settings
	Audio     audio.Player
	Display   Display
	Logger    *slog.Logger

	// Width and Height are the logical screen size.
	Width, Height int

	// Quit asks the engine to stop at the end of the current frame.
	Quit func()
	// SaveSettings persists *Settings.
	SaveSettings func() error

	// track is the music the current scene asked for; trackStarted is
	// false when it was skipped because music was off.
	track        string
	trackStarted bool
}

// Log returns the logger, never nil.
func (s *Services) Log() *slog.Logger {
	return logging.OrDiscard(s.Logger)
}

// Font returns the named font at size, or the built-in fallback. It is nil
// only without a resource manager.
func (s *Services) Font(name string, size float64) text.Face {
	if s.Resources == nil {
		return nil
	}
	return s.Resources.FontOr(name, size)
}

// PlayEffect plays the named sound at the effect volume. Absent sounds and
// disabled effects are silently skipped.
func (s *Services) PlayEffect(name string) {
	if s.Audio == nil || s.Settings == nil || s.Resources == nil {
		return
	}
	level := s.Settings.SFXLevel()
	if level <= 0 {
		return
	}
	if snd := s.Resources.Sound(name); snd != nil {
		s.Audio.PlayEffect(snd, level)
	}
}

// PlayMusic starts the named track looping at the music volume. The name is
// remembered even when music is off so ApplyAudio can start it later.
func (s *Services) PlayMusic(name string) {
	s.track, s.trackStarted = name, false
	if s.Audio == nil || s.Settings == nil || s.Resources == nil || !s.Settings.Audio.MusicEnabled {
		return
	}
	if snd := s.Resources.Sound(name); snd != nil {
		s.Audio.PlayMusic(snd, s.Settings.MusicLevel(), true)
		s.trackStarted = true
	}
}

// Track returns the music last requested with PlayMusic, or "" after a
// fade out.
func (s *Services) Track() string { return s.track }

// FadeOutMusic fades the current track over d.
func (s *Services) FadeOutMusic(d time.Duration) {
	s.track, s.trackStarted = "", false
	if s.Audio != nil {
		s.Audio.FadeOutMusic(d)
	}
}

// ApplyAudio pushes the current volume settings to the playing music and
// pauses or resumes it to match MusicEnabled. A requested track that never
// started is started now.
func (s *Services) ApplyAudio() {
	if s.Audio == nil || s.Settings == nil {
		return
	}
	if !s.Settings.Audio.MusicEnabled {
		s.Audio.PauseMusic()
		return
	}
	if s.track != "" && !s.trackStarted {
		s.PlayMusic(s.track)
		return
	}
	s.Audio.SetMusicVolume(s.Settings.MusicLevel())
	s.Audio.ResumeMusic()
}

// RequestQuit calls Quit when set.
func (s *Services) RequestQuit() {
	if s.Quit != nil {
		s.Quit()
	}
}

// Save calls SaveSettings when set and logs a failure.
func (s *Services) Save() {
	if s.SaveSettings == nil {
		return
	}
	if err := s.SaveSettings(); err != nil {
		s.Log().Warn("failed to save settings", "err", err)
	}
}
