package scene

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/pongkit/internal/infrastructure/audio"
	"github.com/younwookim/pongkit/internal/infrastructure/config"
	"github.com/younwookim/pongkit/internal/infrastructure/resource"
)

type audioSpy struct {
	audio.Silent
	effects []float64
	music   []float64
	volume  float64
	paused  int
	resumed int
	fades   []time.Duration
}

func (a *audioSpy) PlayEffect(_ *audio.Sound, v float64) { a.effects = append(a.effects, v) }
func (a *audioSpy) PlayMusic(_ *audio.Sound, v float64, _ bool) { a.music = append(a.music, v) }
func (a *audioSpy) SetMusicVolume(v float64) { a.volume = v }
func (a *audioSpy) PauseMusic() { a.paused++ }
func (a *audioSpy) ResumeMusic() { a.resumed++ }
func (a *audioSpy) FadeOutMusic(d time.Duration) { a.fades = append(a.fades, d) }

func TestServices_PlayEffect(t *testing.T) {
	settings := config.Default()
	settings.Audio.MasterVolume = 0.5
	spy := &audioSpy{}
	res := resource.NewManager(fstest.MapFS{}, nil)
	svc := &Services{Resources: res, Settings: &settings, Audio: spy}

	// Absent sounds are skipped without error.
	svc.PlayEffect("paddle_hit")
	assert.Empty(t, spy.effects)

	settings.Audio.SFXEnabled = false
	svc.PlayEffect("paddle_hit")
	assert.Empty(t, spy.effects)
}

func TestServices_PlayMusic_MissingTrack(t *testing.T) {
	settings := config.Default()
	spy := &audioSpy{}
	svc := &Services{Resources: resource.NewManager(fstest.MapFS{}, nil), Settings: &settings, Audio: spy}

	assert.Nil(t, svc.Resources.Sound("music"))
	assert.NotPanics(t, func() { svc.PlayMusic("music") })
	assert.Empty(t, spy.music)
}

func TestServices_ApplyAudio(t *testing.T) {
	settings := config.Default()
	settings.Audio.MasterVolume = 0.5
	settings.Audio.MusicVolume = 0.5
	spy := &audioSpy{}
	svc := &Services{Settings: &settings, Audio: spy}

	svc.ApplyAudio()
	assert.InDelta(t, 0.25, spy.volume, 1e-9)
	assert.Equal(t, 1, spy.resumed)

	settings.Audio.MusicEnabled = false
	svc.ApplyAudio()
	assert.Equal(t, 1, spy.paused)
	assert.Equal(t, 1, spy.resumed)
}

func TestServices_NilCollaborators(t *testing.T) {
	svc := &Services{}

	assert.NotPanics(t, func() {
		svc.PlayEffect("x")
		svc.PlayMusic("x")
		svc.FadeOutMusic(time.Second)
		svc.ApplyAudio()
		svc.RequestQuit()
		svc.Save()
		svc.Log().Info("still works")
	})
}

func TestServices_QuitAndSave(t *testing.T) {
	quits := 0
	svc := &Services{
		Quit:         func() { quits++ },
		SaveSettings: func() error { return errors.New("disk full") },
	}

	svc.RequestQuit()
	svc.Save()
	assert.Equal(t, 1, quits)
}
