package audio

import (
	"bytes"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Player plays decoded sounds. Volumes are in [0, 1].
type Player interface {
	PlayEffect(s *Sound, volume float64)
	PlayMusic(s *Sound, volume float64, loop bool)
	SetMusicVolume(volume float64)
	FadeOutMusic(d time.Duration)
	PauseMusic()
	ResumeMusic()
	StopMusic()
	MusicPlaying() bool
	// Advance runs fades and releases finished effect players. Called once
	// per frame.
	Advance(dt time.Duration)
	Close() error
}

// Device plays sounds on an ebiten audio context.
type Device struct {
	ctx *audio.Context

	mu      sync.Mutex
	music   *audio.Player
	volume  float64
	fade    time.Duration // remaining fade time, 0 when not fading
	fadeLen time.Duration
	effects []*audio.Player
}

// NewDevice creates the process-wide audio context. ebiten allows only one
// context per process.
func NewDevice() *Device {
	return &Device{ctx: audio.NewContext(SampleRate)}
}

// PlayEffect starts a one-shot effect. Effects overlap freely.
func (d *Device) PlayEffect(s *Sound, volume float64) {
	if s == nil || volume <= 0 {
		return
	}
	p := d.ctx.NewPlayerFromBytes(s.pcm)
	p.SetVolume(volume)
	p.Play()

	d.mu.Lock()
	d.effects = append(d.effects, p)
	d.mu.Unlock()
}

// PlayMusic replaces the current music track.
func (d *Device) PlayMusic(s *Sound, volume float64, loop bool) {
	d.StopMusic()
	if s == nil {
		return
	}

	var (
		p   *audio.Player
		err error
	)
	if loop {
		src := bytes.NewReader(s.pcm)
		p, err = d.ctx.NewPlayer(audio.NewInfiniteLoop(src, int64(len(s.pcm))))
		if err != nil {
			return
		}
	} else {
		p = d.ctx.NewPlayerFromBytes(s.pcm)
	}
	p.SetVolume(volume)
	p.Play()

	d.mu.Lock()
	d.music = p
	d.volume = volume
	d.mu.Unlock()
}

func (d *Device) SetMusicVolume(volume float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.volume = volume
	if d.music != nil && d.fade == 0 {
		d.music.SetVolume(volume)
	}
}

// FadeOutMusic lowers the music volume linearly to zero over dur, then
// stops it. A non-positive dur stops immediately.
func (d *Device) FadeOutMusic(dur time.Duration) {
	if dur <= 0 {
		d.StopMusic()
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.music == nil {
		return
	}
	d.fade = dur
	d.fadeLen = dur
}

func (d *Device) PauseMusic() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.music != nil {
		d.music.Pause()
	}
}

func (d *Device) ResumeMusic() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.music != nil && !d.music.IsPlaying() {
		d.music.Play()
	}
}

func (d *Device) StopMusic() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopMusicLocked()
}

func (d *Device) stopMusicLocked() {
	if d.music == nil {
		return
	}
	d.music.Pause()
	_ = d.music.Close()
	d.music = nil
	d.fade = 0
	d.fadeLen = 0
}

func (d *Device) MusicPlaying() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.music != nil && d.music.IsPlaying()
}

func (d *Device) Advance(dt time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.music != nil && d.fade > 0 {
		d.fade -= dt
		if d.fade <= 0 {
			d.stopMusicLocked()
		} else {
			d.music.SetVolume(d.volume * FadeLevel(d.fade, d.fadeLen))
		}
	}

	alive := d.effects[:0]
	for _, p := range d.effects {
		if p.IsPlaying() {
			alive = append(alive, p)
			continue
		}
		_ = p.Close()
	}
	clear(d.effects[len(alive):])
	d.effects = alive
}

// Close stops all playback.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopMusicLocked()
	for _, p := range d.effects {
		_ = p.Close()
	}
	d.effects = nil
	return nil
}

// FadeLevel is the volume multiplier with remaining time left of a fade
// lasting total.
func FadeLevel(remaining, total time.Duration) float64 {
	if total <= 0 || remaining <= 0 {
		return 0
	}
	if remaining >= total {
		return 1
	}
	return float64(remaining) / float64(total)
}

// Silent discards every call. It stands in for Device in tests and when
// audio is unavailable.
type Silent struct{}

func (Silent) PlayEffect(*Sound, float64) {}
func (Silent) PlayMusic(*Sound, float64, bool) {}
func (Silent) SetMusicVolume(float64) {}
func (Silent) FadeOutMusic(time.Duration) {}
func (Silent) PauseMusic() {}
func (Silent) ResumeMusic() {}
func (Silent) StopMusic() {}
func (Silent) MusicPlaying() bool { return false }
func (Silent) Advance(time.Duration) {}
func (Silent) Close() error { return nil }

var (
	_ Player = (*Device)(nil)
	_ Player = Silent{}
)
