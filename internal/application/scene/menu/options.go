package menu

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/pongkit/internal/application/input"
	"github.com/younwookim/pongkit/internal/application/scene"
	"github.com/younwookim/pongkit/internal/infrastructure/config"
	"github.com/younwookim/pongkit/internal/ui"
)

// Options edits a draft copy of the settings. Apply commits, persists and
// applies the draft; Back and Escape drop it.
type Options struct {
	screen
	returnTo string
	draft    config.Settings

	fullscreen, music, sfx      *ui.Toggle
	masterVol, musicVol, sfxVol *ui.Slider
	difficulty                  *ui.Dropdown
}

var _ scene.Scene = (*Options)(nil)

// NewOptions creates an options scene that returns to returnTo when closed.
func NewOptions(svc *scene.Services, returnTo string) *Options {
	return &Options{screen: screen{svc: svc}, returnTo: returnTo}
}

// Draft returns the settings being edited.
func (o *Options) Draft() config.Settings { return o.draft }

func (o *Options) Enter(scene.Params) {
	o.draft = config.Default()
	if o.svc.Settings != nil {
		o.draft = o.svc.Settings.Clone()
	}
	o.loadFonts(48, 24)

	d := &o.draft
	menu := o.newMenu(o.svc.Width/2, 70, 400)
	header := menu.AddLabel("Game Settings")
	header.Background = colorHeader

	o.fullscreen = menu.AddToggle("Fullscreen", d.Display.Fullscreen, func(on bool) { d.Display.Fullscreen = on })
	o.music = menu.AddToggle("Music", d.Audio.MusicEnabled, func(on bool) { d.Audio.MusicEnabled = on })
	o.sfx = menu.AddToggle("Sound Effects", d.Audio.SFXEnabled, func(on bool) { d.Audio.SFXEnabled = on })

	o.masterVol = menu.AddSlider("Master", 0, 1, d.Audio.MasterVolume, func(v float64) { d.Audio.MasterVolume = v })
	o.musicVol = menu.AddSlider("Music Volume", 0, 1, d.Audio.MusicVolume, func(v float64) { d.Audio.MusicVolume = v })
	o.sfxVol = menu.AddSlider("Effects Volume", 0, 1, d.Audio.SFXVolume, func(v float64) { d.Audio.SFXVolume = v })

	o.difficulty = menu.AddDropdown("Difficulty", config.Difficulties, 1, func(_ int, s string) { d.Gameplay.Difficulty = s })
	o.difficulty.Select(d.Gameplay.Difficulty)

	menu.AddButton("Apply", o.Apply)
	menu.AddButton("Back", o.Back)
}

// Apply commits the draft and returns to the previous scene.
func (o *Options) Apply() {
	settings := o.svc.Settings
	if settings == nil {
		o.Back()
		return
	}

	fullscreenChanged := settings.Display.Fullscreen != o.draft.Display.Fullscreen
	*settings = o.draft.Clone().Normalize()
	if fullscreenChanged && o.svc.Display != nil {
		o.svc.Display.SetFullscreen(settings.Display.Fullscreen)
	}
	o.svc.ApplyAudio()
	o.svc.Save()
	o.svc.Log().Info("settings applied", "fullscreen", settings.Display.Fullscreen,
		"music", settings.Audio.MusicEnabled, "difficulty", settings.Gameplay.Difficulty)

	o.goTo(o.returnTo, nil)
}

// Back returns without saving.
func (o *Options) Back() {
	o.goTo(o.returnTo, nil)
}

func (o *Options) HandleInput(ev input.Event) {
	if ev.IsKeyDown(ebiten.KeyEscape) {
		o.Back()
		return
	}
	o.screen.HandleInput(ev)
}

func (o *Options) Draw(dst *ebiten.Image) {
	dst.Fill(colorPanel)
	o.drawTitle(dst, "Options", 35, colorTitle)
	o.drawMenu(dst)
}
