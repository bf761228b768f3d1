package engine

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/pongkit/internal/infrastructure/audio"
)

// Platform is the process-level display and audio surface the engine drives.
type Platform interface {
	// Init brings up the audio context and window-close handling.
	Init() error
	MonitorSize() (int, int)
	SetFullscreen(on bool)
	IsFullscreen() bool
	SetWindowSize(w, h int)
	SetWindowTitle(title string)
	SetTPS(tps int)
	SetVsync(on bool)
	// Audio is valid after Init.
	Audio() audio.Player
	// Run blocks until the game terminates.
	Run(game ebiten.Game) error
	Close() error
}

// EbitenPlatform is the production Platform backed by ebiten globals.
type EbitenPlatform struct {
	device *audio.Device
}

func NewEbitenPlatform() *EbitenPlatform {
	return &EbitenPlatform{}
}

func (p *EbitenPlatform) Init() (err error) {
	// audio.NewContext panics when a context already exists or the driver
	// cannot be opened.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("audio: %v", r)
		}
	}()
	ebiten.SetWindowClosingHandled(true)
	p.device = audio.NewDevice()
	return nil
}

func (p *EbitenPlatform) MonitorSize() (int, int) {
	return ebiten.Monitor().Size()
}

func (p *EbitenPlatform) SetFullscreen(on bool) {
	ebiten.SetFullscreen(on)
}

func (p *EbitenPlatform) IsFullscreen() bool {
	return ebiten.IsFullscreen()
}

func (p *EbitenPlatform) SetWindowSize(w, h int) {
	ebiten.SetWindowSize(w, h)
}

func (p *EbitenPlatform) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

func (p *EbitenPlatform) SetTPS(tps int) {
	ebiten.SetTPS(tps)
}

func (p *EbitenPlatform) SetVsync(on bool) {
	ebiten.SetVsyncEnabled(on)
}

func (p *EbitenPlatform) Audio() audio.Player {
	if p.device == nil {
		return audio.Silent{}
	}
	return p.device
}

func (p *EbitenPlatform) Run(game ebiten.Game) error {
	return ebiten.RunGame(game)
}

func (p *EbitenPlatform) Close() error {
	if p.device == nil {
		return nil
	}
	return p.device.Close()
}
