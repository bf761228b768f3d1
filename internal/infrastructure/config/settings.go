package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// Difficulty labels accepted in GameplaySettings.
const (
	DifficultyEasy   = "easy"
	DifficultyNormal = "normal"
	DifficultyHard   = "hard"
)

// Difficulties lists the difficulty labels in menu order.
var Difficulties = []string{DifficultyEasy, DifficultyNormal, DifficultyHard}

// Control action names used by the bundled scenes.
const (
	ActionMoveUp   = "move_up"
	ActionMoveDown = "move_down"
	ActionPause    = "pause"
	ActionConfirm  = "confirm"
)

const defaultFPSLimit = 60

// Settings is the persisted, user-editable configuration.
type Settings struct {
	Display  DisplaySettings  `json:"display" yaml:"display"`
	Audio    AudioSettings    `json:"audio" yaml:"audio"`
	Gameplay GameplaySettings `json:"gameplay" yaml:"gameplay"`
	Controls map[string]int   `json:"controls" yaml:"controls"` // action -> raw ebiten.Key
}

type DisplaySettings struct {
	Fullscreen bool `json:"fullscreen" yaml:"fullscreen"`
	VSync      bool `json:"vsync" yaml:"vsync"`
	FPSLimit   int  `json:"fps_limit" yaml:"fps_limit"`
}

// AudioSettings volumes are in [0, 1].
type AudioSettings struct {
	MasterVolume float64 `json:"master_volume" yaml:"master_volume"`
	MusicVolume  float64 `json:"music_volume" yaml:"music_volume"`
	SFXVolume    float64 `json:"sfx_volume" yaml:"sfx_volume"`
	MusicEnabled bool    `json:"music_enabled" yaml:"music_enabled"`
	SFXEnabled   bool    `json:"sfx_enabled" yaml:"sfx_enabled"`
}

type GameplaySettings struct {
	Difficulty string `json:"difficulty" yaml:"difficulty"`
}

// Default returns the built-in settings used when no file can be read.
func Default() Settings {
	return Settings{
		Display: DisplaySettings{
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   defaultFPSLimit,
		},
		Audio: AudioSettings{
			MasterVolume: 1.0,
			MusicVolume:  0.8,
			SFXVolume:    1.0,
			MusicEnabled: true,
			SFXEnabled:   true,
		},
		Gameplay: GameplaySettings{Difficulty: DifficultyNormal},
		Controls: DefaultControls(),
	}
}

// DefaultControls returns the default key bindings.
func DefaultControls() map[string]int {
	return map[string]int{
		ActionMoveUp:   int(ebiten.KeyArrowUp),
		ActionMoveDown: int(ebiten.KeyArrowDown),
		ActionPause:    int(ebiten.KeyEscape),
		ActionConfirm:  int(ebiten.KeyEnter),
	}
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	s.Controls = maps.Clone(s.Controls)
	return s
}

// Normalize clamps out-of-range values to usable ones.
func (s Settings) Normalize() Settings {
	s.Audio.MasterVolume = clamp01(s.Audio.MasterVolume)
	s.Audio.MusicVolume = clamp01(s.Audio.MusicVolume)
	s.Audio.SFXVolume = clamp01(s.Audio.SFXVolume)
	if s.Display.FPSLimit <= 0 {
		s.Display.FPSLimit = defaultFPSLimit
	}
	if !ValidDifficulty(s.Gameplay.Difficulty) {
		s.Gameplay.Difficulty = DifficultyNormal
	}
	if s.Controls == nil {
		s.Controls = DefaultControls()
	}
	return s
}

// Key returns the key bound to action, or def when unbound.
func (s Settings) Key(action string, def ebiten.Key) ebiten.Key {
	if code, ok := s.Controls[action]; ok {
		return ebiten.Key(code)
	}
	return def
}

// MusicLevel is the effective music volume, 0 when music is disabled.
func (s Settings) MusicLevel() float64 {
	if !s.Audio.MusicEnabled {
		return 0
	}
	return s.Audio.MasterVolume * s.Audio.MusicVolume
}

// SFXLevel is the effective effect volume, 0 when effects are disabled.
func (s Settings) SFXLevel() float64 {
	if !s.Audio.SFXEnabled {
		return 0
	}
	return s.Audio.MasterVolume * s.Audio.SFXVolume
}

// ValidDifficulty reports whether d is a known difficulty label.
func ValidDifficulty(d string) bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// AIFactor is the fraction of full paddle speed the computer opponent uses
// at this difficulty.
func (g GameplaySettings) AIFactor() float64 {
	switch g.Difficulty {
	case DifficultyEasy:
		return 0.5
	case DifficultyHard:
		return 0.9
	default:
		return 0.7
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Format selects the settings file encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the encoding from the file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Marshal encodes s.
func Marshal(s Settings, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		data, err := yaml.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("failed to encode settings yaml: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(s, "", "    ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode settings json: %w", err)
		}
		return data, nil
	}
}

// Unmarshal decodes data on top of Default and normalizes the result, so
// fields missing from the file keep their defaults.
func Unmarshal(data []byte, f Format) (Settings, error) {
	s := Default()
	// Decoding into a non-nil map merges keys; start empty so the file's
	// bindings replace the defaults when present.
	s.Controls = nil

	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &s)
	default:
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to parse settings: %w", err)
	}

	return s.Normalize(), nil
}
