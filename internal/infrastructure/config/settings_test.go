package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()

	assert.False(t, s.Display.Fullscreen)
	assert.True(t, s.Display.VSync)
	assert.Equal(t, 60, s.Display.FPSLimit)
	assert.Equal(t, 1.0, s.Audio.MasterVolume)
	assert.Equal(t, 0.8, s.Audio.MusicVolume)
	assert.Equal(t, 1.0, s.Audio.SFXVolume)
	assert.True(t, s.Audio.MusicEnabled)
	assert.True(t, s.Audio.SFXEnabled)
	assert.Equal(t, DifficultyNormal, s.Gameplay.Difficulty)
	assert.Equal(t, ebiten.KeyArrowUp, s.Key(ActionMoveUp, ebiten.KeyW))
}

// customSettings differs from Default in every field.
func customSettings() Settings {
	return Settings{
		Display: DisplaySettings{Fullscreen: true, VSync: false, FPSLimit: 144},
		Audio: AudioSettings{
			MasterVolume: 0.25,
			MusicVolume:  0.5,
			SFXVolume:    0.75,
			MusicEnabled: false,
			SFXEnabled:   false,
		},
		Gameplay: GameplaySettings{Difficulty: DifficultyHard},
		Controls: map[string]int{
			ActionMoveUp:   int(ebiten.KeyW),
			ActionMoveDown: int(ebiten.KeyS),
			"dash":         int(ebiten.KeyShift),
		},
	}
}

func TestMarshalUnmarshal_Lossless(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		want := customSettings()

		data, err := Marshal(want, f)
		require.NoError(t, err)

		got, err := Unmarshal(data, f)
		require.NoError(t, err)
		assert.Equal(t, want, got, "format %d", f)
	}
}

func TestMarshal_JSONSchema(t *testing.T) {
	data, err := Marshal(Default(), FormatJSON)
	require.NoError(t, err)

	for _, key := range []string{
		`"display"`, `"fullscreen"`, `"vsync"`, `"fps_limit"`,
		`"audio"`, `"master_volume"`, `"music_volume"`, `"sfx_volume"`, `"music_enabled"`, `"sfx_enabled"`,
		`"gameplay"`, `"difficulty"`, `"controls"`, `"move_up"`,
	} {
		assert.Contains(t, string(data), key)
	}
}

func TestUnmarshal_PartialKeepsDefaults(t *testing.T) {
	got, err := Unmarshal([]byte(`{"display": {"fullscreen": true}}`), FormatJSON)
	require.NoError(t, err)

	assert.True(t, got.Display.Fullscreen)
	assert.Equal(t, 60, got.Display.FPSLimit)
	assert.Equal(t, 0.8, got.Audio.MusicVolume)
	assert.Equal(t, DefaultControls(), got.Controls)
}

func TestUnmarshal_ControlsReplaceDefaults(t *testing.T) {
	got, err := Unmarshal([]byte(`{"controls": {"jump": 44}}`), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"jump": 44}, got.Controls)
}

func TestUnmarshal_Corrupt(t *testing.T) {
	got, err := Unmarshal([]byte(`{"display": `), FormatJSON)
	assert.Error(t, err)
	assert.Equal(t, Default(), got)
}

func TestNormalize(t *testing.T) {
	s := Default()
	s.Audio.MasterVolume = 3
	s.Audio.MusicVolume = -1
	s.Display.FPSLimit = 0
	s.Gameplay.Difficulty = "nightmare"
	s.Controls = nil

	n := s.Normalize()
	assert.Equal(t, 1.0, n.Audio.MasterVolume)
	assert.Equal(t, 0.0, n.Audio.MusicVolume)
	assert.Equal(t, 60, n.Display.FPSLimit)
	assert.Equal(t, DifficultyNormal, n.Gameplay.Difficulty)
	assert.NotEmpty(t, n.Controls)
}

func TestClone_IsDeep(t *testing.T) {
	s := Default()
	c := s.Clone()
	c.Controls[ActionPause] = int(ebiten.KeyP)

	assert.Equal(t, int(ebiten.KeyEscape), s.Controls[ActionPause])
}

func TestLevels(t *testing.T) {
	s := Default()
	s.Audio.MasterVolume = 0.5
	s.Audio.MusicVolume = 0.5
	s.Audio.SFXVolume = 1

	assert.InDelta(t, 0.25, s.MusicLevel(), 1e-9)
	assert.InDelta(t, 0.5, s.SFXLevel(), 1e-9)

	s.Audio.MusicEnabled = false
	s.Audio.SFXEnabled = false
	assert.Zero(t, s.MusicLevel())
	assert.Zero(t, s.SFXLevel())
}

func TestAIFactor(t *testing.T) {
	cases := map[string]float64{
		DifficultyEasy:   0.5,
		DifficultyNormal: 0.7,
		DifficultyHard:   0.9,
		"unknown":        0.7,
	}
	for d, want := range cases {
		assert.Equal(t, want, GameplaySettings{Difficulty: d}.AIFactor(), d)
	}
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFor("settings.json"))
	assert.Equal(t, FormatJSON, FormatFor("settings"))
	assert.Equal(t, FormatYAML, FormatFor("settings.yaml"))
	assert.Equal(t, FormatYAML, FormatFor("SETTINGS.YML"))
}

func TestStore_LoadMissingFallsBackToDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "settings.json"))

	s, err := store.Load()
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, s.Display.Fullscreen)
	assert.Equal(t, 60, s.Display.FPSLimit)
}

func TestStore_LoadCorruptFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	s, err := NewStore(path).Load()
	assert.Error(t, err)
	assert.Equal(t, Default(), s)
}

func TestStore_SaveLoad(t *testing.T) {
	for _, name := range []string{"settings.json", "nested/settings.yaml"} {
		t.Run(name, func(t *testing.T) {
			store := NewStore(filepath.Join(t.TempDir(), name))
			want := customSettings()

			require.NoError(t, store.Save(want))
			got, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, want, got)

			entries, err := os.ReadDir(filepath.Dir(store.Path()))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp file must not be left behind")
		})
	}
}

func TestNewStore_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultSettingsPath, NewStore("").Path())
}

func TestEnvOverrides(t *testing.T) {
	o, err := ParseEnv(map[string]string{
		"PONG_FULLSCREEN": "true",
		"PONG_FPS_LIMIT":  "120",
		"PONG_LOG_LEVEL":  "debug",
		"PONG_SETTINGS":   "custom.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", o.LogLevel)
	assert.Equal(t, "custom.yaml", o.SettingsPath)

	s := Default()
	o.ApplyTo(&s)
	assert.True(t, s.Display.Fullscreen)
	assert.Equal(t, 120, s.Display.FPSLimit)
}

func TestEnvOverrides_Unset(t *testing.T) {
	o, err := ParseEnv(map[string]string{})
	require.NoError(t, err)
	assert.Nil(t, o.Fullscreen)
	assert.Nil(t, o.FPSLimit)

	s := Default()
	o.ApplyTo(&s)
	assert.Equal(t, Default(), s)
}

func TestEnvOverrides_Invalid(t *testing.T) {
	_, err := ParseEnv(map[string]string{"PONG_FPS_LIMIT": "fast"})
	assert.Error(t, err)
}

func TestLoadEnv_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PONG_LOG_DIR=from-dotenv\n"), 0o644))
	t.Setenv("PONG_LOG_DIR", "")
	require.NoError(t, os.Unsetenv("PONG_LOG_DIR"))

	o, err := LoadEnv(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", o.LogDir)
}
