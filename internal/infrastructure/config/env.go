package config

import (
	"errors"
	"fmt"
	"io/fs"

	envparse "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvOverrides holds PONG_* environment variables.
// Pointer fields distinguish "unset" from the zero value.
type EnvOverrides struct {
	SettingsPath string `env:"PONG_SETTINGS"`
	AssetsDir    string `env:"PONG_ASSETS"`
	LogLevel     string `env:"PONG_LOG_LEVEL"`
	LogDir       string `env:"PONG_LOG_DIR"`
	Fullscreen   *bool  `env:"PONG_FULLSCREEN"`
	FPSLimit     *int   `env:"PONG_FPS_LIMIT"`
}

// LoadEnv loads dotenv files (missing ones are skipped) into the process
// environment without overriding existing variables, then parses PONG_*.
func LoadEnv(dotenvFiles ...string) (EnvOverrides, error) {
	for _, name := range dotenvFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return EnvOverrides{}, fmt.Errorf("failed to load %s: %w", name, err)
		}
	}

	var o EnvOverrides
	if err := envparse.Parse(&o); err != nil {
		return EnvOverrides{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return o, nil
}

// ParseEnv parses overrides from an explicit variable map.
func ParseEnv(vars map[string]string) (EnvOverrides, error) {
	var o EnvOverrides
	if err := envparse.ParseWithOptions(&o, envparse.Options{Environment: vars}); err != nil {
		return EnvOverrides{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return o, nil
}

// ApplyTo writes the display overrides into s.
func (o EnvOverrides) ApplyTo(s *Settings) {
	if o.Fullscreen != nil {
		s.Display.Fullscreen = *o.Fullscreen
	}
	if o.FPSLimit != nil && *o.FPSLimit > 0 {
		s.Display.FPSLimit = *o.FPSLimit
	}
}
