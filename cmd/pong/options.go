package main

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/younwookim/pongkit/internal/infrastructure/config"
)

const (
	defaultAssetsDir = "assets"
	defaultLogDir    = "logs"
)

//go:embed configs/assets.yaml
var bundled embed.FS

// options holds the raw command-line flags.
type options struct {
	settingsPath string
	assetsDir    string
	logLevel     string
	logDir       string
	fullscreen   bool
	record       string
	replay       string
	perfCSV      string
	seed         int64

	// changed reports whether a flag was set explicitly.
	changed func(name string) bool
}

// paths are the settings that flags and PONG_* variables both provide.
type paths struct {
	settingsPath string
	assetsDir    string
	logLevel     string
	logDir       string
}

// resolve merges flags with environment overrides. An explicit flag wins,
// then a non-empty variable, then the flag default.
func (o *options) resolve(env config.EnvOverrides) paths {
	changed := o.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}
	pick := func(flag, value, envValue string) string {
		if !changed(flag) && envValue != "" {
			return envValue
		}
		return value
	}
	return paths{
		settingsPath: pick("settings", o.settingsPath, env.SettingsPath),
		assetsDir:    pick("assets", o.assetsDir, env.AssetsDir),
		logLevel:     pick("log-level", o.logLevel, env.LogLevel),
		logDir:       pick("log-dir", o.logDir, env.LogDir),
	}
}

// loadManifest reads assets.yaml from the assets directory.
func loadManifest(dir string) (*config.Manifest, error) {
	return config.NewLoader(dir).LoadManifest(config.DefaultManifestName)
}

// bundledManifest is the manifest compiled into the binary.
func bundledManifest() (*config.Manifest, error) {
	sub, err := fs.Sub(bundled, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to open bundled configs: %w", err)
	}
	return config.NewFSLoader(sub, "configs").LoadManifest(config.DefaultManifestName)
}
