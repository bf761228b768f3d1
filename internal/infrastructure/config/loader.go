// Package config loads game configuration: the user settings file, the asset
// manifest and environment overrides.
package config

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultManifestName is the asset manifest file name inside an assets root.
const DefaultManifestName = "assets.yaml"

// ImageAsset describes one image entry in the manifest.
type ImageAsset struct {
	Name  string `yaml:"name"`
	Path  string `yaml:"path"`
	Alpha *bool  `yaml:"alpha,omitempty"` // defaults to true
}

// HasAlpha reports the alpha flag, defaulting to true.
func (a ImageAsset) HasAlpha() bool {
	return a.Alpha == nil || *a.Alpha
}

// SoundAsset describes one sound entry in the manifest.
type SoundAsset struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// FontAsset describes one font rasterized at each of Sizes.
type FontAsset struct {
	Name  string    `yaml:"name"`
	Path  string    `yaml:"path"`
	Sizes []float64 `yaml:"sizes"`
}

// Manifest lists the assets the engine populates before scenes run.
type Manifest struct {
	Images []ImageAsset `yaml:"images"`
	Sounds []SoundAsset `yaml:"sounds"`
	Fonts  []FontAsset  `yaml:"fonts"`
}

// Len returns the number of load operations the manifest describes.
func (m *Manifest) Len() int {
	n := len(m.Images) + len(m.Sounds)
	for _, f := range m.Fonts {
		n += len(f.Sizes)
	}
	return n
}

// Validate reports entries with missing names or paths.
func (m *Manifest) Validate() error {
	for i, a := range m.Images {
		if a.Name == "" || a.Path == "" {
			return fmt.Errorf("images[%d]: name and path are required", i)
		}
	}
	for i, a := range m.Sounds {
		if a.Name == "" || a.Path == "" {
			return fmt.Errorf("sounds[%d]: name and path are required", i)
		}
	}
	for i, a := range m.Fonts {
		if a.Name == "" || a.Path == "" {
			return fmt.Errorf("fonts[%d]: name and path are required", i)
		}
		for _, size := range a.Sizes {
			if size <= 0 {
				return fmt.Errorf("fonts[%d]: size must be positive, got %v", i, size)
			}
		}
	}
	return nil
}

// Loader reads configuration files from an fs.FS.
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// FS returns the filesystem the loader reads from.
func (l *Loader) FS() fs.FS {
	return l.fsys
}

// LoadManifest loads and validates a YAML asset manifest.
func (l *Loader) LoadManifest(name string) (*Manifest, error) {
	if name == "" {
		name = DefaultManifestName
	}
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return &m, nil
}

// LoadSettings decodes a settings file from the loader's filesystem, for
// bundled presets. User settings go through Store.
func (l *Loader) LoadSettings(name string) (Settings, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return Default(), fmt.Errorf("failed to read %s: %w", name, err)
	}
	return Unmarshal(data, FormatFor(name))
}
