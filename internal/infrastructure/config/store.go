package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSettingsPath is used when no path is configured.
const DefaultSettingsPath = "settings.json"

// Store persists Settings in a single file. The encoding follows the file
// extension (see FormatFor).
type Store struct {
	path string
}

// NewStore creates a store for path. An empty path uses DefaultSettingsPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultSettingsPath
	}
	return &Store{path: path}
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file. On any failure it returns Default() together
// with the error, so callers can log and carry on.
func (s *Store) Load() (Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Default(), fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	settings, err := Unmarshal(data, FormatFor(s.path))
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", s.path, err)
	}
	return settings, nil
}

// Save writes settings through a temporary file and a rename so a crash
// mid-write leaves the previous file intact.
func (s *Store) Save(settings Settings) error {
	data, err := Marshal(settings, FormatFor(s.path))
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
