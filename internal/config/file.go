package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the mdtoc config directory, respecting XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mdtoc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mdtoc")
}

// ConfigPath returns the full path to the user config.toml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load merges the base settings, the user config.toml (if present) and then
// each of extra in order. Later files win per key. Missing extra files are
// an error; a missing user config is not.
func Load(extra ...string) (Settings, error) {
	s := Default()

	if _, err := s.LoadFile(ConfigPath()); err != nil {
		return s, err
	}
	for _, path := range extra {
		exists, err := s.LoadFile(ExpandHome(path))
		if err != nil {
			return s, err
		}
		if !exists {
			return s, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
		}
	}
	return s, nil
}

// LoadFile reads a TOML overlay and merges the keys it sets into s.
// Returns true if the file existed, false otherwise.
func (s *Settings) LoadFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if _, err := s.merge(data, path); err != nil {
		return true, err
	}
	return true, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, _ := os.UserHomeDir()
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
