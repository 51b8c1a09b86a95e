// Package xdg resolves XDG Base Directory paths for travelgo.
// Configuration lives under $XDG_CONFIG_HOME/travelgo and the file-based
// keyring fallback under $XDG_STATE_HOME/travelgo. Both directories are
// created private (0700) on first use.
package xdg

import (
	"os"
	"path/filepath"
)

const appDir = "travelgo"

// ConfigDir returns the XDG config directory for travelgo.
// It falls back to ~/.config/travelgo when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return ensure("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for travelgo.
// It falls back to ~/.local/state/travelgo when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return ensure("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func ensure(env, homeRel string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeRel)
	}
	dir := filepath.Join(base, appDir)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
