// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides thread-safe access to the OS keychain/credential store
// for travelgo. The only secret kept there is the session token.
//
// macOS Keychain and Windows Credential Manager are used natively. On Linux the
// Secret Service, pass and an encrypted file under the XDG state directory are
// tried in that order.
package keychain

import (
	"errors"
	"os"
	"runtime"
	"sync"

	"github.com/99designs/keyring"

	"travelgo/cli/internal/xdg"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "travelgo"

// KeySessionToken is the fixed key the session token is stored under.
const KeySessionToken = "session_token"

// FilePasswordEnv supplies the passphrase of the file-based fallback keyring.
// When unset the passphrase is prompted for on the terminal.
const FilePasswordEnv = "TRAVELGO_KEYRING_PASSWORD"

// ErrNotFound is returned when no value is stored under the requested key.
var ErrNotFound = errors.New("keychain: item not found")

// Manager provides thread-safe operations on a keyring.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// New wraps an already opened keyring. Tests pass keyring.NewArrayKeyring.
func New(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// Open opens the OS keyring using the platform's native backends.
func Open() (*Manager, error) {
	cfg := keyring.Config{
		ServiceName:             ServiceName,
		AllowedBackends:         allowedBackends(runtime.GOOS),
		PassPrefix:              ServiceName,
		LibSecretCollectionName: ServiceName,
	}

	switch runtime.GOOS {
	case "windows":
		cfg.WinCredPrefix = ServiceName
	case "darwin":
		cfg.KeychainName = "login"
		cfg.KeychainTrustApplication = true
	default:
		dir, err := xdg.StateDir()
		if err != nil {
			return nil, err
		}
		cfg.FileDir = dir
		cfg.FilePasswordFunc = keyring.TerminalPrompt
		if pw := os.Getenv(FilePasswordEnv); pw != "" {
			cfg.FilePasswordFunc = keyring.FixedStringPrompt(pw)
		}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, err
	}
	return New(ring), nil
}

func allowedBackends(goos string) []keyring.BackendType {
	switch goos {
	case "darwin":
		return []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		return []keyring.BackendType{keyring.WinCredBackend}
	default:
		return []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		}
	}
}

// SaveToken stores the session token, replacing any previous value.
func (m *Manager) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Set(keyring.Item{
		Key:         KeySessionToken,
		Data:        []byte(token),
		Label:       ServiceName + " session",
		Description: "TravelGo API session token",
	})
}

// LoadToken retrieves the session token. A missing or empty item yields ErrNotFound.
func (m *Manager) LoadToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(KeySessionToken)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if len(it.Data) == 0 {
		return "", ErrNotFound
	}
	return string(it.Data), nil
}

// ClearToken removes the session token. Removing a missing item is not an error.
func (m *Manager) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ring.Remove(KeySessionToken); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
