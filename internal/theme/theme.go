// Package theme holds the persisted dark/light preference.
package theme

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arun-kumar-js/heal-doc/internal/storage"
)

const keyTheme = "themePreference"

// Manager owns the theme flag: a single boolean persisted under
// themePreference, defaulting to light when absent or unreadable.
type Manager struct {
	kv  storage.Store
	log zerolog.Logger

	mu   sync.Mutex
	dark bool
}

// NewManager restores the persisted preference. A missing or corrupt
// value falls back to light mode rather than failing.
func NewManager(kv storage.Store, log zerolog.Logger) *Manager {
	m := &Manager{kv: kv, log: log}

	b, err := kv.Get(keyTheme)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			log.Warn().Err(err).Msg("failed to read theme preference")
		}
		return m
	}
	var dark bool
	if err := json.Unmarshal(b, &dark); err != nil {
		log.Warn().Err(err).Msg("corrupt theme preference, using light mode")
		return m
	}
	m.dark = dark
	return m
}

// IsDark reports the current preference.
func (m *Manager) IsDark() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dark
}

// Toggle flips the preference, persisting before the in-memory flip so
// a write failure never leaves storage and memory disagreeing.
func (m *Manager) Toggle() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := !m.dark
	b, _ := json.Marshal(next)
	if err := m.kv.Set(keyTheme, b); err != nil {
		return m.dark, err
	}
	m.dark = next
	return m.dark, nil
}
