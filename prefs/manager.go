// ABOUTME: Loads and saves the preference blob through a backend
// ABOUTME: Load never fails; missing, unreadable or malformed blobs yield defaults
package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harperreed/dealgrid/columns"
)

type Manager struct {
	backend Backend
	reg     *columns.Registry
}

func NewManager(backend Backend, reg *columns.Registry) *Manager {
	return &Manager{backend: backend, reg: reg}
}

// Load returns the saved preferences, or defaults.
func (m *Manager) Load(ctx context.Context) Preferences {
	data, err := m.backend.Get(ctx, Key)
	if errors.Is(err, ErrNotFound) {
		log.Debug("no saved preferences, using defaults")
		return Defaults(m.reg)
	}
	if err != nil {
		log.Warn("failed to read preferences, using defaults", "err", err)
		return Defaults(m.reg)
	}

	p, ok := Decode(data, m.reg)
	if !ok {
		log.Warn("saved preferences are malformed, using defaults", "bytes", len(data))
	}
	return p
}

func (m *Manager) Save(ctx context.Context, p Preferences) error {
	data, err := Encode(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := m.backend.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// Raw returns the stored blob as-is.
func (m *Manager) Raw(ctx context.Context) ([]byte, error) {
	return m.backend.Get(ctx, Key)
}

// Reset deletes the stored blob so the next Load returns defaults.
func (m *Manager) Reset(ctx context.Context) error {
	if err := m.backend.Delete(ctx, Key); err != nil {
		return fmt.Errorf("reset preferences: %w", err)
	}
	return nil
}

func (m *Manager) Close() error {
	return m.backend.Close()
}
