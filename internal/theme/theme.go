package theme

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"NewsSnap/internal/domain"
	"NewsSnap/internal/ports"
)

// SettingKey is the durable key holding the theme.
const SettingKey = "theme"

// DefaultMode applies when nothing valid is stored.
const DefaultMode = domain.ThemeDark

// Manager keeps the process-wide theme and persists every change.
type Manager struct {
	mu     sync.RWMutex
	repo   ports.SettingsRepository
	logger *slog.Logger
	mode   domain.ThemeMode
}

// NewManager starts with DefaultMode until Init is called.
func NewManager(repo ports.SettingsRepository, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{repo: repo, logger: logger, mode: DefaultMode}
}

// Init loads the stored theme. Read errors and invalid values fall back to DefaultMode.
func (m *Manager) Init(ctx context.Context) domain.ThemeMode {
	mode := DefaultMode
	if m.repo != nil {
		value, ok, err := m.repo.GetSetting(ctx, SettingKey)
		switch {
		case err != nil:
			m.logger.Error("read theme", "error", err)
		case ok:
			if parsed, valid := domain.ParseThemeMode(value); valid {
				mode = parsed
			} else {
				m.logger.Warn("ignoring stored theme", "value", value)
			}
		}
	}

	m.mu.Lock()
	m.mode = mode
	m.mu.Unlock()
	return mode
}

// Mode returns the current theme.
func (m *Manager) Mode() domain.ThemeMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// Toggle flips the theme and persists it.
func (m *Manager) Toggle(ctx context.Context) (domain.ThemeMode, error) {
	next := m.Mode().Toggle()
	if err := m.Set(ctx, next); err != nil {
		return m.Mode(), err
	}
	return next, nil
}

// Set changes the theme and persists it. The in-memory mode changes even if persisting fails.
func (m *Manager) Set(ctx context.Context, mode domain.ThemeMode) error {
	if _, ok := domain.ParseThemeMode(string(mode)); !ok {
		return fmt.Errorf("unknown theme %q", mode)
	}

	m.mu.Lock()
	m.mode = mode
	m.mu.Unlock()

	if m.repo == nil {
		return nil
	}
	if err := m.repo.SetSetting(ctx, SettingKey, string(mode)); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}
