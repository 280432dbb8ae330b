// Package settings persists the player's preferences between sessions.
package settings

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/falldown/internal/core"
)

// AppName is the gdata application directory.
const AppName = "falldown"

const (
	settingsObject   = "settings"
	settingsProperty = "player"
)

// Settings are the stored preferences.
type Settings struct {
	Character     int     `yaml:"character"`
	PlayerName    string  `yaml:"player_name"`
	SoundEnabled  bool    `yaml:"sound_enabled"`
	EffectsVolume float64 `yaml:"effects_volume"`
	MusicVolume   float64 `yaml:"music_volume"`
}

// Default returns the settings used before anything was saved.
func Default() Settings {
	return Settings{
		Character:     0,
		SoundEnabled:  true,
		EffectsVolume: 1,
		MusicVolume:   1,
	}
}

// Manager loads and saves Settings. A Manager without a gdata store keeps
// settings in memory only.
type Manager struct {
	store    *gdata.Manager
	settings Settings
	logger   *log.Logger
}

// Open opens the per-user store for appName and loads the saved settings.
// A store that cannot be opened is not fatal: the manager falls back to
// memory and the error is returned for logging.
func Open(appName string, logger *log.Logger) (*Manager, error) {
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		m := NewManager(nil, logger)
		return m, fmt.Errorf("settings: open store: %w", err)
	}
	m := NewManager(store, logger)
	if err := m.Load(); err != nil {
		return m, err
	}
	return m, nil
}

// NewManager wraps store, which may be nil.
func NewManager(store *gdata.Manager, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		store:    store,
		settings: Default(),
		logger:   logger.WithPrefix("settings"),
	}
}

// Persistent reports whether settings survive the process.
func (m *Manager) Persistent() bool {
	return m != nil && m.store != nil
}

// Load replaces the in-memory settings with the stored ones. Missing data
// yields defaults; unreadable data yields defaults and an error.
func (m *Manager) Load() error {
	m.settings = Default()
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("settings: load: %w", err)
	}
	loaded := Default()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("settings: decode: %w", err)
	}
	loaded.EffectsVolume = core.ClampF(loaded.EffectsVolume, 0, 1)
	loaded.MusicVolume = core.ClampF(loaded.MusicVolume, 0, 1)
	if loaded.Character < 0 {
		loaded.Character = 0
	}
	m.settings = loaded
	m.logger.Debug("loaded", "character", loaded.Character, "sound", loaded.SoundEnabled)
	return nil
}

// Save writes the in-memory settings to the store.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	return nil
}

// Get returns the current settings. A nil manager returns defaults.
func (m *Manager) Get() Settings {
	if m == nil {
		return Default()
	}
	return m.settings
}

// SetCharacter selects a roster index and saves it.
func (m *Manager) SetCharacter(index int) error {
	if m == nil {
		return nil
	}
	if index < 0 {
		index = 0
	}
	m.settings.Character = index
	return m.Save()
}

// SetPlayerName remembers the name used for highscores and saves it.
func (m *Manager) SetPlayerName(name string) error {
	if m == nil {
		return nil
	}
	m.settings.PlayerName = name
	return m.Save()
}

// SetSound toggles sound output and saves it.
func (m *Manager) SetSound(enabled bool) error {
	if m == nil {
		return nil
	}
	m.settings.SoundEnabled = enabled
	return m.Save()
}

// SetVolumes stores both volumes, clamped to 0.0-1.0, and saves them.
func (m *Manager) SetVolumes(effects, music float64) error {
	if m == nil {
		return nil
	}
	m.settings.EffectsVolume = core.ClampF(effects, 0, 1)
	m.settings.MusicVolume = core.ClampF(music, 0, 1)
	return m.Save()
}
