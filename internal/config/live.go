package config

import (
	"fmt"
	"os"
	"sync/atomic"
)

// Live holds the current validated configuration. It is safe for concurrent
// use: the reload watcher swaps it while games read it on Reset.
type Live struct {
	cur      atomic.Pointer[FalldownConfig]
	preset   DifficultyPreset
	hasSet   bool
	override func(*FalldownConfig)
}

// NewLive creates a holder with the given configuration. When preset is not
// empty it is applied to the initial and every reloaded configuration.
func NewLive(cfg FalldownConfig, preset DifficultyPreset) *Live {
	l := &Live{preset: preset, hasSet: preset != ""}
	if l.hasSet {
		ApplyFalldownPreset(&cfg, preset)
	}
	l.cur.Store(&cfg)
	return l
}

// Get returns a copy of the current configuration.
func (l *Live) Get() FalldownConfig {
	if l == nil {
		return DefaultFalldownConfig()
	}
	cfg := *l.cur.Load()
	cfg.Characters = append([]Character(nil), cfg.Characters...)
	return cfg
}

// Reload parses data and, if valid, makes it the current configuration.
// An invalid file leaves the current configuration untouched.
func (l *Live) Reload(data []byte) error {
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	if l.hasSet {
		ApplyFalldownPreset(&cfg, l.preset)
	}
	if l.override != nil {
		l.override(&cfg)
	}
	l.cur.Store(&cfg)
	return nil
}

// Override applies fn to the current configuration and to every reloaded
// one, so command line settings survive a file change. Call it before the
// holder is shared.
func (l *Live) Override(fn func(*FalldownConfig)) {
	l.override = fn
	cfg := l.Get()
	fn(&cfg)
	l.cur.Store(&cfg)
}

// ReloadFile reads path and reloads it.
func (l *Live) ReloadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return l.Reload(data)
}
