package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/falldown/internal/audio"
	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
	"github.com/vovakirdan/falldown/internal/script"
	"github.com/vovakirdan/falldown/internal/settings"
	"github.com/vovakirdan/falldown/internal/storage"
)

// app holds the services shared by the interactive commands.
type app struct {
	logger   *log.Logger
	logFile  *os.File
	live     *config.Live
	watcher  *config.Watcher
	settings *settings.Manager
	sink     *audio.Sink
	audio    core.AudioSink
	store    *storage.Store
}

// appOptions selects the optional services a command needs.
type appOptions struct {
	audio bool
	watch bool
}

func newLogger() (*log.Logger, *os.File, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	var file *os.File
	if flagLogFile != "" {
		file, err = os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = file
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "falldown",
	})
	return logger, file, nil
}

// loadConfig loads the configuration and applies the difficulty preset.
func loadConfig() (*config.Live, error) {
	cfg, err := config.LoadFalldown(flagConfig)
	if err != nil {
		return nil, err
	}

	var preset config.DifficultyPreset
	if flagDifficulty != "" {
		p, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return nil, fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
		}
		preset = p
	}
	return config.NewLive(cfg, preset), nil
}

func newApp(opts appOptions) (*app, error) {
	logger, logFile, err := newLogger()
	if err != nil {
		return nil, err
	}
	a := &app{logger: logger, logFile: logFile, audio: audio.Nop()}

	a.live, err = loadConfig()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.settings, err = settings.Open(settings.AppName, logger)
	if err != nil {
		logger.Warn("settings are not persisted", "err", err)
	}
	if err := savePreferences(a.settings, preferencesFromFlags()); err != nil {
		logger.Warn("cannot save preferences", "err", err)
	}

	if flagAIScript != "" {
		// Report script errors now rather than silently falling back in the demo.
		if _, err := script.Load(flagAIScript, a.live.Get().AI.ScriptMaxAllocs); err != nil {
			a.Close()
			return nil, err
		}
	}

	prefs := a.settings.Get()
	a.live.Override(func(cfg *config.FalldownConfig) {
		if flagAIScript != "" {
			cfg.AI.ScriptPath = flagAIScript
		}
		if flagNoSound || !prefs.SoundEnabled {
			cfg.Audio.Enabled = false
		}
		cfg.Audio.EffectsVolume *= prefs.EffectsVolume
		cfg.Audio.MusicVolume *= prefs.MusicVolume
		cfg.Audio.MusicVolumeBarrierVisible *= prefs.MusicVolume
	})

	if opts.watch {
		if path := config.ResolvePath(flagConfig); path != "" {
			a.watcher, err = config.Watch(path, a.live, logger)
			if err != nil {
				logger.Warn("config hot reload disabled", "err", err)
			}
		}
	}

	if opts.audio && a.live.Get().Audio.Enabled {
		a.sink, err = audio.Open(audio.Options{
			SampleRate: a.live.Get().Audio.SampleRate,
			Logger:     logger,
		})
		if err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			a.audio = a.sink
		}
	}

	a.store, err = storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		// Continue without storage - the game still works
		a.store = nil
	}

	return a, nil
}

// preferences are the remembered choices given on the command line.
type preferences struct {
	character int // negative keeps the saved character
	name      string
	sound     *bool
	// Negative volumes keep the saved value.
	effectsVolume float64
	musicVolume   float64
}

func preferencesFromFlags() preferences {
	p := preferences{
		character:     flagPlayer,
		name:          flagName,
		effectsVolume: flagEffectsVolume,
		musicVolume:   flagMusicVolume,
	}
	if rootCmd.PersistentFlags().Changed("sound") {
		p.sound = &flagSound
	}
	return p
}

// savePreferences stores every preference that was given.
func savePreferences(m *settings.Manager, p preferences) error {
	var errs []error
	if p.character >= 0 {
		errs = append(errs, m.SetCharacter(p.character))
	}
	if p.name != "" {
		errs = append(errs, m.SetPlayerName(p.name))
	}
	if p.sound != nil {
		errs = append(errs, m.SetSound(*p.sound))
	}
	if p.effectsVolume >= 0 || p.musicVolume >= 0 {
		cur := m.Get()
		effects, music := cur.EffectsVolume, cur.MusicVolume
		if p.effectsVolume >= 0 {
			effects = p.effectsVolume
		}
		if p.musicVolume >= 0 {
			music = p.musicVolume
		}
		errs = append(errs, m.SetVolumes(effects, music))
	}
	return errors.Join(errs...)
}

// playerName is the name recorded with scores: --name, then the saved
// name, then the login name.
func (a *app) playerName() string {
	if name := a.settings.Get().PlayerName; name != "" {
		return name
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

// runtime builds the runtime config for the current terminal.
func (a *app) runtime() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// Close releases everything newApp opened.
func (a *app) Close() {
	if a.sink != nil {
		a.sink.Close()
	}
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
