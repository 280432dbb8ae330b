package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "falldown.yaml"

// LoadFalldown loads and validates the Falldown configuration.
// Search order: customPath -> ~/.falldown/configs/falldown.yaml -> ./configs/falldown.yaml -> embedded default.
// Files are decoded on top of the defaults, so a file only needs the keys it changes.
func LoadFalldown(customPath string) (FalldownConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FalldownConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		return Parse(data)
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(fileName), filepath.Join("configs", fileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultFalldownYAML)
	if err != nil {
		return DefaultFalldownConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (FalldownConfig, error) {
	cfg := DefaultFalldownConfig()
	// An explicit roster replaces the default one rather than merging into it.
	cfg.Characters = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FalldownConfig{}, fmt.Errorf("config: parse: %w", err)
	}
	if len(cfg.Characters) == 0 {
		cfg.Characters = DefaultCharacters()
	}
	if err := cfg.Validate(); err != nil {
		return FalldownConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg FalldownConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// ResolvePath returns the file LoadFalldown would read for customPath, or an
// empty string when the embedded default is used.
func ResolvePath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range []string{userConfigPath(fileName), filepath.Join("configs", fileName)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".falldown", "configs", filename)
}

// ApplyFalldownPreset modifies the config based on a difficulty preset.
func ApplyFalldownPreset(cfg *FalldownConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		cfg.Barrier.SpeedIncrease = 0
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust the barrier lead based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Barrier.StartAfterLines = 15
		cfg.Barrier.SpeedIncrease = 0.5
	case DifficultyHard:
		cfg.Barrier.StartAfterLines = 6
		cfg.Barrier.SpeedIncrease = 2
	}
}
