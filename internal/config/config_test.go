package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(defaultFalldownYAML)
	if err != nil {
		t.Fatalf("Parse(embedded) error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFalldownConfig()) {
		t.Errorf("embedded YAML and DefaultFalldownConfig() differ:\n%+v\n%+v", cfg, DefaultFalldownConfig())
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultFalldownConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if n := len(DefaultCharacters()); n != 8 {
		t.Errorf("roster size = %d, expected 8", n)
	}
}

func TestLoadCustomPathMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "falldown.yaml")
	data := "barrier:\n  speed: 200\nscore:\n  clear_all: 10\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFalldown(path)
	if err != nil {
		t.Fatalf("LoadFalldown error: %v", err)
	}
	if cfg.Barrier.Speed != 200 {
		t.Errorf("Barrier.Speed = %v, expected 200", cfg.Barrier.Speed)
	}
	if cfg.Score.ClearAll != 10 {
		t.Errorf("Score.ClearAll = %d, expected 10", cfg.Score.ClearAll)
	}
	// Untouched keys keep their defaults.
	if cfg.Level.GapMin != 50 || cfg.Barrier.SpeedIncrease != 1 {
		t.Errorf("defaults not preserved: gap_min=%d speed_increase=%v", cfg.Level.GapMin, cfg.Barrier.SpeedIncrease)
	}
	if len(cfg.Characters) != 8 {
		t.Errorf("roster should fall back to defaults, got %d characters", len(cfg.Characters))
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, err := LoadFalldown(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestParseIgnoresRetiredCollisionKey(t *testing.T) {
	cfg, err := Parse([]byte("collision:\n  correction_top: 5\n  correction_bottom: 6\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := DefaultFalldownConfig().Collision
	want.CorrectionBottom = 6
	if cfg.Collision != want {
		t.Errorf("collision = %+v, want %+v", cfg.Collision, want)
	}
}

func TestParseReplacesRoster(t *testing.T) {
	data := `characters:
  - name: Solo
    size: [20, 20]
    inner: [2, 2]
    speed_start: [0, 50]
    speed_max: [300, 500]
    speed_increase: [10, 5]
    speed_decrease: 10
    falling_factor_increase: 0.5
`
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(cfg.Characters) != 1 || cfg.Characters[0].Name != "Solo" {
		t.Errorf("Characters = %+v, expected only Solo", cfg.Characters)
	}
	if cfg.Character(5).Name != "Solo" {
		t.Error("Character() should wrap out of range indices")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FalldownConfig)
		want   string
	}{
		{"width range", func(c *FalldownConfig) { c.Level.SegmentWidthMin = 600 }, "segment_width_min"},
		{"probability", func(c *FalldownConfig) { c.Level.ClearAllProbability = 101 }, "clear_all_probability"},
		{"vertical gap", func(c *FalldownConfig) { c.Level.GapVertMin = 0 }, "gap_vert_min"},
		{"span", func(c *FalldownConfig) { c.Offset.MaxLeft, c.Offset.MaxRight = 0, 10 }, "line span"},
		{"camera", func(c *FalldownConfig) { c.Camera.BorderLeft = 700 }, "camera rect"},
		{"volume", func(c *FalldownConfig) { c.Audio.MusicVolume = 2 }, "music_volume"},
		{"character speed", func(c *FalldownConfig) { c.Characters[2].SpeedStart = Pair{900, 0} }, "speed_start"},
		{"character inner", func(c *FalldownConfig) { c.Characters[0].Inner = Pair{20, 4} }, "inner rect"},
		{"empty roster", func(c *FalldownConfig) { c.Characters = nil }, "at least one character"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFalldownConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestValidateReportsAllErrors(t *testing.T) {
	cfg := DefaultFalldownConfig()
	cfg.Level.ClearLineProbability = -1
	cfg.Highscore.MaxEntries = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"clear_line_probability", "max_entries"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
		ok   bool
	}{
		{"easy", DifficultyEasy, true},
		{"hard", DifficultyHard, true},
		{"fixed", DifficultyFixed, true},
		{"", DifficultyNormal, true},
		{"insane", "", false},
	}
	for _, tc := range tests {
		got, ok := ParsePreset(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParsePreset(%q) = (%q, %v), expected (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestApplyFalldownPreset(t *testing.T) {
	cfg := DefaultFalldownConfig()
	ApplyFalldownPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: difficulty = %+v", cfg.Difficulty)
	}
	if cfg.Barrier.StartAfterLines >= DefaultFalldownConfig().Barrier.StartAfterLines {
		t.Error("hard preset should start the barrier earlier")
	}

	cfg = DefaultFalldownConfig()
	ApplyFalldownPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
	if cfg.Barrier.SpeedIncrease != 0 {
		t.Errorf("fixed preset should stop barrier acceleration, got %v", cfg.Barrier.SpeedIncrease)
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "lines", MaxAt: 100},
		Scaling:      ScalingConfig{BarrierSpeedMultiplier: 1, GapVertReduction: 40, MovingBonus: 20},
	}
	d := NewDifficultyManager(cfg)

	if got := d.Level(0, 0); got != 0.5 {
		t.Errorf("Level(0, 0) = %v, expected 0.5", got)
	}
	if got := d.Level(0, 100); got != 1.0 {
		t.Errorf("Level(0, 100) = %v, expected 1.0", got)
	}
	if got := d.Level(0, 1000); got != 1.0 {
		t.Errorf("Level should clamp, got %v", got)
	}
	if got := d.BarrierSpeed(100); got != 150 {
		t.Errorf("BarrierSpeed(100) = %v, expected 150", got)
	}
	if got := d.GapVertAddMax(60, 0, 100); got != 20 {
		t.Errorf("GapVertAddMax = %d, expected 20", got)
	}
	if got := d.MovingProbability(95, 0, 100); got != 100 {
		t.Errorf("MovingProbability should cap at 100, got %d", got)
	}

	cfg.Enabled = false
	off := NewDifficultyManager(cfg)
	if off.IsEnabled() || off.Level(500, 500) != 0 {
		t.Error("disabled manager should report level 0")
	}

	cfg.Enabled = true
	cfg.InitialLevel = 1.5
	if got := NewDifficultyManager(cfg).Level(0, 0); got != 1.0 {
		t.Errorf("initial level should clamp to 1.0, got %v", got)
	}

	var none *DifficultyManager
	if none.GapVertAddMax(60, 10, 10) != 60 {
		t.Error("nil manager should leave base values unchanged")
	}
}

func TestLiveReloadKeepsLastValid(t *testing.T) {
	live := NewLive(DefaultFalldownConfig(), "")

	if err := live.Reload([]byte("barrier:\n  speed: 90\n")); err != nil {
		t.Fatalf("Reload error: %v", err)
	}
	if got := live.Get().Barrier.Speed; got != 90 {
		t.Errorf("Barrier.Speed = %v, expected 90", got)
	}

	if err := live.Reload([]byte("level:\n  gap_vert_min: 0\n")); err == nil {
		t.Fatal("expected invalid reload to fail")
	}
	if got := live.Get().Barrier.Speed; got != 90 {
		t.Errorf("invalid reload replaced config: speed = %v", got)
	}
}

func TestLiveAppliesPresetOnReload(t *testing.T) {
	live := NewLive(DefaultFalldownConfig(), DifficultyFixed)
	if live.Get().Barrier.SpeedIncrease != 0 {
		t.Error("preset not applied to initial config")
	}
	if err := live.Reload([]byte("barrier:\n  speed_increase: 3\n")); err != nil {
		t.Fatal(err)
	}
	if live.Get().Barrier.SpeedIncrease != 0 {
		t.Error("preset not applied to reloaded config")
	}
}

func TestLiveOverrideSurvivesReload(t *testing.T) {
	live := NewLive(DefaultFalldownConfig(), "")
	live.Override(func(cfg *FalldownConfig) {
		cfg.Audio.Enabled = false
		cfg.AI.ScriptPath = "walk.tengo"
	})
	if got := live.Get(); got.Audio.Enabled || got.AI.ScriptPath != "walk.tengo" {
		t.Errorf("override not applied: %+v %+v", got.Audio, got.AI)
	}

	if err := live.Reload([]byte("audio:\n  enabled: true\n")); err != nil {
		t.Fatal(err)
	}
	if got := live.Get(); got.Audio.Enabled || got.AI.ScriptPath != "walk.tengo" {
		t.Error("override lost on reload")
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "falldown.yaml")
	if err := os.WriteFile(path, []byte("barrier:\n  speed: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	live := NewLive(DefaultFalldownConfig(), "")
	w, err := Watch(path, live, nil)
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	defer func() { _ = w.Close() }()

	if err := os.WriteFile(path, []byte("barrier:\n  speed: 175\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	if got := live.Get().Barrier.Speed; got != 175 {
		t.Errorf("Barrier.Speed = %v, expected 175", got)
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close error: %v", err)
	}
}
