package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score or
// the number of generated lines.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/lines.
// A disabled manager always reports level 0 so the base tuning applies unchanged.
func (d *DifficultyManager) Level(score int, lines int) float64 {
	if d == nil || !d.cfg.Enabled {
		return 0
	}
	if d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "lines":
		progress = float64(lines) / maxAt
	default:
		return d.initialLevel
	}

	// Clamp progress to [0, 1]
	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// BarrierSpeed returns the barrier start speed for the initial difficulty.
func (d *DifficultyManager) BarrierSpeed(baseSpeed float64) float64 {
	level := d.Level(0, 0)
	return baseSpeed * (1.0 + level*d.scaling().BarrierSpeedMultiplier)
}

// GapVertAddMax returns the random vertical gap range for the current difficulty.
func (d *DifficultyManager) GapVertAddMax(base int, score int, lines int) int {
	level := d.Level(score, lines)
	result := base - int(level*float64(d.scaling().GapVertReduction))
	if result < 0 {
		result = 0
	}
	return result
}

// MovingProbability returns the moving-line probability for the current difficulty.
func (d *DifficultyManager) MovingProbability(base int, score int, lines int) int {
	level := d.Level(score, lines)
	result := base + int(level*float64(d.scaling().MovingBonus))
	if result > 100 {
		result = 100
	}
	return result
}

func (d *DifficultyManager) scaling() ScalingConfig {
	if d == nil {
		return ScalingConfig{}
	}
	return d.cfg.Scaling
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
