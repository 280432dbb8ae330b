// Package config provides YAML-based game configuration loading, validation,
// difficulty management and hot reload for falldown.
package config

// FalldownConfig contains all tunables of the game. Values are validated once
// at load time; the simulation reads the typed fields directly.
type FalldownConfig struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Camera     CameraConfig     `yaml:"camera"`
	Offset     OffsetConfig     `yaml:"offset"`
	Level      LevelConfig      `yaml:"level"`
	Collision  CollisionConfig  `yaml:"collision"`
	Barrier    BarrierConfig    `yaml:"barrier"`
	Player     PlayerConfig     `yaml:"player"`
	Score      ScoreConfig      `yaml:"score"`
	Audio      AudioConfig      `yaml:"audio"`
	AI         AIConfig         `yaml:"ai"`
	Highscore  HighscoreConfig  `yaml:"highscore"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Characters []Character      `yaml:"characters"`
}

// Pair is an (x, y) tuple written as a two element YAML sequence.
type Pair [2]float64

// X returns the first component.
func (p Pair) X() float64 { return p[0] }

// Y returns the second component.
func (p Pair) Y() float64 { return p[1] }

// ScreenConfig is the size of the simulated viewport in world pixels.
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CameraConfig defines how far (in pixels) the player may get to each
// viewport edge before the world scrolls instead.
type CameraConfig struct {
	BorderLeft   float64 `yaml:"border_left"`
	BorderRight  float64 `yaml:"border_right"`
	BorderTop    float64 `yaml:"border_top"`
	BorderBottom float64 `yaml:"border_bottom"`
}

// OffsetConfig bounds the scroll offset.
type OffsetConfig struct {
	MaxUp    float64 `yaml:"max_up"`
	MaxLeft  float64 `yaml:"max_left"`
	MaxRight float64 `yaml:"max_right"`
	// Ceiling ends the game once the vertical offset exceeds it.
	Ceiling float64 `yaml:"ceiling"`
}

// LevelConfig drives line generation and segment behavior.
type LevelConfig struct {
	GeneratorModifier     float64 `yaml:"generator_modifier"`
	FirstLineY            float64 `yaml:"first_line_y"`
	LineMovingProbability int     `yaml:"line_moving_probability"` // percent
	ClearLineProbability  int     `yaml:"clear_line_probability"`  // percent
	ClearAllProbability   int     `yaml:"clear_all_probability"`   // percent
	SegmentWidthMin       int     `yaml:"segment_width_min"`
	SegmentWidthMax       int     `yaml:"segment_width_max"`
	SegmentHeight         float64 `yaml:"segment_height"`
	SegmentImageHeight    float64 `yaml:"segment_image_height"`
	GapMin                int     `yaml:"gap_min"`
	GapAddMax             int     `yaml:"gap_add_max"`
	GapVertMin            int     `yaml:"gap_vert_min"`
	GapVertAddMax         int     `yaml:"gap_vert_add_max"`
	MoveSpeed             float64 `yaml:"move_speed"`
	MoveMax               float64 `yaml:"move_max"`
	MovingDecreaseFactor  float64 `yaml:"moving_decrease_factor"`
	MaxIterations         int     `yaml:"max_iterations"`
	CleanEvery            int     `yaml:"clean_every"`
	IntroTicks            int     `yaml:"intro_ticks"`
	ClearLineIcon         Pair    `yaml:"clear_line_icon"`
	ClearLineIconLift     float64 `yaml:"clear_line_icon_lift"`
	ClearAllIcon          Pair    `yaml:"clear_all_icon"`
	ClearAllIconLift      float64 `yaml:"clear_all_icon_lift"`
}

// MinX returns the leftmost x a line may start at.
func (l LevelConfig) MinX(o OffsetConfig) float64 {
	return o.MaxLeft * l.GeneratorModifier
}

// MaxX returns the rightmost x a line may extend to. It spans the whole
// horizontal offset range from x = 0 so lines still fill the viewport when
// the camera sits at the right offset limit.
func (l LevelConfig) MaxX(o OffsetConfig) float64 {
	return (o.MaxRight - o.MaxLeft) * l.GeneratorModifier
}

// CollisionConfig holds the per-side tunneling corrections in pixels.
type CollisionConfig struct {
	CorrectionLeft   float64 `yaml:"correction_left"`
	CorrectionRight  float64 `yaml:"correction_right"`
	CorrectionBottom float64 `yaml:"correction_bottom"`
}

// BarrierConfig defines the descending laser.
type BarrierConfig struct {
	Enabled          bool    `yaml:"enabled"`
	Speed            float64 `yaml:"speed"`
	SpeedIncrease    float64 `yaml:"speed_increase"`
	StartAfterLines  int     `yaml:"start_after_lines"`
	BeamHeight       float64 `yaml:"beam_height"`
	LaserCorrectionY float64 `yaml:"laser_correction_y"`
}

// PlayerConfig holds movement corrections shared by all characters.
type PlayerConfig struct {
	StuckCorrection         float64 `yaml:"stuck_correction"`
	StuckThreshold          float64 `yaml:"stuck_threshold"`
	MovingSegmentCorrection float64 `yaml:"moving_segment_correction"`
}

// ScoreConfig holds score increments.
type ScoreConfig struct {
	PerLine   int `yaml:"per_line"`
	ClearLine int `yaml:"clear_line"`
	ClearAll  int `yaml:"clear_all"`
}

// AudioConfig controls sound output and volumes (0.0-1.0).
type AudioConfig struct {
	Enabled                   bool    `yaml:"enabled"`
	SampleRate                int     `yaml:"sample_rate"`
	EffectsVolume             float64 `yaml:"effects_volume"`
	MusicVolume               float64 `yaml:"music_volume"`
	MusicVolumeBarrierVisible float64 `yaml:"music_volume_barrier_visible"`
}

// AIConfig tunes the demo player.
type AIConfig struct {
	IdleSeconds           float64 `yaml:"idle_seconds"`
	ChangeDirectionMin    float64 `yaml:"change_direction_min"`
	ChangeDirectionMax    float64 `yaml:"change_direction_max"`
	PauseWhenFallingMin   float64 `yaml:"pause_when_falling_min"`
	PauseWhenFallingMax   float64 `yaml:"pause_when_falling_max"`
	ScriptPath            string  `yaml:"script_path"`
	ScriptMaxAllocs       int64   `yaml:"script_max_allocs"`
}

// HighscoreConfig bounds the persisted highscore table.
type HighscoreConfig struct {
	MaxEntries int `yaml:"max_entries"`
}

// Character is one selectable player figure with its own motion tuning.
type Character struct {
	Name                  string  `yaml:"name"`
	Size                  Pair    `yaml:"size"`
	Inner                 Pair    `yaml:"inner"`
	SpeedStart            Pair    `yaml:"speed_start"`
	SpeedMax              Pair    `yaml:"speed_max"`
	SpeedIncrease         Pair    `yaml:"speed_increase"`
	SpeedDecrease         float64 `yaml:"speed_decrease"`
	FallingFactorIncrease float64 `yaml:"falling_factor_increase"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "lines", or "none"
	MaxAt int    `yaml:"max_at"` // Score/lines at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	BarrierSpeedMultiplier float64 `yaml:"barrier_speed_multiplier"` // Added to barrier speed factor at max difficulty
	GapVertReduction       int     `yaml:"gap_vert_reduction"`       // Vertical gap reduction at max difficulty
	MovingBonus            int     `yaml:"moving_bonus"`             // Moving line probability bonus at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a user supplied name to a preset.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	case "":
		return DifficultyNormal, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Character returns the character at index, wrapping out of range indices
// into the roster.
func (c FalldownConfig) Character(index int) Character {
	n := len(c.Characters)
	if n == 0 {
		return DefaultCharacters()[0]
	}
	index %= n
	if index < 0 {
		index += n
	}
	return c.Characters[index]
}
