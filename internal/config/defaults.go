package config

import (
	_ "embed"
)

//go:embed defaults/falldown.yaml
var defaultFalldownYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultFalldownYAML))
	copy(out, defaultFalldownYAML)
	return out
}

// DefaultFalldownConfig returns the default Falldown configuration.
func DefaultFalldownConfig() FalldownConfig {
	return FalldownConfig{
		Screen: ScreenConfig{
			Width:  800,
			Height: 600,
		},
		Camera: CameraConfig{
			BorderLeft:   150,
			BorderRight:  150,
			BorderTop:    50,
			BorderBottom: 240,
		},
		Offset: OffsetConfig{
			MaxUp:    0,
			MaxLeft:  -1000,
			MaxRight: 1000,
			Ceiling:  10000000,
		},
		Level: LevelConfig{
			GeneratorModifier:     1.4,
			FirstLineY:            100,
			LineMovingProbability: 15,
			ClearLineProbability:  10,
			ClearAllProbability:   3,
			SegmentWidthMin:       50,
			SegmentWidthMax:       500,
			SegmentHeight:         22,
			SegmentImageHeight:    10,
			GapMin:                50,
			GapAddMax:             100,
			GapVertMin:            50,
			GapVertAddMax:         60,
			MoveSpeed:             5,
			MoveMax:               200,
			MovingDecreaseFactor:  2,
			MaxIterations:         1000,
			CleanEvery:            10,
			IntroTicks:            80,
			ClearLineIcon:         Pair{60, 40},
			ClearLineIconLift:     2,
			ClearAllIcon:          Pair{14, 46},
			ClearAllIconLift:      5,
		},
		Collision: CollisionConfig{
			CorrectionLeft:   2,
			CorrectionRight:  2,
			CorrectionBottom: 8,
		},
		Barrier: BarrierConfig{
			Enabled:          true,
			Speed:            130,
			SpeedIncrease:    1,
			StartAfterLines:  10,
			BeamHeight:       9,
			LaserCorrectionY: 2,
		},
		Player: PlayerConfig{
			StuckCorrection:         2,
			StuckThreshold:          5,
			MovingSegmentCorrection: 30,
		},
		Score: ScoreConfig{
			PerLine:   1,
			ClearLine: 2,
			ClearAll:  4,
		},
		Audio: AudioConfig{
			Enabled:                   true,
			SampleRate:                44100,
			EffectsVolume:             1.0,
			MusicVolume:               1.0,
			MusicVolumeBarrierVisible: 0.3,
		},
		AI: AIConfig{
			IdleSeconds:         12,
			ChangeDirectionMin:  0.65,
			ChangeDirectionMax:  0.85,
			PauseWhenFallingMin: 0.9,
			PauseWhenFallingMax: 0.99,
			ScriptMaxAllocs:     5000,
		},
		Highscore: HighscoreConfig{
			MaxEntries: 100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "lines",
				MaxAt: 400,
			},
			Scaling: ScalingConfig{
				BarrierSpeedMultiplier: 0.5,
				GapVertReduction:       30,
				MovingBonus:            15,
			},
		},
		Characters: DefaultCharacters(),
	}
}

// DefaultCharacters returns the built-in character roster.
func DefaultCharacters() []Character {
	return []Character{
		{Name: "Fox", Size: Pair{38, 34}, Inner: Pair{3, 4}, SpeedStart: Pair{0, 80}, SpeedMax: Pair{550, 700}, SpeedIncrease: Pair{20, 5}, SpeedDecrease: 25, FallingFactorIncrease: 0.8},
		{Name: "Frog", Size: Pair{32, 32}, Inner: Pair{8, 4}, SpeedStart: Pair{20, 80}, SpeedMax: Pair{550, 800}, SpeedIncrease: Pair{20, 5}, SpeedDecrease: 30, FallingFactorIncrease: 0.8},
		{Name: "Mask", Size: Pair{32, 32}, Inner: Pair{8, 4}, SpeedStart: Pair{10, 40}, SpeedMax: Pair{550, 600}, SpeedIncrease: Pair{20, 5}, SpeedDecrease: 30, FallingFactorIncrease: 0.8},
		{Name: "Bunny", Size: Pair{34, 44}, Inner: Pair{8, 4}, SpeedStart: Pair{60, 40}, SpeedMax: Pair{650, 600}, SpeedIncrease: Pair{20, 5}, SpeedDecrease: 20, FallingFactorIncrease: 0.7},
		{Name: "Pink", Size: Pair{32, 34}, Inner: Pair{8, 4}, SpeedStart: Pair{40, 10}, SpeedMax: Pair{750, 450}, SpeedIncrease: Pair{30, 5}, SpeedDecrease: 20, FallingFactorIncrease: 0.8},
		{Name: "Virtual", Size: Pair{32, 32}, Inner: Pair{8, 4}, SpeedStart: Pair{50, 80}, SpeedMax: Pair{650, 800}, SpeedIncrease: Pair{20, 5}, SpeedDecrease: 30, FallingFactorIncrease: 0.4},
		{Name: "Chameleon", Size: Pair{52, 34}, Inner: Pair{8, 4}, SpeedStart: Pair{0, 80}, SpeedMax: Pair{900, 900}, SpeedIncrease: Pair{10, 10}, SpeedDecrease: 35, FallingFactorIncrease: 0.9},
		{Name: "Slime", Size: Pair{38, 24}, Inner: Pair{3, 4}, SpeedStart: Pair{0, 80}, SpeedMax: Pair{450, 900}, SpeedIncrease: Pair{10, 5}, SpeedDecrease: 50, FallingFactorIncrease: 0.9},
	}
}
