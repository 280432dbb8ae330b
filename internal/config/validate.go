package config

import (
	"errors"
	"fmt"
)

// Validate checks every invariant the simulation relies on and reports all
// violations at once.
func (c FalldownConfig) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		add("screen: size must be positive, got %vx%v", c.Screen.Width, c.Screen.Height)
	}
	for name, v := range map[string]float64{
		"border_left":   c.Camera.BorderLeft,
		"border_right":  c.Camera.BorderRight,
		"border_top":    c.Camera.BorderTop,
		"border_bottom": c.Camera.BorderBottom,
	} {
		if v < 0 {
			add("camera: %s must not be negative, got %v", name, v)
		}
	}
	if c.Camera.BorderLeft+c.Camera.BorderRight >= c.Screen.Width ||
		c.Camera.BorderTop+c.Camera.BorderBottom >= c.Screen.Height {
		add("camera: borders leave no room for the camera rect")
	}

	if c.Offset.MaxLeft > 0 || c.Offset.MaxRight < 0 {
		add("offset: max_left must be <= 0 and max_right >= 0")
	}
	if c.Offset.Ceiling <= 0 {
		add("offset: ceiling must be positive")
	}

	l := c.Level
	if l.GeneratorModifier <= 0 {
		add("level: generator_modifier must be positive")
	}
	if l.SegmentWidthMin <= 0 || l.SegmentWidthMin > l.SegmentWidthMax {
		add("level: need 0 < segment_width_min <= segment_width_max, got %d/%d", l.SegmentWidthMin, l.SegmentWidthMax)
	}
	if l.GapMin < 0 || l.GapAddMax < 0 || l.GapVertAddMax < 0 {
		add("level: gaps must not be negative")
	}
	if l.GapVertMin <= 0 {
		add("level: gap_vert_min must be positive, got %d", l.GapVertMin)
	}
	if span := l.MaxX(c.Offset) - l.MinX(c.Offset); float64(l.SegmentWidthMin+l.GapMin) > span {
		add("level: segment_width_min + gap_min (%d) exceeds the line span %v", l.SegmentWidthMin+l.GapMin, span)
	}
	for name, p := range map[string]int{
		"line_moving_probability": l.LineMovingProbability,
		"clear_line_probability":  l.ClearLineProbability,
		"clear_all_probability":   l.ClearAllProbability,
	} {
		if p < 0 || p > 100 {
			add("level: %s must be within [0, 100], got %d", name, p)
		}
	}
	if l.SegmentHeight <= 0 {
		add("level: segment_height must be positive")
	}
	if l.MoveSpeed < 0 || l.MoveMax < 0 {
		add("level: move_speed and move_max must not be negative")
	}
	if l.MovingDecreaseFactor < 0 {
		add("level: moving_decrease_factor must not be negative")
	}
	if l.MaxIterations <= 0 {
		add("level: max_iterations must be positive")
	}
	if l.CleanEvery <= 0 {
		add("level: clean_every must be positive")
	}

	if c.Barrier.Speed < 0 || c.Barrier.SpeedIncrease < 0 {
		add("barrier: speed and speed_increase must not be negative")
	}
	if c.Barrier.BeamHeight <= 0 {
		add("barrier: beam_height must be positive")
	}

	for name, v := range map[string]float64{
		"effects_volume":               c.Audio.EffectsVolume,
		"music_volume":                 c.Audio.MusicVolume,
		"music_volume_barrier_visible": c.Audio.MusicVolumeBarrierVisible,
	} {
		if v < 0 || v > 1 {
			add("audio: %s must be within [0, 1], got %v", name, v)
		}
	}

	if c.AI.ChangeDirectionMin > c.AI.ChangeDirectionMax || c.AI.PauseWhenFallingMin > c.AI.PauseWhenFallingMax {
		add("ai: probability ranges must have min <= max")
	}
	if c.Highscore.MaxEntries <= 0 {
		add("highscore: max_entries must be positive")
	}

	if len(c.Characters) == 0 {
		add("characters: at least one character is required")
	}
	for i, ch := range c.Characters {
		if err := ch.validate(); err != nil {
			add("characters[%d] %q: %w", i, ch.Name, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
}

func (ch Character) validate() error {
	var errs []error
	if ch.Size.X() <= 0 || ch.Size.Y() <= 0 {
		errs = append(errs, errors.New("size must be positive"))
	}
	if ch.Inner.X() < 0 || ch.Inner.Y() < 0 || 2*ch.Inner.X() >= ch.Size.X() || 2*ch.Inner.Y() >= ch.Size.Y() {
		errs = append(errs, errors.New("inner rect must fit inside size"))
	}
	if ch.SpeedStart.X() > ch.SpeedMax.X() || ch.SpeedStart.Y() > ch.SpeedMax.Y() {
		errs = append(errs, errors.New("speed_start must not exceed speed_max"))
	}
	if ch.SpeedStart.X() < 0 || ch.SpeedStart.Y() < 0 {
		errs = append(errs, errors.New("speed_start must not be negative"))
	}
	if ch.SpeedIncrease.X() < 0 || ch.SpeedIncrease.Y() < 0 || ch.SpeedDecrease < 0 || ch.FallingFactorIncrease < 0 {
		errs = append(errs, errors.New("speed deltas must not be negative"))
	}
	return errors.Join(errs...)
}
