package falldown

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
)

// Barrier is the laser beam that descends through the shaft. Its rect is in
// world space and spans the screen width.
type Barrier struct {
	rect            core.RectF
	speed           float64
	speedIncrease   float64
	laserCorrection float64
	topCorrection   float64
	effectsVolume   float64

	started bool
	paused  bool
	stopped bool

	soundPlaying bool
	frame        int

	audio  core.AudioSink
	logger *log.Logger
}

// NewBarrier creates an idle barrier at the top of the world. startSpeed is
// the descent speed before any increase.
func NewBarrier(cfg config.FalldownConfig, startSpeed float64, audio core.AudioSink, logger *log.Logger) *Barrier {
	if audio == nil {
		audio = core.NopAudio{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Barrier{
		rect:            core.NewRectF(0, 0, cfg.Screen.Width, cfg.Barrier.BeamHeight),
		speed:           startSpeed,
		speedIncrease:   cfg.Barrier.SpeedIncrease,
		laserCorrection: cfg.Barrier.LaserCorrectionY,
		topCorrection:   cfg.Collision.CorrectionBottom,
		effectsVolume:   cfg.Audio.EffectsVolume,
		audio:           audio,
		logger:          logger,
	}
}

// Rect returns the beam rectangle in world space.
func (b *Barrier) Rect() core.RectF { return b.rect }

// Speed returns the descent speed in pixels per second.
func (b *Barrier) Speed() float64 { return b.speed }

// Started reports whether the barrier has begun descending.
func (b *Barrier) Started() bool { return b.started }

// Paused reports whether the barrier is paused.
func (b *Barrier) Paused() bool { return b.paused }

// Stopped reports whether the barrier was stopped for good.
func (b *Barrier) Stopped() bool { return b.stopped }

// Frame returns the animation frame counter.
func (b *Barrier) Frame() int { return b.frame }

// Start begins the descent. Starting twice is a no-op.
func (b *Barrier) Start() {
	if !b.started {
		b.logger.Debug("barrier started", "speed", b.speed)
	}
	b.started = true
}

// IncreaseSpeed adds one speed increment. Speed never decreases.
func (b *Barrier) IncreaseSpeed() {
	b.speed += b.speedIncrease
	b.logger.Debug("barrier speed increased", "speed", b.speed)
}

// Velocity returns the descent for one tick.
func (b *Barrier) Velocity(dt float64) float64 {
	return b.speed * dt
}

// Advance moves the barrier down by one tick if started.
func (b *Barrier) Advance(dt float64) {
	if b.started {
		b.rect.Y += b.Velocity(dt)
	}
}

// IsVisible reports whether the beam has descended into the viewport.
func (b *Barrier) IsVisible(offset core.Vec2) bool {
	return b.started && b.rect.Y+b.rect.H > offset.Y
}

// CollidesWith reports whether the beam's midline has reached the player's
// corrected top edge.
func (b *Barrier) CollidesWith(body Body, offset core.Vec2) bool {
	playerTop := body.InnerRect().Top() + b.topCorrection
	laserBottom := b.rect.Y + b.rect.H/2 - b.laserCorrection - offset.Y
	return playerTop < laserBottom
}

// UpdateSound keeps the laser loop in step with visibility: it plays while
// the beam is on screen and is silenced otherwise.
func (b *Barrier) UpdateSound(offset core.Vec2) {
	if b.IsVisible(offset) && !b.paused {
		if !b.stopped && !b.soundPlaying {
			b.soundPlaying = true
			b.audio.Play(core.SoundLaser, b.effectsVolume, core.LoopForever)
		}
		return
	}
	b.silence(false)
}

// Pause freezes the laser sound until Unpause.
func (b *Barrier) Pause() {
	b.paused = true
	b.silence(false)
}

// Unpause resumes after Pause. The laser restarts on the next UpdateSound.
func (b *Barrier) Unpause() {
	b.paused = false
}

// Stop silences the laser for good.
func (b *Barrier) Stop() {
	b.silence(true)
}

func (b *Barrier) silence(full bool) {
	if b.soundPlaying {
		b.audio.Stop(core.SoundLaser)
		b.soundPlaying = false
	}
	if full {
		b.stopped = true
	}
}

func (b *Barrier) advanceFrame() {
	b.frame++
}
