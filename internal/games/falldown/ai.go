package falldown

import (
	"math"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
)

// AIView is what a driver sees of the run each tick.
type AIView struct {
	Tick          int
	Falling       bool
	Offset        core.Vec2
	Player        core.RectF
	BarrierY      float64
	BarrierActive bool
	Score         int
}

// Driver produces held keys for the player. PlayerAI is the built-in one.
type Driver interface {
	Keys(view AIView) core.Keys
}

// PlayerAI plays the demo: it runs in one direction until it hits a scroll
// bound, and on each fall may turn around or hold still.
type PlayerAI struct {
	rng       Random
	direction core.Direction
	keys      core.Keys

	changeProbability float64
	pauseProbability  float64

	maxLeft, maxRight float64

	wasFalling bool
	pausing    bool
}

// NewPlayerAI creates an AI with probabilities drawn once from the
// configured ranges.
func NewPlayerAI(cfg config.FalldownConfig, rng Random) *PlayerAI {
	return &PlayerAI{
		rng:               rng,
		direction:         core.DirLeft,
		changeProbability: round2(rng.FloatRange(cfg.AI.ChangeDirectionMin, cfg.AI.ChangeDirectionMax)),
		pauseProbability:  round2(rng.FloatRange(cfg.AI.PauseWhenFallingMin, cfg.AI.PauseWhenFallingMax)),
		maxLeft:           cfg.Offset.MaxLeft,
		maxRight:          cfg.Offset.MaxRight,
	}
}

// Direction returns the direction the AI is heading.
func (a *PlayerAI) Direction() core.Direction { return a.direction }

// Probabilities returns the turn-around and pause-on-fall probabilities.
func (a *PlayerAI) Probabilities() (change, pause float64) {
	return a.changeProbability, a.pauseProbability
}

// Keys returns the keys to hold this tick. Keys persist between ticks: a
// tick that only turns the AI around leaves them as they were.
func (a *PlayerAI) Keys(view AIView) core.Keys {
	if view.Falling {
		if !a.wasFalling {
			a.wasFalling = true
			if a.rng.FloatRange(0, 1) < a.changeProbability {
				a.direction = opposite(a.direction)
			}
			if a.rng.FloatRange(0, 1) < a.pauseProbability {
				a.pausing = true
			}
		}
	} else {
		a.wasFalling = false
		a.pausing = false
	}

	if a.pausing {
		a.keys = core.Keys{}
		return a.keys
	}

	switch a.direction {
	case core.DirLeft:
		if view.Offset.X > a.maxLeft {
			a.keys = core.Keys{Left: true}
		} else {
			a.direction = core.DirRight
		}
	case core.DirRight:
		if view.Offset.X < a.maxRight {
			a.keys = core.Keys{Right: true}
		} else {
			a.direction = core.DirLeft
		}
	}
	return a.keys
}

func opposite(d core.Direction) core.Direction {
	if d == core.DirLeft {
		return core.DirRight
	}
	return core.DirLeft
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
