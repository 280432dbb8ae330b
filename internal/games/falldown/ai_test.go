package falldown

import (
	"math"
	"testing"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
)

func TestPlayerAIProbabilities(t *testing.T) {
	cfg := config.DefaultFalldownConfig()
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		ai := NewPlayerAI(cfg, NewRandom(seed))
		change, pause := ai.Probabilities()
		if change < 0.65 || change > 0.85 {
			t.Errorf("seed %d: change probability %f out of range", seed, change)
		}
		if pause < 0.9 || pause > 0.99 {
			t.Errorf("seed %d: pause probability %f out of range", seed, pause)
		}
		if math.Abs(change*100-math.Round(change*100)) > 1e-9 {
			t.Errorf("seed %d: change probability %f not rounded to 2 places", seed, change)
		}
	}

	ai := NewPlayerAI(cfg, &fixedRandom{floats: []float64{0.7349, 0.9251}})
	change, pause := ai.Probabilities()
	if change != 0.73 || pause != 0.93 {
		t.Errorf("probabilities = %f, %f, want 0.73, 0.93", change, pause)
	}
}

func TestPlayerAIWalksToBoundAndTurns(t *testing.T) {
	cfg := config.DefaultFalldownConfig()
	ai := NewPlayerAI(cfg, &fixedRandom{floats: []float64{0.7, 0.9}})

	keys := ai.Keys(AIView{Offset: core.Vec2{X: 0}})
	if keys != (core.Keys{Left: true}) {
		t.Fatalf("keys = %+v, want left", keys)
	}

	// At the left bound the AI turns but keeps the last keys for this tick.
	keys = ai.Keys(AIView{Offset: core.Vec2{X: cfg.Offset.MaxLeft}})
	if ai.Direction() != core.DirRight {
		t.Fatalf("direction = %v, want right", ai.Direction())
	}
	if keys != (core.Keys{Left: true}) {
		t.Errorf("turning tick keys = %+v, want unchanged", keys)
	}

	keys = ai.Keys(AIView{Offset: core.Vec2{X: cfg.Offset.MaxLeft}})
	if keys != (core.Keys{Right: true}) {
		t.Errorf("keys = %+v, want right", keys)
	}

	ai.Keys(AIView{Offset: core.Vec2{X: cfg.Offset.MaxRight}})
	if ai.Direction() != core.DirLeft {
		t.Errorf("direction = %v, want left at the right bound", ai.Direction())
	}
}

func TestPlayerAIOnFall(t *testing.T) {
	tests := []struct {
		name      string
		draws     []float64
		wantDir   core.Direction
		wantPause bool
	}{
		// The first two draws set the probabilities to 0.7 and 0.9.
		{"turn and pause", []float64{0.7, 0.9, 0.1, 0.1}, core.DirRight, true},
		{"turn only", []float64{0.7, 0.9, 0.1, 0.95}, core.DirRight, false},
		{"pause only", []float64{0.7, 0.9, 0.8, 0.1}, core.DirLeft, true},
		{"neither", []float64{0.7, 0.9, 0.8, 0.95}, core.DirLeft, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := NewPlayerAI(config.DefaultFalldownConfig(), &fixedRandom{floats: tt.draws})
			keys := ai.Keys(AIView{Falling: true})
			if ai.Direction() != tt.wantDir {
				t.Errorf("direction = %v, want %v", ai.Direction(), tt.wantDir)
			}
			if paused := keys == (core.Keys{}); paused != tt.wantPause {
				t.Errorf("keys = %+v, want paused=%v", keys, tt.wantPause)
			}
		})
	}
}

func TestPlayerAIDecidesOncePerFall(t *testing.T) {
	rng := &fixedRandom{floats: []float64{0.7, 0.9, 0.1, 0.95, 0.1, 0.95}}
	ai := NewPlayerAI(config.DefaultFalldownConfig(), rng)

	ai.Keys(AIView{Falling: true})
	for range 10 {
		ai.Keys(AIView{Falling: true})
	}
	if ai.Direction() != core.DirRight {
		t.Fatal("a long fall should turn only once")
	}
	if rng.next != 4 {
		t.Errorf("draws = %d, want 4", rng.next)
	}

	// Landing re-arms the decision.
	ai.Keys(AIView{Falling: false})
	ai.Keys(AIView{Falling: true})
	if ai.Direction() != core.DirLeft {
		t.Error("the next fall should decide again")
	}
}

func TestPlayerAIResumesAfterLanding(t *testing.T) {
	ai := NewPlayerAI(config.DefaultFalldownConfig(), &fixedRandom{floats: []float64{0.7, 0.9, 0.8, 0.1}})
	if keys := ai.Keys(AIView{Falling: true}); keys != (core.Keys{}) {
		t.Fatalf("keys = %+v, want released while paused", keys)
	}
	if keys := ai.Keys(AIView{Falling: false}); keys != (core.Keys{Left: true}) {
		t.Errorf("keys = %+v, want left after landing", keys)
	}
}
