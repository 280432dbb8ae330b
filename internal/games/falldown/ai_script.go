package falldown

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
	"github.com/vovakirdan/falldown/internal/script"
)

// newDemoDriver returns the scripted driver when ai.script_path is set and
// loads, and the built-in AI otherwise.
func newDemoDriver(cfg config.FalldownConfig, rng Random, logger *log.Logger) Driver {
	builtin := NewPlayerAI(cfg, rng)
	if cfg.AI.ScriptPath == "" {
		return builtin
	}
	runner, err := script.Load(cfg.AI.ScriptPath, cfg.AI.ScriptMaxAllocs)
	if err != nil {
		logger.Warn("ai script not loaded, using built-in ai", "err", err)
		return builtin
	}
	logger.Info("ai script loaded", "path", runner.Path())
	return &ScriptDriver{runner: runner, fallback: builtin, logger: logger}
}

// ScriptDriver steers the player with a tengo script. The first script error
// switches it to the fallback driver for the rest of the run.
type ScriptDriver struct {
	runner   *script.Runner
	fallback Driver
	logger   *log.Logger
	failed   bool
}

// NewScriptDriver wraps runner. fallback takes over if the script fails.
func NewScriptDriver(runner *script.Runner, fallback Driver, logger *log.Logger) *ScriptDriver {
	if logger == nil {
		logger = log.Default()
	}
	return &ScriptDriver{runner: runner, fallback: fallback, logger: logger}
}

// Failed reports whether the script has been abandoned.
func (d *ScriptDriver) Failed() bool { return d.failed }

// Keys runs the script for one tick.
func (d *ScriptDriver) Keys(view AIView) core.Keys {
	if d.failed {
		return d.fallback.Keys(view)
	}
	dec, err := d.runner.Decide(context.Background(), script.View{
		Tick:          view.Tick,
		Falling:       view.Falling,
		OffsetX:       view.Offset.X,
		OffsetY:       view.Offset.Y,
		PlayerX:       view.Player.X,
		PlayerY:       view.Player.Y,
		BarrierY:      view.BarrierY,
		BarrierActive: view.BarrierActive,
		Score:         view.Score,
	})
	if err != nil {
		d.failed = true
		d.logger.Warn("ai script failed, switching to built-in ai", "err", err)
		return d.fallback.Keys(view)
	}
	return core.Keys{Left: dec.Left, Right: dec.Right}
}
