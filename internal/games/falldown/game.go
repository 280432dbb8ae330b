// Package falldown implements the Falldown game: a character falls through an
// endless shaft of platform lines while a laser barrier descends from above.
//
// The simulation works in pixel units on a virtual screen (screen.width x
// screen.height from the configuration) with one tick of 1/TickRate seconds.
// Rendering scales it down to the terminal.
package falldown

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
	"github.com/vovakirdan/falldown/internal/registry"
)

// Game IDs.
const (
	GameID     = "falldown"
	DemoGameID = "falldown_demo"
)

func init() {
	registry.Register(GameID, func(env registry.Env) registry.Game { return New(env) })
	registry.Register(DemoGameID, func(env registry.Env) registry.Game { return NewDemo(env) })
}

// Game adapts the falldown simulation to registry.Game.
type Game struct {
	demo bool
	env  registry.Env

	runtime core.RuntimeConfig
	cfg     config.FalldownConfig
	dt      float64
	logger  *log.Logger
	audio   core.AudioSink

	rng        *SeededRandom
	difficulty *config.DifficultyManager
	level      *Level
	barrier    *Barrier
	player     *Player
	camera     *Camera
	score      Score
	driver     Driver

	tick   int
	paused bool
	ended  bool
}

// New creates a game played from the keyboard.
func New(env registry.Env) *Game {
	return &Game{env: env.WithDefaults()}
}

// NewDemo creates a game played by the AI.
func NewDemo(env registry.Env) *Game {
	return &Game{env: env.WithDefaults(), demo: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.demo {
		return DemoGameID
	}
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.demo {
		return "Falldown (Demo)"
	}
	return "Falldown"
}

// Reset initializes or restarts the run with the current configuration.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.cfg = g.env.Live.Get()
	g.dt = 1.0 / float64(runtime.TickRate)
	g.logger = g.env.Logger.With("game", g.ID())

	g.audio = g.env.Audio
	if !g.cfg.Audio.Enabled {
		g.audio = core.NopAudio{}
	}

	g.rng = NewRandom(runtime.Seed)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.level = NewLevel(g.cfg, g.rng, g.logger)
	g.level.SetDifficulty(g.difficulty)

	g.barrier = NewBarrier(g.cfg, g.difficulty.BarrierSpeed(g.cfg.Barrier.Speed), g.audio, g.logger)

	ch := g.cfg.Character(g.env.Character)
	g.player = NewPlayer(ch, core.Vec2{
		X: g.cfg.Screen.Width / 2,
		Y: ch.Size.Y() + g.cfg.Camera.BorderTop,
	})

	g.score.Reset()
	g.camera = NewCamera(g.cfg, g.level, CameraOptions{
		Barrier:   g.barrier,
		Player:    g.player,
		Score:     &g.score,
		Audio:     g.audio,
		Logger:    g.logger,
		ShowIntro: true,
	})

	g.driver = nil
	if g.demo {
		g.driver = newDemoDriver(g.cfg, g.rng, g.logger)
	}

	g.tick = 0
	g.paused = false
	g.ended = false

	g.audio.Play(core.SoundGameStart, g.cfg.Audio.EffectsVolume, 0)
	g.audio.Play(core.SoundMusic, g.cfg.Audio.MusicVolume, core.LoopForever)
	g.logger.Debug("run started", "character", ch.Name, "seed", runtime.Seed)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.camera.GameOver() {
		if in.Has(core.ActionRestart) {
			g.Reset(g.runtime)
			return core.StepResult{State: g.State()}
		}
		// The level keeps animating behind the game-over text.
		g.camera.Loop(g.dt, core.Keys{})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.demo {
		g.togglePause()
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	keys := in.Keys()
	if g.driver != nil {
		keys = g.driver.Keys(g.view())
	}
	g.camera.Loop(g.dt, keys)

	if g.camera.GameOver() && !g.ended {
		g.ended = true
		g.audio.Stop(core.SoundMusic)
		g.logger.Info("run ended",
			"score", g.score.Value(),
			"reason", g.camera.GameOverReason(),
			"ticks", g.tick,
			"lines", g.level.Generated(),
		)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.camera.Pause()
	} else {
		g.camera.Unpause()
	}
}

// Close silences everything the run started. Safe to call more than once.
func (g *Game) Close() {
	if g.camera == nil {
		return
	}
	g.camera.Stop()
	g.audio.Stop(core.SoundMusic)
}

func (g *Game) view() AIView {
	return AIView{
		Tick:          g.tick,
		Falling:       g.player.IsFalling(),
		Offset:        g.camera.Offset(),
		Player:        g.player.Rect(),
		BarrierY:      g.barrier.Rect().Y,
		BarrierActive: g.barrier.Started(),
		Score:         g.score.Value(),
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score.Value(),
		GameOver: g.camera != nil && g.camera.GameOver(),
		Paused:   g.paused,
	}
}

// CharacterName returns the name of the character being played.
func (g *Game) CharacterName() string {
	if g.player == nil {
		return g.env.Live.Get().Character(g.env.Character).Name
	}
	return g.player.Character().Name
}

// Camera returns the running camera.
func (g *Game) Camera() *Camera { return g.camera }

// Demo reports whether the AI is playing.
func (g *Game) Demo() bool { return g.demo }

// Tick returns the number of simulated ticks since Reset.
func (g *Game) Tick() int { return g.tick }

// Config returns the configuration the run was started with.
func (g *Game) Config() config.FalldownConfig { return g.cfg }
