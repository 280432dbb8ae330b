package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/falldown/internal/core"
	"github.com/vovakirdan/falldown/internal/registry"
	"github.com/vovakirdan/falldown/internal/storage"
)

// demoRestartDelay is how long a finished demo run stays on screen before
// the next one starts.
const demoRestartDelay = 2 * time.Second

// GameOptions configures a GameModel.
type GameOptions struct {
	Store      *storage.Store
	Logger     *log.Logger
	PlayerName string
	// MaxEntries bounds the highscore table; 0 keeps everything.
	MaxEntries int
	// Standalone models quit the program on back. Inside a session they hand
	// control back to the menu instead.
	Standalone bool
}

// closer is implemented by games holding audio or timers.
type closer interface {
	Close()
}

// GameModel is the Bubble Tea model running one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       GameOptions
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	held       HeldKeys
	inputFrame core.InputFrame
	gameState  core.GameState

	loop      int64
	tick      int
	demo      bool
	overTicks int

	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a model for game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		logger:     logger.WithPrefix("tui"),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		held:       NewHeldKeys(cfg.TickRate),
		inputFrame: core.NewInputFrame(),
		loop:       newLoop(),
		demo:       strings.HasSuffix(game.ID(), "_demo"),
	}
}

// Init starts the run and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The simulation runs on a virtual screen, so a resize only changes
		// the projection.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, quit := m.keyMapper.MapKey(msg)
	if quit {
		m.close()
		m.quitting = true
		return m, tea.Quit
	}

	// Any key ends a demo.
	if m.demo {
		return m.exit()
	}

	switch action {
	case core.ActionLeft:
		m.held.Press(core.DirLeft, m.tick)
	case core.ActionRight:
		m.held.Press(core.DirRight, m.tick)
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			return m.exit()
		}
	case core.ActionPause:
		if m.gameState.GameOver {
			return m.exit()
		}
		m.held.Release()
		m.inputFrame.Set(core.ActionPause)
	case core.ActionRestart, core.ActionConfirm:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	}

	return m, nil
}

// exit leaves the game: back to the menu, or out of the program when
// running standalone.
func (m GameModel) exit() (tea.Model, tea.Cmd) {
	m.close()
	if m.opts.Standalone {
		m.quitting = true
		return m, tea.Quit
	}
	m.backToMenu = true
	return m, nil
}

func (m GameModel) close() {
	if c, ok := m.game.(closer); ok {
		c.Close()
	}
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	m.tick++

	if m.demo && m.gameState.GameOver {
		m.overTicks++
		if m.overTicks >= ticksFor(demoRestartDelay, m.config.TickRate) {
			m.restart()
		}
		return m, tickCmd(m.config.TickRate, m.loop)
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart()
		return m, tickCmd(m.config.TickRate, m.loop)
	}

	m.held.Apply(&m.inputFrame, m.tick)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.loop)
}

// restart begins a new run with a fresh seed.
func (m *GameModel) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.overTicks = 0
	m.held.Release()
	m.inputFrame.Clear()
}

// saveScore records the finished run. Demo runs and empty scores are not
// recorded.
func (m GameModel) saveScore() {
	score := m.gameState.Score
	if m.demo || score <= 0 || m.opts.Store == nil {
		return
	}

	character := ""
	if cg, ok := m.game.(registry.CharacterGame); ok {
		character = cg.CharacterName()
	}
	_, err := m.opts.Store.SaveAndPrune(m.game.ID(), m.opts.PlayerName, character, score, m.opts.MaxEntries)
	if err != nil {
		m.logger.Error("cannot save score", "game", m.game.ID(), "err", err)
		return
	}
	m.logger.Info("score saved", "game", m.game.ID(), "player", m.opts.PlayerName, "character", character, "score", score)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".falldown", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in its own program until the player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts GameOptions) error {
	opts.Standalone = true
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
