package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
	"github.com/vovakirdan/falldown/internal/games/falldown"
	"github.com/vovakirdan/falldown/internal/registry"
	"github.com/vovakirdan/falldown/internal/settings"
	"github.com/vovakirdan/falldown/internal/storage"
)

// SessionOptions carries the services shared by every screen of a session.
type SessionOptions struct {
	Store    *storage.Store
	Settings *settings.Manager
	Live     *config.Live
	Logger   *log.Logger
	Audio    core.AudioSink
	// PlayerName is recorded with every saved score.
	PlayerName string
	// Character is the initial selection when Settings is nil.
	Character int
}

func (o SessionOptions) withDefaults() SessionOptions {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Live == nil {
		o.Live = config.NewLive(config.DefaultFalldownConfig(), "")
	}
	if o.Audio == nil {
		o.Audio = core.NopAudio{}
	}
	return o
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game or scores -> menu.
// It runs the local menu as well as every SSH session.
type SessionModel struct {
	opts      SessionOptions
	logger    *log.Logger
	config    core.RuntimeConfig
	character int
	screen    sessionScreen
	menu      MenuModel
	gameModel GameModel
	scores    ScoreboardModel
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	opts = opts.withDefaults()
	m := SessionModel{
		opts:      opts,
		logger:    opts.Logger.WithPrefix("session"),
		config:    cfg,
		character: opts.Character,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.config, MenuOptions{
		Store:      m.opts.Store,
		Settings:   m.opts.Settings,
		Live:       m.opts.Live,
		Logger:     m.opts.Logger,
		Audio:      m.opts.Audio,
		PlayerName: m.opts.PlayerName,
		Character:  m.character,
	})
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}
	m.character = m.menu.Character()

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	item, chosen := m.menu.Choice()
	if !chosen {
		return m, cmd
	}

	switch item {
	case MenuPlay:
		return m.startGame(falldown.GameID)
	case MenuDemo:
		return m.startGame(falldown.DemoGameID)
	case MenuScores:
		m.scores = NewScoreboardModel(m.opts.Store, m.opts.Live.Get().Characters, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scores.Init()
	}
	return m, cmd
}

func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id, registry.Env{
		Logger:     m.opts.Logger,
		Audio:      m.opts.Audio,
		Live:       m.opts.Live,
		Character:  m.character,
		PlayerName: m.opts.PlayerName,
	})
	if err != nil {
		m.logger.Error("cannot start game", "game", id, "err", err)
		return m.backToMenu()
	}

	m.gameModel = NewGameModel(game, m.config, GameOptions{
		Store:      m.opts.Store,
		Logger:     m.opts.Logger,
		PlayerName: m.opts.PlayerName,
		MaxEntries: m.opts.Live.Get().Highscore.MaxEntries,
	})
	m.screen = screenGame
	return m, m.gameModel.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		fc := m.opts.Live.Get()
		if fc.Audio.Enabled {
			m.opts.Audio.Play(core.SoundMenuBack, fc.Audio.EffectsVolume, 0)
		}
		return m.backToMenu()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if scores, ok := newModel.(ScoreboardModel); ok {
		m.scores = scores
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// Close releases whatever the active screen holds.
func (m SessionModel) Close() {
	m.menu.Close()
	if m.screen == screenGame {
		m.gameModel.close()
	}
}

// RunSession runs the menu flow in the local terminal.
func RunSession(cfg core.RuntimeConfig, opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(SessionModel); ok {
		m.Close()
	}
	return err
}
