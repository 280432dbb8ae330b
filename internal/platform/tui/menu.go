package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
	"github.com/vovakirdan/falldown/internal/games/falldown"
	"github.com/vovakirdan/falldown/internal/settings"
	"github.com/vovakirdan/falldown/internal/storage"
)

// MenuItem is one entry of the main menu.
type MenuItem int

const (
	MenuPlay MenuItem = iota
	MenuDemo
	MenuScores
	MenuQuit
)

var menuItems = []MenuItem{MenuPlay, MenuDemo, MenuScores, MenuQuit}

func (i MenuItem) String() string {
	switch i {
	case MenuPlay:
		return "Play"
	case MenuDemo:
		return "Demo"
	case MenuScores:
		return "High Scores"
	case MenuQuit:
		return "Quit"
	}
	return "?"
}

// MenuOptions carries the services the menu reads and updates.
type MenuOptions struct {
	Store    *storage.Store
	Settings *settings.Manager
	Live     *config.Live
	Logger   *log.Logger
	Audio    core.AudioSink
	// PlayerName is shown in the footer when set.
	PlayerName string
	// Character overrides the stored selection when Settings is nil.
	Character int
}

// MenuModel is the Bubble Tea model for the main menu: character select,
// the item list and a scrolling shaft behind them.
type MenuModel struct {
	opts       MenuOptions
	logger     *log.Logger
	cursor     int
	character  int
	roster     []config.Character
	highScore  int
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	screen     *core.Screen
	background *falldown.Background
	loop       int64
	idle       *idleTimer

	chosen   bool
	choice   MenuItem
	quitting bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig, opts MenuOptions) MenuModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Live == nil {
		opts.Live = config.NewLive(config.DefaultFalldownConfig(), "")
	}
	if opts.Audio == nil {
		opts.Audio = core.NopAudio{}
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	fc := opts.Live.Get()
	character := opts.Character
	if opts.Settings != nil {
		character = opts.Settings.Get().Character
	}
	if n := len(fc.Characters); n > 0 {
		character = ((character % n) + n) % n
	}

	m := MenuModel{
		opts:       opts,
		logger:     opts.Logger.WithPrefix("menu"),
		character:  character,
		roster:     fc.Characters,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		background: falldown.NewBackground(fc, time.Now().UnixNano(), cfg.TickRate, opts.Logger),
		loop:       newLoop(),
		idle:       newIdleTimer(time.Duration(fc.AI.IdleSeconds * float64(time.Second))),
	}
	m.loadHighScore()
	return m
}

func (m *MenuModel) loadHighScore() {
	if m.opts.Store == nil {
		return
	}
	high, err := m.opts.Store.HighScore(falldown.GameID)
	if err != nil {
		m.logger.Warn("cannot load high score", "err", err)
		return
	}
	m.highScore = high
}

// Init starts the background scroll and the idle countdown.
func (m MenuModel) Init() tea.Cmd {
	m.idle.arm()
	return tea.Batch(tickCmd(m.config.TickRate, m.loop), m.idle.wait())
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.idle.arm()
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop || m.chosen {
			return m, nil
		}
		m.background.Step()
		return m, tickCmd(m.config.TickRate, m.loop)

	case IdleMsg:
		if !m.idle.current(msg) {
			return m, m.idle.wait()
		}
		m.logger.Debug("idle, starting demo")
		return m.choose(MenuDemo)
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.Close()
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor - 1 + len(menuItems)) % len(menuItems)

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % len(menuItems)

	case MenuActionPrevCharacter:
		m.selectCharacter(m.character - 1)

	case MenuActionNextCharacter:
		m.selectCharacter(m.character + 1)

	case MenuActionSelect:
		item := menuItems[m.cursor]
		if item == MenuQuit {
			m.Close()
			m.quitting = true
			return m, tea.Quit
		}
		return m.choose(item)

	case MenuActionScoreboard:
		return m.choose(MenuScores)
	}

	return m, nil
}

func (m *MenuModel) selectCharacter(index int) {
	n := len(m.roster)
	if n == 0 {
		return
	}
	m.character = ((index % n) + n) % n
	if err := m.opts.Settings.SetCharacter(m.character); err != nil {
		m.logger.Warn("cannot save character", "err", err)
	}

	fc := m.opts.Live.Get()
	if fc.Audio.Enabled {
		m.opts.Audio.Play(core.SoundBump, fc.Audio.EffectsVolume, 0)
	}
}

func (m MenuModel) choose(item MenuItem) (tea.Model, tea.Cmd) {
	m.Close()
	m.chosen = true
	m.choice = item
	return m, nil
}

// View renders the menu over the scrolling background.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	s := m.screen
	s.Clear()
	m.background.Render(s)

	y := max(s.Height()/2-7, 0)
	s.DrawTextCenteredColored(y, "  F A L L D O W N  ", core.ColorBrightYellow)
	y += 2

	ch := m.currentCharacter()
	s.DrawTextCenteredColored(y, fmt.Sprintf("  <  %s  >  ", ch.Name), core.ColorBrightCyan)
	y++
	s.DrawTextCenteredColored(y, fmt.Sprintf("  size %.0fx%.0f  top speed %.0f  ", ch.Size.X(), ch.Size.Y(), ch.SpeedMax.X()), core.ColorGray)
	y += 2

	for i, item := range menuItems {
		line := fmt.Sprintf("    %s    ", item)
		color := core.ColorWhite
		if i == m.cursor {
			line = fmt.Sprintf("  > %s <  ", item)
			color = core.ColorBrightWhite
		}
		s.DrawTextCenteredColored(y, line, color)
		y++
	}
	y++

	if m.highScore > 0 {
		s.DrawTextCenteredColored(y, fmt.Sprintf("  High score: %d  ", m.highScore), core.ColorYellow)
	}

	if m.opts.PlayerName != "" {
		s.DrawTextCenteredColored(s.Height()-2, fmt.Sprintf(" Player: %s ", m.opts.PlayerName), core.ColorGray)
	}
	s.DrawTextCenteredColored(s.Height()-1,
		" Up/Down: Navigate | Left/Right: Character | Enter: Select | Tab: Scores | Q: Quit ",
		core.ColorGray)

	return RenderScreen(s)
}

func (m MenuModel) currentCharacter() config.Character {
	if len(m.roster) == 0 {
		return config.Character{Name: "?"}
	}
	return m.roster[m.character]
}

// Close stops the idle countdown. Safe to call more than once.
func (m MenuModel) Close() {
	m.idle.stop()
}

// Choice returns the chosen item once the player picked one or the menu
// went idle.
func (m MenuModel) Choice() (MenuItem, bool) {
	return m.choice, m.chosen
}

// Character returns the selected roster index.
func (m MenuModel) Character() int {
	return m.character
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}
