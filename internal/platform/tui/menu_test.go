package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/games/falldown"
	"github.com/vovakirdan/falldown/internal/settings"
)

func newTestMenu(t *testing.T, opts MenuOptions) MenuModel {
	t.Helper()
	m := NewMenuModel(testConfig(), opts)
	t.Cleanup(m.Close)
	return m
}

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func TestMenuNavigation(t *testing.T) {
	m := newTestMenu(t, MenuOptions{})

	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if menuItems[m.cursor] != MenuQuit {
		t.Errorf("up from the top should wrap to Quit, got %v", menuItems[m.cursor])
	}
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if menuItems[m.cursor] != MenuDemo {
		t.Errorf("cursor on %v, want Demo", menuItems[m.cursor])
	}

	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	item, chosen := m.Choice()
	if !chosen || item != MenuDemo {
		t.Errorf("Choice() = %v, %v; want Demo", item, chosen)
	}
}

func TestMenuScoreboardShortcut(t *testing.T) {
	m := newTestMenu(t, MenuOptions{})
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if item, chosen := m.Choice(); !chosen || item != MenuScores {
		t.Errorf("Choice() = %v, %v; want High Scores", item, chosen)
	}
}

func TestMenuQuit(t *testing.T) {
	m := newTestMenu(t, MenuOptions{})
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, cmd := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.IsQuitting() || cmd == nil {
		t.Error("selecting Quit should quit")
	}
	if _, chosen := m.Choice(); chosen {
		t.Error("quitting is not a choice")
	}
}

func TestMenuCharacterSelect(t *testing.T) {
	store := settings.NewManager(nil, nil)
	m := newTestMenu(t, MenuOptions{Settings: store})
	n := len(config.DefaultCharacters())

	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Character() != n-1 {
		t.Errorf("left from the first character = %d, want %d", m.Character(), n-1)
	}
	if store.Get().Character != n-1 {
		t.Errorf("settings character = %d, want %d", store.Get().Character, n-1)
	}

	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Character() != 1 {
		t.Errorf("character = %d, want 1", m.Character())
	}

	// A new menu starts from the saved selection.
	again := newTestMenu(t, MenuOptions{Settings: store})
	if again.Character() != 1 {
		t.Errorf("restored character = %d, want 1", again.Character())
	}
}

func TestMenuCharacterWithoutSettings(t *testing.T) {
	m := newTestMenu(t, MenuOptions{Character: 11})
	if m.Character() != 3 {
		t.Errorf("out of range character should wrap, got %d", m.Character())
	}
}

func TestMenuIdleStartsDemo(t *testing.T) {
	m := newTestMenu(t, MenuOptions{})
	m.Init()

	gen := m.idle.gen
	m, _ = menuUpdate(t, m, runeKey("x"))
	m, cmd := menuUpdate(t, m, IdleMsg{Gen: gen})
	if _, chosen := m.Choice(); chosen {
		t.Fatal("a key press should make the old countdown stale")
	}
	if cmd == nil {
		t.Error("stale idle message should wait again")
	}

	m, _ = menuUpdate(t, m, IdleMsg{Gen: m.idle.gen})
	if item, chosen := m.Choice(); !chosen || item != MenuDemo {
		t.Errorf("Choice() = %v, %v; want Demo", item, chosen)
	}
}

func TestMenuIdleDisabled(t *testing.T) {
	cfg := config.DefaultFalldownConfig()
	cfg.AI.IdleSeconds = 0
	m := newTestMenu(t, MenuOptions{Live: config.NewLive(cfg, "")})
	if m.idle.wait() != nil {
		t.Error("idle_seconds 0 should disable the demo autostart")
	}
}

func TestMenuBackgroundTicks(t *testing.T) {
	m := newTestMenu(t, MenuOptions{})
	before := m.background.Camera().Offset().Y

	m, cmd := menuUpdate(t, m, TickMsg{Loop: m.loop})
	if cmd == nil {
		t.Error("tick should schedule the next one")
	}
	if m.background.Camera().Offset().Y <= before {
		t.Error("background should scroll on ticks")
	}

	_, cmd = menuUpdate(t, m, TickMsg{Loop: m.loop + 1})
	if cmd != nil {
		t.Error("foreign ticks are dropped")
	}
}

func TestMenuView(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore(falldown.GameID, "ada", "Fox", 4321); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}
	m := newTestMenu(t, MenuOptions{Store: store, PlayerName: "ada"})

	view := m.View()
	for _, want := range []string{"F A L L D O W N", "Fox", "> Play <", "Demo", "High score: 4321", "Player: ada"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}
}
