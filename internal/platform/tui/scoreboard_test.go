package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/games/falldown"
)

func TestScoreboardFilters(t *testing.T) {
	store := openStore(t)
	saves := []struct {
		character string
		score     int
	}{
		{"Fox", 300},
		{"Frog", 200},
		{"Fox", 100},
	}
	for _, s := range saves {
		if _, err := store.SaveScore(falldown.GameID, "ada", s.character, s.score); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}
	// Demo runs never reach the table.
	store.SaveScore(falldown.DemoGameID, "", "Fox", 999)

	roster := config.DefaultCharacters()
	m := NewScoreboardModel(store, roster, 100, 30)
	if len(m.filters) != len(roster)+1 {
		t.Fatalf("filters = %d, want %d", len(m.filters), len(roster)+1)
	}
	if len(m.scores) != 3 || m.scores[0].Score != 300 {
		t.Errorf("all scores = %v", m.scores)
	}

	// The first character filter is Fox.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if len(m.scores) != 2 {
		t.Errorf("Fox scores = %v, want 2 entries", m.scores)
	}

	// Wrapping backwards from All lands on the last character.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(ScoreboardModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(ScoreboardModel)
	if m.filters[m.cursor].Character != roster[len(roster)-1].Name {
		t.Errorf("filter = %+v, want last character", m.filters[m.cursor])
	}
	if len(m.scores) != 0 {
		t.Errorf("scores = %v, want none", m.scores)
	}
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("empty filter should say so")
	}
}

func TestScoreboardBack(t *testing.T) {
	m := NewScoreboardModel(nil, config.DefaultCharacters(), 60, 20)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() || cmd != nil {
		t.Errorf("embedded back: going back=%v cmd=%v", m.IsGoingBack(), cmd)
	}

	standalone := NewScoreboardModel(nil, nil, 60, 20)
	standalone.standalone = true
	_, cmd = standalone.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Error("standalone back should quit the program")
	}
}

func TestScoreboardView(t *testing.T) {
	store := openStore(t)
	store.SaveScore(falldown.GameID, "ada", "Slime", 77)

	for _, width := range []int{60, 120} {
		m := NewScoreboardModel(store, config.DefaultCharacters(), width, 30)
		view := m.View()
		for _, want := range []string{"HIGH SCORES - All", "ada", "Slime", "77"} {
			if !strings.Contains(view, want) {
				t.Errorf("width %d: view missing %q", width, want)
			}
		}
	}
}
