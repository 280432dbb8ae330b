package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/falldown/internal/core"
	"github.com/vovakirdan/falldown/internal/storage"
)

// fakeGame ends after overAfter steps with the given score.
type fakeGame struct {
	id        string
	overAfter int
	score     int

	resets int
	steps  int
	closed int
	seeds  []int64
	frames []core.InputFrame
	state  core.GameState
}

func (g *fakeGame) ID() string    { return g.id }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.seeds = append(g.seeds, cfg.Seed)
	g.state = core.GameState{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	if !g.state.Paused && !g.state.GameOver {
		g.steps++
		if g.overAfter > 0 && g.steps >= g.overAfter {
			g.state.GameOver = true
			g.state.Score = g.score
		}
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState   { return g.state }
func (g *fakeGame) CharacterName() string   { return "Frog" }
func (g *fakeGame) Close()                  { g.closed++ }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func tickN(t *testing.T, m GameModel, n int) GameModel {
	t.Helper()
	for range n {
		m, _ = update(t, m, TickMsg{Loop: m.loop})
	}
	return m
}

func TestGameModelTicks(t *testing.T) {
	game := &fakeGame{id: "fake"}
	m := NewGameModel(game, testConfig(), GameOptions{})
	if m.Init() == nil {
		t.Fatal("Init should start the tick loop")
	}
	if game.resets != 1 {
		t.Errorf("Init resets = %d, want 1", game.resets)
	}

	m, cmd := update(t, m, TickMsg{Loop: m.loop})
	if cmd == nil || game.steps != 1 {
		t.Errorf("tick: cmd=%v steps=%d", cmd, game.steps)
	}

	// Ticks scheduled by another screen are dropped without rescheduling.
	m, cmd = update(t, m, TickMsg{Loop: m.loop + 1})
	if cmd != nil || game.steps != 1 {
		t.Errorf("foreign tick: cmd=%v steps=%d", cmd, game.steps)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if game.resets != 1 {
		t.Error("resize must not restart the run")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, want 100x40", m.screen.Width(), m.screen.Height())
	}
}

func TestGameModelHeldKeys(t *testing.T) {
	game := &fakeGame{id: "fake"}
	m := NewGameModel(game, testConfig(), GameOptions{})
	m.Init()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = tickN(t, m, 10)
	if !game.frames[9].Has(core.ActionLeft) {
		t.Error("left should still be held 10 ticks after the press")
	}

	m = tickN(t, m, 30)
	if game.frames[len(game.frames)-1].Has(core.ActionLeft) {
		t.Error("left should be released once no repeat arrived")
	}
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	store := openStore(t)
	game := &fakeGame{id: "fake", overAfter: 3, score: 120}
	m := NewGameModel(game, testConfig(), GameOptions{Store: store, PlayerName: "ada", MaxEntries: 10})
	m.Init()

	m = tickN(t, m, 10)
	if !m.State().GameOver {
		t.Fatal("fake game should be over")
	}

	scores, err := store.AllScores("fake")
	if err != nil {
		t.Fatalf("AllScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, want 1", len(scores))
	}
	got := scores[0]
	if got.Score != 120 || got.Player != "ada" || got.Character != "Frog" {
		t.Errorf("saved %+v", got)
	}
}

func TestGameModelSkipsScores(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		score int
	}{
		{"demo", "fake_demo", 500},
		{"zero", "fake", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openStore(t)
			game := &fakeGame{id: tt.id, overAfter: 1, score: tt.score}
			m := NewGameModel(game, testConfig(), GameOptions{Store: store})
			m.Init()
			tickN(t, m, 3)

			scores, err := store.AllScores(tt.id)
			if err != nil {
				t.Fatalf("AllScores: %v", err)
			}
			if len(scores) != 0 {
				t.Errorf("saved %v, want nothing", scores)
			}
		})
	}
}

func TestGameModelRestart(t *testing.T) {
	game := &fakeGame{id: "fake", overAfter: 2, score: 10}
	m := NewGameModel(game, testConfig(), GameOptions{})
	m.Init()
	m = tickN(t, m, 3)

	m, _ = update(t, m, runeKey("r"))
	m = tickN(t, m, 1)
	if game.resets != 2 {
		t.Fatalf("resets = %d, want 2", game.resets)
	}
	if game.seeds[1] == game.seeds[0] {
		t.Error("restart should use a fresh seed")
	}
	if m.State().GameOver {
		t.Error("state should be reset after restart")
	}
}

func TestGameModelBack(t *testing.T) {
	game := &fakeGame{id: "fake"}
	m := NewGameModel(game, testConfig(), GameOptions{})
	m.Init()

	m, _ = update(t, m, runeKey("b"))
	if m.BackToMenu() {
		t.Fatal("back is ignored while running")
	}

	m, _ = update(t, m, runeKey("p"))
	m = tickN(t, m, 1)
	if !m.State().Paused {
		t.Fatal("p should pause")
	}

	m, cmd := update(t, m, runeKey("b"))
	if !m.BackToMenu() || m.IsQuitting() || cmd != nil {
		t.Errorf("back while paused: back=%v quit=%v cmd=%v", m.BackToMenu(), m.IsQuitting(), cmd)
	}
	if game.closed != 1 {
		t.Errorf("Close calls = %d, want 1", game.closed)
	}
}

func TestGameModelStandaloneBackQuits(t *testing.T) {
	game := &fakeGame{id: "fake", overAfter: 1}
	m := NewGameModel(game, testConfig(), GameOptions{Standalone: true})
	m.Init()
	m = tickN(t, m, 2)

	m, cmd := update(t, m, runeKey("b"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("standalone back should quit the program")
	}
}

func TestGameModelQuit(t *testing.T) {
	game := &fakeGame{id: "fake"}
	m := NewGameModel(game, testConfig(), GameOptions{})
	m.Init()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() || cmd == nil {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
	if game.closed != 1 {
		t.Error("quit should close the game")
	}
}

func TestGameModelDemo(t *testing.T) {
	game := &fakeGame{id: "fake_demo", overAfter: 2}
	m := NewGameModel(game, testConfig(), GameOptions{})
	m.Init()

	m = tickN(t, m, 3)
	if !m.State().GameOver {
		t.Fatal("demo run should be over")
	}
	m = tickN(t, m, ticksFor(demoRestartDelay, 60))
	if game.resets != 2 {
		t.Errorf("demo should restart after the delay, resets = %d", game.resets)
	}

	m, _ = update(t, m, runeKey("x"))
	if !m.BackToMenu() {
		t.Error("any key should end the demo")
	}
}

func TestGameModelView(t *testing.T) {
	game := &fakeGame{id: "fake"}
	m := NewGameModel(game, testConfig(), GameOptions{})
	m.Init()
	if got := m.View(); len(got) == 0 || got[:4] != "fake" {
		t.Errorf("View() = %q", got)
	}
}
