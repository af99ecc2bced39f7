package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/fleet"
	"github.com/vovakirdan/tui-battleship/internal/grid"
	"github.com/vovakirdan/tui-battleship/internal/match"
	"github.com/vovakirdan/tui-battleship/internal/storage"
)

// scriptedGame finishes a one-submarine match on its first step.
type scriptedGame struct {
	m       *match.Match
	resets  int
	resized [2]int
}

func (g *scriptedGame) ID() string    { return "battleship" }
func (g *scriptedGame) Title() string { return "Scripted" }
func (g *scriptedGame) MatchID() string {
	return "match-TEST01"
}

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	cfg := match.DefaultConfig()
	cfg.Composition = fleet.Composition{fleet.Submarine: 1}
	g.m, _ = match.New(cfg)
	for _, pid := range []core.PlayerID{core.Player1, core.Player2} {
		g.m.Place(pid, fleet.Submarine, core.Pt(0, 0), grid.Horizontal)
		g.m.Lock(pid)
	}
}

func (g *scriptedGame) Step(core.InputFrame) core.StepResult {
	if g.m.Phase() == match.PhaseActive {
		g.m.Fire(core.Player1, core.Pt(0, 0))
	}
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{
		Score:    g.m.Score(core.Player1),
		GameOver: g.m.Phase() == match.PhaseFinished,
	}
}

func (g *scriptedGame) Result() (match.Snapshot, bool) {
	return g.m.State(), g.m.Phase() == match.PhaseFinished
}

func (g *scriptedGame) Resize(w, h int) {
	g.resized = [2]int{w, h}
}

func newTestModel(t *testing.T) (Model, *scriptedGame, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	game := &scriptedGame{}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1})
	m.Init()
	return m, game, store
}

func tick(m Model) Model {
	next, _ := m.Update(TickMsg{})
	return next.(Model)
}

func TestModelSavesFinishedMatchOnce(t *testing.T) {
	m, _, store := newTestModel(t)

	m = tick(m)
	m = tick(m)
	m = tick(m)

	if !m.gameState.GameOver {
		t.Fatal("expected game over after first tick")
	}
	records, err := store.RecentMatches(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("RecentMatches() = %d, expected 1", len(records))
	}
	if records[0].MatchID != "match-TEST01" || records[0].Variant != "battleship" {
		t.Errorf("record = %+v", records[0])
	}
}

func TestModelRestart(t *testing.T) {
	m, game, _ := newTestModel(t)
	m = tick(m)

	next, _ := m.Update(runeKey('n'))
	m = tick(next.(Model))
	if game.resets != 2 {
		t.Errorf("resets = %d, expected 2", game.resets)
	}
	if m.saved {
		t.Error("restart should clear the saved flag")
	}
}

func TestModelResizeKeepsMatch(t *testing.T) {
	m, game, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	if game.resets != 1 {
		t.Errorf("resize restarted the game (%d resets)", game.resets)
	}
	if game.resized != [2]int{100, 30} {
		t.Errorf("Resize() got %v", game.resized)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelBackOnlyWhenOver(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, _ := m.Update(runeKey('b'))
	m = next.(Model)
	if m.BackToMenu() {
		t.Error("back should be ignored while the match runs")
	}

	m.inputFrame.Clear()
	m = tick(m)
	next, _ = m.Update(runeKey('b'))
	if !next.(Model).BackToMenu() {
		t.Error("back should return to the menu after game over")
	}
}

func TestModelQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "hit", core.ColorHit)
	s.DrawText(0, 1, "water")

	out := RenderScreen(s)
	if !strings.Contains(out, "hit") || !strings.Contains(out, "water") {
		t.Errorf("RenderScreen() = %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen() should have 2 lines, got %q", out)
	}
}
