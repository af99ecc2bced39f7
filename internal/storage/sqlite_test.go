package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/fleet"
	"github.com/vovakirdan/tui-battleship/internal/grid"
	"github.com/vovakirdan/tui-battleship/internal/match"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// finishedMatch plays a submarine-only match that winner wins in one shot
// after the loser misses once (when the loser does not start).
func finishedMatch(t *testing.T, names [2]string, winner core.PlayerID) match.Snapshot {
	t.Helper()
	cfg := match.DefaultConfig()
	cfg.Composition = fleet.Composition{fleet.Submarine: 1}
	cfg.Names = names
	cfg.FirstPlayer = winner.Other()
	m, err := match.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, pid := range []core.PlayerID{core.Player1, core.Player2} {
		if _, err := m.Place(pid, fleet.Submarine, core.Pt(4, 4), grid.Horizontal); err != nil {
			t.Fatal(err)
		}
		if err := m.Lock(pid); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := m.Fire(winner.Other(), core.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Fire(winner, core.Pt(4, 4)); err != nil {
		t.Fatal(err)
	}
	if m.Phase() != match.PhaseFinished {
		t.Fatalf("match not finished: %s", m.Phase())
	}
	return m.State()
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveMatch("match-a", "battleship", finishedMatch(t, [2]string{"Ann", "Bob"}, core.Player1)); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	records, err := store.RecentMatches(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 match after reopen, got %d", len(records))
	}
}

func TestSaveAndLoadMatch(t *testing.T) {
	store := openTestStore(t)
	snap := finishedMatch(t, [2]string{"Ann", "Bob"}, core.Player2)

	id, err := store.SaveMatch("match-abc", "battleship_quick", snap)
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveMatch() id = %d", id)
	}

	got, err := store.MatchByID("match-abc")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("MatchByID() returned nil")
	}
	if got.Winner != "Bob" || got.WinnerSlot != 2 || got.Variant != "battleship_quick" {
		t.Errorf("record = %+v", got.MatchRecord)
	}
	if got.Score2 != 1 || got.Score1 != 0 || got.Hits2 != 1 || got.Misses1 != 1 || got.Turns != 2 {
		t.Errorf("counters = %+v", got.MatchRecord)
	}
	if got.Snapshot.Winner != core.Player2 || got.Snapshot.Phase != match.PhaseFinished {
		t.Errorf("decoded snapshot = %+v", got.Snapshot)
	}

	missing, err := store.MatchByID("match-nope")
	if err != nil || missing != nil {
		t.Errorf("MatchByID() of unknown id = %v, %v, expected nil, nil", missing, err)
	}
}

func TestSaveMatchRejectsUnfinished(t *testing.T) {
	store := openTestStore(t)
	m, err := match.New(match.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveMatch("match-live", "battleship", m.State()); !errors.Is(err, ErrNotFinished) {
		t.Errorf("SaveMatch() of live match = %v, expected ErrNotFinished", err)
	}
}

func TestSaveMatchDuplicateIsAtomic(t *testing.T) {
	store := openTestStore(t)
	snap := finishedMatch(t, [2]string{"Ann", "Bob"}, core.Player1)
	if _, err := store.SaveMatch("match-dup", "battleship", snap); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveMatch("match-dup", "battleship", snap); err == nil {
		t.Fatal("second SaveMatch() with same id should fail")
	}
	moves, err := store.Moves("match-dup")
	if err != nil {
		t.Fatal(err)
	}
	p1, _ := snap.Player(core.Player1)
	p2, _ := snap.Player(core.Player2)
	if len(moves) != len(p1.History)+len(p2.History) {
		t.Errorf("Moves() = %d rows, expected %d", len(moves), len(p1.History)+len(p2.History))
	}
}

func TestMovesInPlayOrder(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveMatch("match-m", "battleship", finishedMatch(t, [2]string{"Ann", "Bob"}, core.Player1)); err != nil {
		t.Fatal(err)
	}
	moves, err := store.Moves("match-m")
	if err != nil {
		t.Fatalf("Moves() failed: %v", err)
	}
	// Two placements, then Bob's miss on turn 0 and Ann's sinking hit on turn 1.
	if len(moves) != 4 {
		t.Fatalf("Moves() = %d rows, expected 4", len(moves))
	}
	last := moves[len(moves)-1]
	if last.Kind != match.KindFire || last.Outcome != match.OutcomeHit || !last.Sunk || last.Player != 1 || last.Turn != 1 {
		t.Errorf("last move = %+v", last)
	}
	if last.Vessel != "submarine-1" || last.X != 4 || last.Y != 4 {
		t.Errorf("last move target = %+v", last)
	}
	for i := 1; i < len(moves); i++ {
		if moves[i].Turn < moves[i-1].Turn {
			t.Errorf("moves out of order at %d: %+v after %+v", i, moves[i], moves[i-1])
		}
	}
}

func TestRecentAndPlayerMatches(t *testing.T) {
	store := openTestStore(t)
	games := []struct {
		id     string
		names  [2]string
		winner core.PlayerID
	}{
		{"match-1", [2]string{"Ann", "Bob"}, core.Player1},
		{"match-2", [2]string{"Cid", "Ann"}, core.Player1},
		{"match-3", [2]string{"Bob", "Cid"}, core.Player2},
	}
	for _, g := range games {
		if _, err := store.SaveMatch(g.id, "battleship", finishedMatch(t, g.names, g.winner)); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := store.RecentMatches(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].MatchID != "match-3" || recent[1].MatchID != "match-2" {
		t.Errorf("RecentMatches(2) = %+v", recent)
	}

	ann, err := store.PlayerMatches("Ann", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(ann) != 2 {
		t.Errorf("PlayerMatches(Ann) = %d, expected 2", len(ann))
	}
}

func TestLeaderboard(t *testing.T) {
	store := openTestStore(t)
	results := []struct {
		names  [2]string
		winner core.PlayerID
	}{
		{[2]string{"Ann", "Bob"}, core.Player1},
		{[2]string{"Bob", "Ann"}, core.Player2},
		{[2]string{"Bob", "Cid"}, core.Player1},
	}
	for i, r := range results {
		id := "match-" + string(rune('a'+i))
		if _, err := store.SaveMatch(id, "battleship", finishedMatch(t, r.names, r.winner)); err != nil {
			t.Fatal(err)
		}
	}

	board, err := store.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(board) != 3 {
		t.Fatalf("Leaderboard() = %d rows, expected 3", len(board))
	}
	top := board[0]
	if top.Name != "Ann" || top.Wins != 2 || top.Games != 2 {
		t.Errorf("top = %+v, expected Ann with 2 wins in 2 games", top)
	}
	if top.Accuracy() != 1 {
		t.Errorf("Ann accuracy = %v, expected 1", top.Accuracy())
	}
	if board[1].Name != "Bob" || board[1].Wins != 1 || board[1].Games != 3 {
		t.Errorf("second = %+v", board[1])
	}
	if board[2].Name != "Cid" || board[2].Wins != 0 {
		t.Errorf("third = %+v", board[2])
	}
}
