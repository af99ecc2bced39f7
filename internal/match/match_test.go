package match

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/fleet"
	"github.com/vovakirdan/tui-battleship/internal/grid"
)

// carrierOnly is a match where each side fields one carrier at (0,0).
func carrierOnly(t *testing.T) *Match {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Composition = fleet.Composition{fleet.Carrier: 1}
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	for _, pid := range []core.PlayerID{core.Player1, core.Player2} {
		if _, err := m.Place(pid, fleet.Carrier, core.Pt(0, 0), grid.Horizontal); err != nil {
			t.Fatalf("Place(%d) error: %v", pid, err)
		}
		if err := m.Lock(pid); err != nil {
			t.Fatalf("Lock(%d) error: %v", pid, err)
		}
	}
	return m
}

func mustFire(t *testing.T, m *Match, pid core.PlayerID, p core.Point) Move {
	t.Helper()
	mv, err := m.Fire(pid, p)
	if err != nil {
		t.Fatalf("Fire(%d, %v) error: %v", pid, p, err)
	}
	return mv
}

func TestNew(t *testing.T) {
	m, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if m.Phase() != PhasePlacement || m.Turn() != 0 || m.Active() != 0 || m.Winner() != 0 {
		t.Errorf("new match: phase=%s turn=%d active=%d winner=%d", m.Phase(), m.Turn(), m.Active(), m.Winner())
	}
	for _, pid := range []core.PlayerID{core.Player1, core.Player2} {
		if m.Fleet(pid).Count() != 0 {
			t.Errorf("player %d fleet not empty", pid)
		}
	}
	if p, _ := m.Player(core.Player2); p.Name != "Player 2" {
		t.Errorf("default name = %q", p.Name)
	}
}

func TestNewInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty field", func(c *Config) { c.Bounds = core.NewRect(0, 0, 0, 10) }},
		{"empty fleet", func(c *Config) { c.Composition = fleet.Composition{} }},
		{"carrier too long", func(c *Config) { c.Bounds = core.NewRect(0, 0, 4, 4) }},
		{"too many cells", func(c *Config) {
			c.Bounds = core.NewRect(0, 0, 5, 3)
			c.Composition = fleet.Composition{fleet.Cruiser: 6}
		}},
		{"bad first player", func(c *Config) { c.FirstPlayer = 3 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestPlacementHistory(t *testing.T) {
	m, _ := New(DefaultConfig())
	mv, err := m.Place(core.Player1, fleet.Cruiser, core.Pt(2, 2), grid.Horizontal)
	if err != nil {
		t.Fatal(err)
	}
	id := fleet.VesselID{Class: fleet.Cruiser, Slot: 1}
	if mv.Kind != KindPlace || mv.Outcome != OutcomeOK || mv.Vessel != id {
		t.Errorf("Place() = %+v", mv)
	}
	if mv, err = m.Move(core.Player1, id, 1, 1); err != nil || mv.Target != core.Pt(3, 3) {
		t.Errorf("Move() = %+v, %v", mv, err)
	}
	if mv, err = m.Rotate(core.Player1, id); err != nil || mv.Kind != KindRotate {
		t.Errorf("Rotate() = %+v, %v", mv, err)
	}

	p, _ := m.Player(core.Player1)
	kinds := []MoveKind{KindPlace, KindTranslate, KindRotate}
	if len(p.History) != len(kinds) {
		t.Fatalf("history has %d moves, expected %d", len(p.History), len(kinds))
	}
	for i, k := range kinds {
		if p.History[i].Kind != k || p.History[i].Turn != 0 {
			t.Errorf("history[%d] = %+v, expected kind %s on turn 0", i, p.History[i], k)
		}
	}
	if other, _ := m.Player(core.Player2); len(other.History) != 0 {
		t.Error("placement must only touch the acting player")
	}
}

func TestRejectedCommandsChangeNothing(t *testing.T) {
	m, _ := New(DefaultConfig())
	if _, err := m.Place(core.Player1, fleet.Cruiser, core.Pt(2, 0), grid.Horizontal); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Place(core.Player1, fleet.Submarine, core.Pt(9, 9), grid.Horizontal); err != nil {
		t.Fatal(err)
	}
	before := m.State()

	sub := fleet.VesselID{Class: fleet.Submarine, Slot: 1}
	commands := []struct {
		name string
		run  func() (Move, error)
		err  error
	}{
		{"overlapping destroyer", func() (Move, error) {
			return m.Place(core.Player1, fleet.Destroyer, core.Pt(3, 0), grid.Vertical)
		}, fleet.ErrOverlap},
		{"off the field", func() (Move, error) {
			return m.Place(core.Player1, fleet.Carrier, core.Pt(7, 7), grid.Horizontal)
		}, fleet.ErrOutOfBounds},
		{"unknown vessel", func() (Move, error) {
			return m.Move(core.Player1, fleet.VesselID{Class: fleet.Carrier, Slot: 1}, 1, 0)
		}, fleet.ErrNotFound},
		{"unknown player", func() (Move, error) {
			return m.Rotate(core.PlayerID(7), sub)
		}, ErrUnknownPlayer},
		{"fire during placement", func() (Move, error) {
			return m.Fire(core.Player1, core.Pt(0, 0))
		}, ErrWrongPhase},
	}
	for _, tc := range commands {
		t.Run(tc.name, func(t *testing.T) {
			mv, err := tc.run()
			if !errors.Is(err, tc.err) {
				t.Fatalf("error = %v, expected %v", err, tc.err)
			}
			if mv.Outcome != OutcomeInvalid {
				t.Errorf("Outcome = %s, expected invalid", mv.Outcome)
			}
			if after := m.State(); !reflect.DeepEqual(before, after) {
				t.Error("rejected command changed match state")
			}
		})
	}
}

func TestLockTransitions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Composition = fleet.Composition{fleet.Destroyer: 1}
	m, _ := New(cfg)

	if err := m.Lock(core.Player1); !errors.Is(err, fleet.ErrIncompleteFleet) {
		t.Fatalf("Lock() on empty fleet = %v, expected ErrIncompleteFleet", err)
	}
	id := fleet.VesselID{Class: fleet.Destroyer, Slot: 1}
	if _, err := m.Place(core.Player1, fleet.Destroyer, core.Pt(0, 0), grid.Horizontal); err != nil {
		t.Fatal(err)
	}
	if err := m.Lock(core.Player1); err != nil {
		t.Fatal(err)
	}
	if m.Phase() != PhasePlacement {
		t.Fatal("one locked fleet must not start the match")
	}

	mv, err := m.Move(core.Player1, id, 1, 0)
	if !errors.Is(err, fleet.ErrLocked) || mv.Outcome != OutcomeInvalid {
		t.Errorf("Move() after lock = %+v, %v, expected ErrLocked", mv, err)
	}
	if v, _ := m.Fleet(core.Player1).Vessel(id); v.Position() != core.Pt(0, 0) {
		t.Errorf("locked vessel moved to %v", v.Position())
	}

	if _, err := m.Place(core.Player2, fleet.Destroyer, core.Pt(5, 5), grid.Vertical); err != nil {
		t.Fatal(err)
	}
	if err := m.Lock(core.Player2); err != nil {
		t.Fatal(err)
	}
	if m.Phase() != PhaseActive || m.Active() != core.Player1 {
		t.Errorf("after both locks: phase=%s active=%d", m.Phase(), m.Active())
	}
	if _, err := m.Place(core.Player2, fleet.Destroyer, core.Pt(0, 0), grid.Vertical); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Place() during active play = %v, expected ErrWrongPhase", err)
	}
}

func TestFirstPlayerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Composition = fleet.Composition{fleet.Submarine: 1}
	cfg.FirstPlayer = core.Player2
	m, _ := New(cfg)
	for _, pid := range []core.PlayerID{core.Player1, core.Player2} {
		m.Place(pid, fleet.Submarine, core.Pt(0, 0), grid.Horizontal)
		m.Lock(pid)
	}
	if m.Active() != core.Player2 {
		t.Errorf("Active() = %d, expected Player2", m.Active())
	}
	if _, err := m.Fire(core.Player1, core.Pt(1, 1)); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("Fire() out of turn = %v, expected ErrNotYourTurn", err)
	}
}

func TestTurnAlternation(t *testing.T) {
	m := carrierOnly(t)
	shooter := core.Player1
	for i := 0; i < 8; i++ {
		if m.Active() != shooter {
			t.Fatalf("shot %d: Active() = %d, expected %d", i, m.Active(), shooter)
		}
		if p, _ := m.Player(shooter); !p.ActiveTurn {
			t.Errorf("shot %d: player %d should hold the turn", i, shooter)
		}
		if p, _ := m.Player(shooter.Other()); p.ActiveTurn {
			t.Errorf("shot %d: both players hold the turn", i)
		}
		// Alternate hits and misses; the turn passes either way.
		target := core.Pt(i/2, 5)
		if i%2 == 0 {
			target = core.Pt(i/2, 0)
		}
		mustFire(t, m, shooter, target)
		if m.Turn() != i+1 {
			t.Errorf("Turn() = %d, expected %d", m.Turn(), i+1)
		}
		shooter = shooter.Other()
	}
}

func TestFireRejections(t *testing.T) {
	m := carrierOnly(t)
	mustFire(t, m, core.Player1, core.Pt(3, 3))
	mustFire(t, m, core.Player2, core.Pt(0, 0))

	before := m.State()
	tests := []struct {
		name   string
		pid    core.PlayerID
		target core.Point
		err    error
	}{
		{"not your turn", core.Player2, core.Pt(5, 5), ErrNotYourTurn},
		{"off the field", core.Player1, core.Pt(10, 0), ErrInvalidTarget},
		{"negative", core.Player1, core.Pt(-1, 4), ErrInvalidTarget},
		{"already fired", core.Player1, core.Pt(3, 3), ErrInvalidTarget},
		{"unknown player", core.PlayerID(0), core.Pt(1, 1), ErrUnknownPlayer},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mv, err := m.Fire(tc.pid, tc.target)
			if !errors.Is(err, tc.err) {
				t.Fatalf("Fire() error = %v, expected %v", err, tc.err)
			}
			if mv.Outcome != OutcomeInvalid {
				t.Errorf("Outcome = %s, expected invalid", mv.Outcome)
			}
			if tc.err != ErrUnknownPlayer && !IsTurnError(err) {
				t.Errorf("%v should be a turn error", err)
			}
			after := m.State()
			if !reflect.DeepEqual(before, after) {
				t.Error("rejected Fire changed match state")
			}
		})
	}

	p, _ := m.Player(core.Player1)
	if m.Turn() != 2 || m.Active() != core.Player1 || p.Hits != 0 || p.Misses != 1 {
		t.Errorf("after rejections: turn=%d active=%d hits=%d misses=%d", m.Turn(), m.Active(), p.Hits, p.Misses)
	}
}

func TestCarrierScenario(t *testing.T) {
	m := carrierOnly(t)
	carrier := fleet.VesselID{Class: fleet.Carrier, Slot: 1}
	target, _ := m.Fleet(core.Player2).Vessel(carrier)

	lastHP := target.HitPoints()
	for x := 0; x < 5; x++ {
		mv := mustFire(t, m, core.Player1, core.Pt(x, 0))
		if mv.Outcome != OutcomeHit || mv.Vessel != carrier {
			t.Fatalf("shot %d = %+v, expected hit on carrier", x, mv)
		}
		if mv.Sunk != (x == 4) {
			t.Errorf("shot %d: Sunk = %v", x, mv.Sunk)
		}
		if target.HitPoints() != lastHP-1 {
			t.Errorf("shot %d: hp = %d, expected %d", x, target.HitPoints(), lastHP-1)
		}
		lastHP = target.HitPoints()
		if x < 4 {
			if m.Score(core.Player1) != 0 {
				t.Errorf("score before sinking = %d, expected 0", m.Score(core.Player1))
			}
			mustFire(t, m, core.Player2, core.Pt(x, 9))
		}
	}

	if !m.Opponent(core.Player1).IsDefeated() {
		t.Fatal("opponent fleet should be defeated")
	}
	if m.Phase() != PhaseFinished || m.Winner() != core.Player1 || m.Active() != 0 {
		t.Errorf("phase=%s winner=%d active=%d", m.Phase(), m.Winner(), m.Active())
	}
	if m.Score(core.Player1) != 5 {
		t.Errorf("Score() = %d, expected 5", m.Score(core.Player1))
	}
	if m.Score(core.Player2) != 0 {
		t.Errorf("loser Score() = %d, expected 0", m.Score(core.Player2))
	}

	for _, pid := range []core.PlayerID{core.Player1, core.Player2} {
		if _, err := m.Fire(pid, core.Pt(9, 9)); !errors.Is(err, ErrMatchFinished) {
			t.Errorf("Fire() after finish = %v, expected ErrMatchFinished", err)
		}
	}
	if _, err := m.Place(core.Player1, fleet.Carrier, core.Pt(0, 5), grid.Horizontal); !errors.Is(err, ErrMatchFinished) {
		t.Errorf("Place() after finish = %v, expected ErrMatchFinished", err)
	}

	snap := m.State()
	if snap.WinnerName() != "Player 1" {
		t.Errorf("WinnerName() = %q", snap.WinnerName())
	}
	p1, _ := snap.Player(core.Player1)
	if p1.Score != 5 || p1.Hits != 5 || p1.Misses != 0 || p1.Accuracy() != 1 {
		t.Errorf("winner snapshot = %+v", p1)
	}
}

func TestAutoPlaceAndLock(t *testing.T) {
	m, _ := New(DefaultConfig())
	rng := rand.New(rand.NewSource(3))
	for _, pid := range []core.PlayerID{core.Player1, core.Player2} {
		moves, err := m.AutoPlace(pid, rng)
		if err != nil {
			t.Fatalf("AutoPlace(%d) error: %v", pid, err)
		}
		if len(moves) != 7 {
			t.Errorf("AutoPlace(%d) recorded %d moves, expected 7", pid, len(moves))
		}
		if err := m.Lock(pid); err != nil {
			t.Fatal(err)
		}
	}
	if m.Phase() != PhaseActive {
		t.Errorf("Phase() = %s, expected active", m.Phase())
	}
	if _, err := m.AutoPlace(core.Player1, rng); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("AutoPlace() during active play = %v, expected ErrWrongPhase", err)
	}
}

func TestStateIsDeepCopy(t *testing.T) {
	m := carrierOnly(t)
	mustFire(t, m, core.Player1, core.Pt(0, 0))

	snap := m.State()
	snap.Players[0].History[0].Outcome = OutcomeMiss
	snap.Players[1].Fleet[0].Cells[0] = core.Pt(9, 9)
	snap.Players[0].Shots = nil

	fresh := m.State()
	if fresh.Players[0].History[0].Outcome != OutcomeOK {
		t.Error("snapshot history aliases match history")
	}
	if fresh.Players[1].Fleet[0].Cells[0] != core.Pt(0, 0) {
		t.Error("snapshot cells alias fleet state")
	}
	if len(fresh.Players[0].Shots) != 1 || fresh.Players[0].Shots[0].Outcome != OutcomeHit {
		t.Errorf("Shots = %+v", fresh.Players[0].Shots)
	}
	if fresh.Players[1].Fleet[0].HitPoints != 4 {
		t.Errorf("carrier hp = %d, expected 4", fresh.Players[1].Fleet[0].HitPoints)
	}
}

func TestSnapshotEncoding(t *testing.T) {
	m := carrierOnly(t)
	mustFire(t, m, core.Player1, core.Pt(1, 0))
	mustFire(t, m, core.Player2, core.Pt(6, 6))

	data, err := m.State().Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error: %v", err)
	}
	if !reflect.DeepEqual(got, m.State()) {
		t.Error("decoded snapshot differs from State()")
	}

	if _, err := DecodeSnapshot([]byte(`{"version": 99}`)); err == nil {
		t.Error("unknown version should be rejected")
	}
	if _, err := DecodeSnapshot([]byte(`not json`)); err == nil {
		t.Error("garbage should be rejected")
	}
}
