// Package match implements the two-player turn and scoring state machine.
//
// A Match owns both fleets and players for its whole lifetime and moves
// through Placement, Active and Finished in that order. Every command either
// completes and records a Move, or is rejected and leaves the match exactly
// as it was. A Match has a single owner and performs no locking.
package match

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/fleet"
	"github.com/vovakirdan/tui-battleship/internal/grid"
)

// Match is a single game between Player1 and Player2.
type Match struct {
	cfg     Config
	phase   Phase
	turn    int
	active  core.PlayerID
	winner  core.PlayerID
	players [2]*seat
}

// New creates a match in the Placement phase with two empty fleets.
func New(cfg Config) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	m := &Match{
		cfg:   cfg,
		phase: PhasePlacement,
	}
	for _, id := range []core.PlayerID{core.Player1, core.Player2} {
		m.players[id.Index()] = newSeat(id, cfg.Names[id.Index()], fleet.New(cfg.Bounds, cfg.Composition))
	}
	return m, nil
}

// Config returns the configuration the match was built with.
func (m *Match) Config() Config {
	cfg := m.cfg
	cfg.Composition = m.cfg.Composition.Clone()
	return cfg
}

// Phase returns the current lifecycle phase.
func (m *Match) Phase() Phase { return m.phase }

// Turn returns the number of completed Fire commands.
func (m *Match) Turn() int { return m.turn }

// Active returns the player allowed to fire, or 0 outside active play.
func (m *Match) Active() core.PlayerID { return m.active }

// Winner returns the winning player, or 0 while the match is undecided.
func (m *Match) Winner() core.PlayerID { return m.winner }

// Player returns a copy of a player's record.
func (m *Match) Player(pid core.PlayerID) (Player, bool) {
	s, err := m.seat(pid)
	if err != nil {
		return Player{}, false
	}
	history := make([]Move, len(s.history))
	copy(history, s.history)
	return Player{
		ID:         s.id,
		Name:       s.name,
		History:    history,
		Hits:       s.hits,
		Misses:     s.misses,
		ActiveTurn: m.active == s.id,
	}, true
}

// Fleet returns a player's own fleet. Callers must treat it as read-only;
// all changes go through Match commands.
func (m *Match) Fleet(pid core.PlayerID) *fleet.Fleet {
	s, err := m.seat(pid)
	if err != nil {
		return nil
	}
	return s.fleet
}

// Opponent returns the fleet pid fires at.
func (m *Match) Opponent(pid core.PlayerID) *fleet.Fleet {
	if !pid.Valid() {
		return nil
	}
	return m.Fleet(pid.Other())
}

// Shots returns the outcome of every cell pid has fired at.
func (m *Match) Shots(pid core.PlayerID) map[core.Point]Outcome {
	s, err := m.seat(pid)
	if err != nil {
		return nil
	}
	out := make(map[core.Point]Outcome, len(s.shots))
	for p, o := range s.shots {
		out[p] = o
	}
	return out
}

// ShotAt reports whether pid has fired at p and with what outcome.
func (m *Match) ShotAt(pid core.PlayerID, p core.Point) (Outcome, bool) {
	s, err := m.seat(pid)
	if err != nil {
		return "", false
	}
	o, ok := s.shots[p]
	return o, ok
}

// Score is the sum of MaxHitPoints of the opponent vessels pid has sunk.
// It is derived from fleet state on every call.
func (m *Match) Score(pid core.PlayerID) int {
	opp := m.Opponent(pid)
	if opp == nil {
		return 0
	}
	return opp.SunkHitPoints()
}

// Place puts a vessel of the given class on pid's field.
func (m *Match) Place(pid core.PlayerID, class fleet.Class, pos core.Point, o grid.Orientation) (Move, error) {
	rejected := m.invalid(KindPlace, pos, fleet.VesselID{Class: class})
	s, err := m.placing(pid)
	if err != nil {
		return rejected, err
	}
	id, err := s.fleet.Place(class, pos, o)
	if err != nil {
		return rejected, fmt.Errorf("match: place: %w", err)
	}
	return m.record(s, Move{Turn: m.turn, Kind: KindPlace, Target: pos, Vessel: id, Outcome: OutcomeOK}), nil
}

// Move translates one of pid's vessels by (dx, dy).
func (m *Match) Move(pid core.PlayerID, id fleet.VesselID, dx, dy int) (Move, error) {
	s, err := m.placing(pid)
	if err != nil {
		return m.invalid(KindTranslate, core.Point{}, id), err
	}
	if err := s.fleet.Move(id, dx, dy); err != nil {
		return m.invalid(KindTranslate, m.positionOf(s, id), id), fmt.Errorf("match: move: %w", err)
	}
	return m.record(s, Move{Turn: m.turn, Kind: KindTranslate, Target: m.positionOf(s, id), Vessel: id, Outcome: OutcomeOK}), nil
}

// Rotate turns one of pid's vessels between horizontal and vertical.
func (m *Match) Rotate(pid core.PlayerID, id fleet.VesselID) (Move, error) {
	s, err := m.placing(pid)
	if err != nil {
		return m.invalid(KindRotate, core.Point{}, id), err
	}
	if err := s.fleet.Rotate(id); err != nil {
		return m.invalid(KindRotate, m.positionOf(s, id), id), fmt.Errorf("match: rotate: %w", err)
	}
	return m.record(s, Move{Turn: m.turn, Kind: KindRotate, Target: m.positionOf(s, id), Vessel: id, Outcome: OutcomeOK}), nil
}

// AutoPlace fills pid's empty slots at random and records a Place move for
// each new vessel. Nothing changes if the fleet cannot be completed.
func (m *Match) AutoPlace(pid core.PlayerID, rng *rand.Rand) ([]Move, error) {
	s, err := m.placing(pid)
	if err != nil {
		return nil, err
	}
	ids, err := s.fleet.AutoPlace(rng)
	if err != nil {
		return nil, fmt.Errorf("match: auto-place: %w", err)
	}
	moves := make([]Move, 0, len(ids))
	for _, id := range ids {
		pos := m.positionOf(s, id)
		moves = append(moves, m.record(s, Move{Turn: m.turn, Kind: KindPlace, Target: pos, Vessel: id, Outcome: OutcomeOK}))
	}
	return moves, nil
}

// Lock commits pid's placement. Once both fleets are locked the match
// becomes Active and the configured first player holds the turn.
func (m *Match) Lock(pid core.PlayerID) error {
	s, err := m.placing(pid)
	if err != nil {
		return err
	}
	if err := s.fleet.LockAll(); err != nil {
		return fmt.Errorf("match: lock: %w", err)
	}
	if m.players[0].fleet.Locked() && m.players[1].fleet.Locked() {
		m.phase = PhaseActive
		m.active = m.cfg.FirstPlayer
	}
	return nil
}

// Fire shoots at target on the opponent's field. A completed shot, hit or
// miss, always passes the turn. Sinking the last opponent vessel finishes
// the match with pid as winner.
func (m *Match) Fire(pid core.PlayerID, target core.Point) (Move, error) {
	rejected := m.invalid(KindFire, target, fleet.VesselID{})
	s, err := m.seat(pid)
	if err != nil {
		return rejected, err
	}
	switch m.phase {
	case PhaseFinished:
		return rejected, ErrMatchFinished
	case PhasePlacement:
		return rejected, fmt.Errorf("%w: fire during %s", ErrWrongPhase, m.phase)
	}
	if pid != m.active {
		return rejected, ErrNotYourTurn
	}
	opp := m.players[pid.Other().Index()]
	if !grid.Contains(opp.fleet.Bounds(), target) {
		return rejected, fmt.Errorf("%w: %v is off the field", ErrInvalidTarget, target)
	}
	if _, done := s.shots[target]; done {
		return rejected, fmt.Errorf("%w: %v already fired at", ErrInvalidTarget, target)
	}

	res := opp.fleet.ApplyDamage(target)
	mv := Move{Turn: m.turn, Kind: KindFire, Target: target, Outcome: OutcomeMiss}
	if res.Hit {
		mv.Outcome = OutcomeHit
		mv.Vessel = res.Vessel
		mv.Sunk = res.Sunk
		s.hits++
	} else {
		s.misses++
	}
	s.shots[target] = mv.Outcome
	s.order = append(s.order, target)
	m.record(s, mv)
	m.turn++

	if opp.fleet.IsDefeated() {
		m.phase = PhaseFinished
		m.winner = pid
		m.active = 0
	} else {
		m.active = pid.Other()
	}
	return mv, nil
}

func (m *Match) seat(pid core.PlayerID) (*seat, error) {
	if !pid.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, pid)
	}
	return m.players[pid.Index()], nil
}

// placing returns pid's seat if placement commands are allowed.
func (m *Match) placing(pid core.PlayerID) (*seat, error) {
	s, err := m.seat(pid)
	if err != nil {
		return nil, err
	}
	switch m.phase {
	case PhaseFinished:
		return nil, ErrMatchFinished
	case PhaseActive:
		return nil, fmt.Errorf("%w: placement is over", ErrWrongPhase)
	}
	return s, nil
}

func (m *Match) record(s *seat, mv Move) Move {
	s.history = append(s.history, mv)
	return mv
}

func (m *Match) invalid(kind MoveKind, target core.Point, id fleet.VesselID) Move {
	return Move{Turn: m.turn, Kind: kind, Target: target, Vessel: id, Outcome: OutcomeInvalid}
}

func (m *Match) positionOf(s *seat, id fleet.VesselID) core.Point {
	if v, ok := s.fleet.Vessel(id); ok {
		return v.Position()
	}
	return core.Point{}
}
