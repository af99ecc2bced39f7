package match

import (
	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/fleet"
)

// Phase is the lifecycle stage of a match. Transitions only move forward.
type Phase string

const (
	PhasePlacement Phase = "placement"
	PhaseActive    Phase = "active"
	PhaseFinished  Phase = "finished"
)

// MoveKind identifies the command a Move records.
type MoveKind string

const (
	KindPlace     MoveKind = "place"
	KindTranslate MoveKind = "translate"
	KindRotate    MoveKind = "rotate"
	KindFire      MoveKind = "fire"
)

// Outcome is the result of a command.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeHit     Outcome = "hit"
	OutcomeMiss    Outcome = "miss"
	OutcomeInvalid Outcome = "invalid"
)

// Move is an immutable entry in a player's history. Target is the fired-at
// cell for Fire and the vessel's resulting position otherwise.
type Move struct {
	Turn    int
	Kind    MoveKind
	Target  core.Point
	Vessel  fleet.VesselID
	Outcome Outcome
	Sunk    bool
}

// Player is a read-only view of one side of the match.
type Player struct {
	ID         core.PlayerID
	Name       string
	History    []Move
	Hits       int
	Misses     int
	ActiveTurn bool
}

// Shots returns the number of completed Fire commands.
func (p Player) Shots() int { return p.Hits + p.Misses }

// seat is the mutable state behind a Player.
type seat struct {
	id      core.PlayerID
	name    string
	fleet   *fleet.Fleet
	history []Move
	hits    int
	misses  int
	shots   map[core.Point]Outcome
	order   []core.Point
}

func newSeat(id core.PlayerID, name string, f *fleet.Fleet) *seat {
	return &seat{
		id:    id,
		name:  name,
		fleet: f,
		shots: make(map[core.Point]Outcome),
	}
}
