package battleship

import (
	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/match"
)

// Snapshot captures the adapter state on top of the match for testing and
// debugging.
type Snapshot struct {
	MatchID  string
	Mode     string // "classic" or "quick"
	View     View
	Viewer   core.PlayerID
	Selected int // -1 while the ghost is selected
	GhostX   int
	GhostY   int
	Ghost    string // orientation of the ghost
	CursorX  int
	CursorY  int
	Status   string
	Paused   bool
	TooSmall bool
	Match    match.Snapshot
}

// Snapshot returns the current adapter snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		MatchID:  g.matchID,
		Mode:     g.Variant(),
		View:     g.view,
		Viewer:   g.viewer,
		Selected: g.selected,
		GhostX:   g.ghost.pos.X,
		GhostY:   g.ghost.pos.Y,
		Ghost:    g.ghost.orientation.String(),
		Status:   g.status,
		Paused:   g.paused,
		TooSmall: g.tooSmall,
	}
	if g.viewer.Valid() {
		c := g.cursor[g.viewer.Index()]
		snap.CursorX, snap.CursorY = c.X, c.Y
	}
	if g.match != nil {
		snap.Match = g.match.State()
	}
	return snap
}
