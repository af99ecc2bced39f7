package fleet

import (
	"fmt"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/grid"
)

// VesselID names a vessel by its class and slot (1-based).
type VesselID struct {
	Class Class
	Slot  int
}

// String returns e.g. "destroyer-2".
func (id VesselID) String() string {
	return fmt.Sprintf("%s-%d", id.Class, id.Slot)
}

// Vessel is a placed vessel. It is owned by exactly one Fleet and only
// mutated through it.
type Vessel struct {
	id          VesselID
	kind        Kind
	pos         core.Point
	orientation grid.Orientation
	hitPoints   int
	locked      bool
}

func newVessel(id VesselID, kind Kind, pos core.Point, o grid.Orientation) *Vessel {
	return &Vessel{
		id:          id,
		kind:        kind,
		pos:         pos,
		orientation: o,
		hitPoints:   kind.MaxHitPoints,
	}
}

// ID returns the vessel identifier.
func (v *Vessel) ID() VesselID { return v.id }

// Kind returns the catalog entry.
func (v *Vessel) Kind() Kind { return v.kind }

// Position returns the top-left cell.
func (v *Vessel) Position() core.Point { return v.pos }

// Orientation returns the current facing.
func (v *Vessel) Orientation() grid.Orientation { return v.orientation }

// HitPoints returns the remaining hit points.
func (v *Vessel) HitPoints() int { return v.hitPoints }

// Locked reports whether placement has been committed.
func (v *Vessel) Locked() bool { return v.locked }

// Sunk reports whether the vessel has no hit points left.
func (v *Vessel) Sunk() bool { return v.hitPoints == 0 }

// Footprint returns the cells the vessel occupies.
func (v *Vessel) Footprint() core.Rect {
	return grid.Footprint(v.pos, v.orientation, v.kind.Length)
}

// damage removes one hit point and reports whether this sank the vessel.
func (v *Vessel) damage() bool {
	if v.hitPoints == 0 {
		return false
	}
	v.hitPoints--
	return v.hitPoints == 0
}
