package fleet

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/grid"
)

// autoPlaceAttempts is how many random positions are tried per vessel before
// falling back to a full scan of the field.
const autoPlaceAttempts = 200

// DamageResult describes the effect of a shot on a fleet.
type DamageResult struct {
	Hit    bool
	Vessel VesselID
	Sunk   bool
}

// Fleet is one player's collection of vessels on a bounded field.
// It is not safe for concurrent use.
type Fleet struct {
	bounds  core.Rect
	comp    Composition
	vessels []*Vessel
	locked  bool
}

// New creates an empty fleet for the given field and composition.
func New(bounds core.Rect, comp Composition) *Fleet {
	return &Fleet{
		bounds: bounds,
		comp:   comp.Clone(),
	}
}

// Bounds returns the playing field.
func (f *Fleet) Bounds() core.Rect { return f.bounds }

// Composition returns a copy of the required composition.
func (f *Fleet) Composition() Composition { return f.comp.Clone() }

// Count returns the number of placed vessels.
func (f *Fleet) Count() int { return len(f.vessels) }

// Complete reports whether every slot of the composition is filled.
func (f *Fleet) Complete() bool { return len(f.vessels) == f.comp.Total() }

// Locked reports whether LockAll has succeeded.
func (f *Fleet) Locked() bool { return f.locked }

// Vessels returns the placed vessels in slot order.
func (f *Fleet) Vessels() []*Vessel {
	out := make([]*Vessel, len(f.vessels))
	copy(out, f.vessels)
	return out
}

// Vessel looks up a placed vessel.
func (f *Fleet) Vessel(id VesselID) (*Vessel, bool) {
	for _, v := range f.vessels {
		if v.id == id {
			return v, true
		}
	}
	return nil, false
}

// VesselAt returns the vessel covering p. Unsunk vessels take precedence.
func (f *Fleet) VesselAt(p core.Point) (*Vessel, bool) {
	var wreck *Vessel
	for _, v := range f.vessels {
		if !v.Footprint().ContainsPoint(p) {
			continue
		}
		if !v.Sunk() {
			return v, true
		}
		if wreck == nil {
			wreck = v
		}
	}
	return wreck, wreck != nil
}

// Unplaced lists the slots that still need a vessel.
func (f *Fleet) Unplaced() []VesselID {
	var out []VesselID
	for _, id := range f.comp.Slots() {
		if _, ok := f.Vessel(id); !ok {
			out = append(out, id)
		}
	}
	return out
}

// Afloat returns the number of unsunk vessels.
func (f *Fleet) Afloat() int {
	n := 0
	for _, v := range f.vessels {
		if !v.Sunk() {
			n++
		}
	}
	return n
}

// Place adds a vessel of the given class in its first free slot. The
// footprint must already be inside the field; placement never clamps.
func (f *Fleet) Place(class Class, pos core.Point, o grid.Orientation) (VesselID, error) {
	if f.locked {
		return VesselID{}, ErrLocked
	}
	kind, ok := KindOf(class)
	if !ok || f.comp[class] <= 0 {
		return VesselID{}, fmt.Errorf("%w: %s", ErrUnknownClass, class)
	}
	id, ok := f.freeSlot(class)
	if !ok {
		return VesselID{}, fmt.Errorf("%w: %s", ErrDuplicateSlot, class)
	}

	fp := grid.Footprint(pos, o, kind.Length)
	if !f.bounds.ContainsRect(fp) {
		return VesselID{}, fmt.Errorf("%w: %s at %v", ErrOutOfBounds, class, fp)
	}
	if other, hit := f.collides(fp, nil); hit {
		return VesselID{}, fmt.Errorf("%w: %s", ErrOverlap, other.id)
	}

	f.insert(newVessel(id, kind, pos, o))
	return id, nil
}

// LockAll commits every placement. It is idempotent once the fleet is locked.
func (f *Fleet) LockAll() error {
	if f.locked {
		return nil
	}
	if !f.Complete() {
		return fmt.Errorf("%w: %d of %d placed", ErrIncompleteFleet, len(f.vessels), f.comp.Total())
	}
	for _, v := range f.vessels {
		v.locked = true
	}
	f.locked = true
	return nil
}

// Move translates a vessel by (dx, dy) cells, sliding along the field edge
// when one axis is blocked.
func (f *Fleet) Move(id VesselID, dx, dy int) error {
	v, err := f.movable(id)
	if err != nil {
		return err
	}
	fp, err := grid.Translate(v.Footprint(), dx, dy, f.bounds)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, id)
	}
	if other, hit := f.collides(fp, v); hit {
		return fmt.Errorf("%w: %s would hit %s", ErrCollision, id, other.id)
	}
	v.pos = fp.Pos()
	return nil
}

// Rotate turns a vessel 90 degrees about its center.
func (f *Fleet) Rotate(id VesselID) error {
	v, err := f.movable(id)
	if err != nil {
		return err
	}
	to := v.orientation.Toggle()
	fp, err := grid.Rotate(v.Footprint(), v.orientation, to, f.bounds)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, id)
	}
	if other, hit := f.collides(fp, v); hit {
		return fmt.Errorf("%w: %s would hit %s", ErrCollision, id, other.id)
	}
	v.pos = fp.Pos()
	v.orientation = to
	return nil
}

// ApplyDamage strikes the unsunk vessel covering p, if any.
func (f *Fleet) ApplyDamage(p core.Point) DamageResult {
	for _, v := range f.vessels {
		if v.Sunk() || !v.Footprint().ContainsPoint(p) {
			continue
		}
		sunk := v.damage()
		return DamageResult{Hit: true, Vessel: v.id, Sunk: sunk}
	}
	return DamageResult{}
}

// IsDefeated reports whether the fleet has vessels and all of them are sunk.
func (f *Fleet) IsDefeated() bool {
	if len(f.vessels) == 0 {
		return false
	}
	return f.Afloat() == 0
}

// SunkHitPoints sums MaxHitPoints over sunk vessels.
func (f *Fleet) SunkHitPoints() int {
	total := 0
	for _, v := range f.vessels {
		if v.Sunk() {
			total += v.kind.MaxHitPoints
		}
	}
	return total
}

// AutoPlace fills every empty slot with a vessel at a random legal position
// and random orientation, returning the new vessel IDs. Vessels already
// placed are left alone. On failure the fleet is restored.
func (f *Fleet) AutoPlace(rng *rand.Rand) ([]VesselID, error) {
	if f.locked {
		return nil, ErrLocked
	}
	var placed []VesselID
	for _, slot := range f.Unplaced() {
		id, err := f.placeRandom(rng, slot.Class)
		if err != nil {
			for _, p := range placed {
				f.remove(p)
			}
			return nil, err
		}
		placed = append(placed, id)
	}
	return placed, nil
}

func (f *Fleet) placeRandom(rng *rand.Rand, class Class) (VesselID, error) {
	kind, _ := KindOf(class)
	for i := 0; i < autoPlaceAttempts; i++ {
		o := grid.Orientation(rng.Intn(2))
		fp := grid.Footprint(core.Point{}, o, kind.Length)
		if fp.W > f.bounds.W || fp.H > f.bounds.H {
			continue
		}
		pos := core.Pt(
			f.bounds.X+rng.Intn(f.bounds.W-fp.W+1),
			f.bounds.Y+rng.Intn(f.bounds.H-fp.H+1),
		)
		if id, err := f.Place(class, pos, o); err == nil {
			return id, nil
		}
	}

	// Crowded field: try every position in a shuffled order.
	cells := f.bounds.Cells()
	rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	first := grid.Orientation(rng.Intn(2))
	for _, p := range cells {
		for _, o := range []grid.Orientation{first, first.Toggle()} {
			id, err := f.Place(class, p, o)
			if err == nil {
				return id, nil
			}
			if !errors.Is(err, ErrOutOfBounds) && !errors.Is(err, ErrOverlap) {
				return VesselID{}, err
			}
		}
	}
	return VesselID{}, fmt.Errorf("%w: no room left for %s", ErrOverlap, class)
}

// movable resolves id and checks it may still change position.
func (f *Fleet) movable(id VesselID) (*Vessel, error) {
	if f.locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, id)
	}
	v, ok := f.Vessel(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if v.Sunk() {
		return nil, fmt.Errorf("%w: %s", ErrSunk, id)
	}
	if v.locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, id)
	}
	return v, nil
}

// collides returns the first unsunk vessel other than self overlapping fp.
func (f *Fleet) collides(fp core.Rect, self *Vessel) (*Vessel, bool) {
	for _, v := range f.vessels {
		if v == self || v.Sunk() {
			continue
		}
		if grid.Overlaps(fp, v.Footprint()) {
			return v, true
		}
	}
	return nil, false
}

func (f *Fleet) freeSlot(class Class) (VesselID, bool) {
	for slot := 1; slot <= f.comp[class]; slot++ {
		id := VesselID{Class: class, Slot: slot}
		if _, taken := f.Vessel(id); !taken {
			return id, true
		}
	}
	return VesselID{}, false
}

// insert keeps vessels sorted by class, then slot.
func (f *Fleet) insert(v *Vessel) {
	f.vessels = append(f.vessels, v)
	sort.Slice(f.vessels, func(i, j int) bool {
		a, b := f.vessels[i].id, f.vessels[j].id
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		return a.Slot < b.Slot
	})
}

func (f *Fleet) remove(id VesselID) {
	for i, v := range f.vessels {
		if v.id == id {
			f.vessels = append(f.vessels[:i], f.vessels[i+1:]...)
			return
		}
	}
}
