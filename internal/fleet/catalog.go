// Package fleet models vessels and the fleet that owns them: the immutable
// vessel catalog, placed vessel instances and the placement, movement and
// damage rules applied to one player's playing field.
package fleet

import (
	"fmt"
	"sort"
	"strings"
)

// Class identifies a vessel type in the catalog.
type Class uint8

const (
	Carrier Class = iota
	Battleship
	Cruiser
	Destroyer
	Submarine
)

// Kind is a catalog entry. Length and hit points are equal for every class:
// each occupied cell absorbs exactly one hit.
type Kind struct {
	Class        Class
	Name         string
	Length       int
	MaxHitPoints int
}

// catalog is indexed by Class and never modified.
var catalog = [...]Kind{
	Carrier:    {Class: Carrier, Name: "carrier", Length: 5, MaxHitPoints: 5},
	Battleship: {Class: Battleship, Name: "battleship", Length: 4, MaxHitPoints: 4},
	Cruiser:    {Class: Cruiser, Name: "cruiser", Length: 3, MaxHitPoints: 3},
	Destroyer:  {Class: Destroyer, Name: "destroyer", Length: 2, MaxHitPoints: 2},
	Submarine:  {Class: Submarine, Name: "submarine", Length: 1, MaxHitPoints: 1},
}

// KindOf returns the catalog entry for a class.
func KindOf(c Class) (Kind, bool) {
	if int(c) >= len(catalog) {
		return Kind{}, false
	}
	return catalog[c], true
}

// Kinds returns a copy of the catalog in class order.
func Kinds() []Kind {
	out := make([]Kind, len(catalog))
	copy(out, catalog[:])
	return out
}

// String returns the catalog name of the class.
func (c Class) String() string {
	if k, ok := KindOf(c); ok {
		return k.Name
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// ParseClass resolves a catalog name (case-insensitive). Plural forms such
// as "destroyers" and "submarines" are accepted.
func ParseClass(name string) (Class, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range catalog {
		if name == k.Name || name == k.Name+"s" {
			return k.Class, true
		}
	}
	return 0, false
}

// Composition is the number of vessels of each class a fleet must field.
type Composition map[Class]int

// StandardComposition is the classic fleet: one carrier, one battleship,
// one cruiser, two destroyers and two submarines.
func StandardComposition() Composition {
	return Composition{
		Carrier:    1,
		Battleship: 1,
		Cruiser:    1,
		Destroyer:  2,
		Submarine:  2,
	}
}

// Total returns the number of vessels required.
func (c Composition) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Cells returns the number of grid cells the full fleet occupies.
func (c Composition) Cells() int {
	cells := 0
	for class, n := range c {
		if k, ok := KindOf(class); ok {
			cells += k.Length * n
		}
	}
	return cells
}

// Validate checks that every class exists and the fleet is not empty.
func (c Composition) Validate() error {
	if c.Total() <= 0 {
		return fmt.Errorf("fleet: composition has no vessels")
	}
	for class, n := range c {
		if _, ok := KindOf(class); !ok {
			return fmt.Errorf("fleet: composition: %w: %v", ErrUnknownClass, class)
		}
		if n < 0 {
			return fmt.Errorf("fleet: composition: negative quantity for %s", class)
		}
	}
	return nil
}

// Slots lists every (class, slot) pair in catalog order, slots numbered from 1.
func (c Composition) Slots() []VesselID {
	classes := make([]Class, 0, len(c))
	for class := range c {
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	ids := make([]VesselID, 0, c.Total())
	for _, class := range classes {
		for slot := 1; slot <= c[class]; slot++ {
			ids = append(ids, VesselID{Class: class, Slot: slot})
		}
	}
	return ids
}

// Clone returns an independent copy of the composition.
func (c Composition) Clone() Composition {
	out := make(Composition, len(c))
	for class, n := range c {
		out[class] = n
	}
	return out
}
