// Package grid implements the geometric rules that keep a vessel footprint
// inside its playing field. Every function is pure: footprints and bounds
// are values, and nothing here owns vessel or fleet state.
package grid

import (
	"errors"

	"github.com/vovakirdan/tui-battleship/internal/core"
)

// ErrTooLarge is returned when a footprint is wider or taller than the bounds,
// so no translation can bring it inside.
var ErrTooLarge = errors.New("grid: footprint larger than bounds")

// Orientation is the facing of a vessel on the grid.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns the string representation of an orientation.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Toggle returns the other orientation.
func (o Orientation) Toggle() Orientation {
	if o == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Footprint returns the cells covered by a vessel of the given length whose
// top-left cell is pos.
func Footprint(pos core.Point, o Orientation, length int) core.Rect {
	if o == Vertical {
		return core.NewRect(pos.X, pos.Y, 1, length)
	}
	return core.NewRect(pos.X, pos.Y, length, 1)
}

// OrientationOf infers the orientation of a footprint. Single-cell
// footprints report Horizontal.
func OrientationOf(f core.Rect) Orientation {
	if f.H > f.W {
		return Vertical
	}
	return Horizontal
}

// Clamp moves f by the smallest amount that puts it entirely inside bounds.
// A footprint already inside is returned unchanged, so Clamp is idempotent.
func Clamp(f, bounds core.Rect) (core.Rect, error) {
	if f.W > bounds.W || f.H > bounds.H {
		return f, ErrTooLarge
	}
	f.X = clampAxis(f.X, f.W, bounds.X, bounds.W)
	f.Y = clampAxis(f.Y, f.H, bounds.Y, bounds.H)
	return f, nil
}

// clampAxis keeps the segment [pos, pos+size) within [lo, lo+span).
func clampAxis(pos, size, lo, span int) int {
	return core.Clamp(pos, lo, lo+span-size)
}

// Translate offsets f by (dx, dy) cells. Each axis is applied and clamped on
// its own, so a diagonal move into an edge keeps sliding along that edge.
func Translate(f core.Rect, dx, dy int, bounds core.Rect) (core.Rect, error) {
	if f.W > bounds.W || f.H > bounds.H {
		return f, ErrTooLarge
	}
	f.X = clampAxis(f.X+dx, f.W, bounds.X, bounds.W)
	f.Y = clampAxis(f.Y+dy, f.H, bounds.Y, bounds.H)
	return f, nil
}

// Rotate turns f by 90 degrees about its center when from and to differ,
// swapping width and height, then clamps the result into bounds.
//
// The center is the integer cell (X+W/2, Y+H/2). Because the same halves are
// used in both directions, rotating twice restores the original footprint
// unless the first rotation had to be clamped.
func Rotate(f core.Rect, from, to Orientation, bounds core.Rect) (core.Rect, error) {
	if from != to {
		cx, cy := f.Center()
		f = core.Rect{
			X: cx - f.H/2,
			Y: cy - f.W/2,
			W: f.H,
			H: f.W,
		}
	}
	return Clamp(f, bounds)
}

// Overlaps reports whether two footprints share at least one cell.
func Overlaps(a, b core.Rect) bool {
	return a.Intersects(b)
}

// Contains reports whether the cell p lies on the grid described by bounds.
func Contains(bounds core.Rect, p core.Point) bool {
	return bounds.ContainsPoint(p)
}
