package fleet

import "errors"

// Placement errors.
var (
	ErrOutOfBounds     = errors.New("fleet: footprint out of bounds")
	ErrOverlap         = errors.New("fleet: overlaps another vessel")
	ErrDuplicateSlot   = errors.New("fleet: every slot of this class is filled")
	ErrIncompleteFleet = errors.New("fleet: not every vessel has been placed")
	ErrUnknownClass    = errors.New("fleet: class not part of this fleet")
)

// Move errors. ErrOutOfBounds is shared with placement.
var (
	ErrLocked    = errors.New("fleet: vessel is locked")
	ErrNotFound  = errors.New("fleet: no such vessel")
	ErrSunk      = errors.New("fleet: vessel is sunk")
	ErrCollision = errors.New("fleet: would collide with another vessel")
)

// IsPlacementError reports whether err is one of the placement rejections.
func IsPlacementError(err error) bool {
	return errors.Is(err, ErrOutOfBounds) ||
		errors.Is(err, ErrOverlap) ||
		errors.Is(err, ErrDuplicateSlot) ||
		errors.Is(err, ErrIncompleteFleet) ||
		errors.Is(err, ErrUnknownClass)
}

// IsMoveError reports whether err is one of the move/rotate rejections.
func IsMoveError(err error) bool {
	return errors.Is(err, ErrLocked) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSunk) ||
		errors.Is(err, ErrOutOfBounds) ||
		errors.Is(err, ErrCollision)
}
