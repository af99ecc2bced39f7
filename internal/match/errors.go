package match

import "errors"

// Turn errors.
var (
	ErrNotYourTurn   = errors.New("match: not your turn")
	ErrMatchFinished = errors.New("match: match is finished")
	ErrInvalidTarget = errors.New("match: invalid target")
)

var (
	ErrWrongPhase    = errors.New("match: command not allowed in this phase")
	ErrUnknownPlayer = errors.New("match: unknown player")
	ErrInvalidConfig = errors.New("match: invalid config")
)

// IsTurnError reports whether err rejected a Fire command.
func IsTurnError(err error) bool {
	return errors.Is(err, ErrNotYourTurn) ||
		errors.Is(err, ErrMatchFinished) ||
		errors.Is(err, ErrInvalidTarget)
}
