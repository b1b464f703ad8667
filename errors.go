package patience

import "errors"

var (
	ErrIllegalMove        = errors.New("illegal move")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrReentrancyOverflow = errors.New("auto-fill did not stabilise")
	ErrNotInPlay          = errors.New("game is not in play")
	ErrSessionAborted     = errors.New("session was aborted")
	ErrAlreadyStarted     = errors.New("game has already started")
	ErrUnknownGame        = errors.New("unknown game")
	ErrDuplicateGame      = errors.New("game is already registered")
	ErrInvalidDefinition  = errors.New("invalid game definition")
	ErrUnknownStack       = errors.New("unknown stack")
	ErrTalonEmpty         = errors.New("talon cannot deal")
)

// Fatal reports whether err ends the session that returned it
func Fatal(err error) bool {
	return errors.Is(err, ErrInvariantViolation) ||
		errors.Is(err, ErrReentrancyOverflow) ||
		errors.Is(err, ErrSessionAborted)
}
