package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")

	ErrStopWatchStarted    = errors.New("stopwatch has already been started")
	ErrStopWatchNotStarted = errors.New("stopwatch has not been started")
	ErrStopWatchStopped    = errors.New("stopwatch has already been stopped")

	ErrSessionBegun      = errors.New("session has already begun")
	ErrSessionNotBegun   = errors.New("session has not begun")
	ErrSessionEnded      = errors.New("session has already ended")
	ErrSessionIncomplete = errors.New("session is incomplete")
)

// IsTransition reports whether err is an invalid state transition. These are
// recoverable: the state machine is left untouched.
func IsTransition(err error) bool {
	for _, target := range []error{
		ErrStopWatchStarted, ErrStopWatchNotStarted, ErrStopWatchStopped,
		ErrSessionBegun, ErrSessionNotBegun, ErrSessionEnded,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
