package entities

import "errors"

// Fatal errors: the question bank could not be loaded and the session must halt.
var (
	ErrDataUnavailable = errors.New("question data unavailable")
	ErrDataCorrupt     = errors.New("question data corrupt")
)

// Recoverable errors: shown inline while navigation stays available.
var (
	ErrAuthMismatch      = errors.New("incorrect username or password")
	ErrAuthRequired      = errors.New("authentication required")
	ErrQuestionNotFound  = errors.New("question does not exist or is out of range")
	ErrInvalidTransition = errors.New("action is not available on this screen")
)

// IsFatal reports whether err stops all further interaction.
func IsFatal(err error) bool {
	return errors.Is(err, ErrDataUnavailable) || errors.Is(err, ErrDataCorrupt)
}

// ErrProgressNotFound is returned by progress persistence when nothing is stored for a key.
var ErrProgressNotFound = errors.New("progress not found")

// ErrProgressNotSaved is recoverable: the transition happened but its progress write failed.
var ErrProgressNotSaved = errors.New("progress could not be saved")
