package midend

import (
	"errors"
	"fmt"
)

// Save stream failures. Deserialise wraps one of these, so callers can test
// the category with errors.Is and still show the detailed message.
var (
	ErrNotSaveFile = errors.New("data does not appear to be a saved game file")
	ErrTruncated   = errors.New("saved data ended unexpectedly")
	ErrBadFormat   = errors.New("data was incorrectly formatted for a saved game file")
	ErrVersion     = errors.New("cannot handle this version of the saved game file format")
	ErrWrongGame   = errors.New("save file is from a different game")
	ErrCorrupt     = errors.New("save file is inconsistent")
)

var (
	ErrNoGame         = errors.New("no game set up")
	ErrNoGameToSolve  = errors.New("no game set up to solve")
	ErrSolveFailed    = errors.New("solve operation failed")
	ErrUnknownConfig  = errors.New("unknown configuration kind")
	ErrNoConfigValues = errors.New("no configuration values supplied")
)

func corrupt(msg string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, msg, err)
	}
	return fmt.Errorf("%w: %s", ErrCorrupt, msg)
}
