package core

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskCompleted is returned when a transition would move a task out of
	// the terminal completed state.
	ErrTaskCompleted = errors.New("task is completed")

	// ErrStoreClosed is returned by operations on a store after Close.
	ErrStoreClosed = errors.New("task store is closed")

	// ErrInvalidEdit wraps a payload returned by the editor that could not be
	// parsed or validated. The task keeps its previous value.
	ErrInvalidEdit = errors.New("invalid edited task")

	// ErrNoEditor is returned by Edit and EditDetails when the store was
	// opened without an editor.
	ErrNoEditor = errors.New("no editor configured")

	// ErrInvalidPriority is returned for priorities outside MinPriority..MaxPriority.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrDuplicateID is returned by OpenTaskStore when the file holds two
	// tasks with the same id.
	ErrDuplicateID = errors.New("duplicate task id")

	// ErrEmptySummary is returned by Add when the summary is blank.
	ErrEmptySummary = errors.New("task summary is required")
)

// AmbiguousReferenceError reports a task id prefix that does not resolve to
// exactly one task. No mutation happens when it is returned.
type AmbiguousReferenceError struct {
	Prefix   string
	Matches  int
	TooShort bool
	MinLen   int
}

func (e *AmbiguousReferenceError) Error() string {
	if e.TooShort {
		return fmt.Sprintf("id '%s' is shorter than the minimum of %d characters, it matches %d", e.Prefix, e.MinLen, e.Matches)
	}
	return fmt.Sprintf("id '%s' does not uniquely match one task, it matches %d", e.Prefix, e.Matches)
}

// IsAmbiguous reports whether err is, or wraps, an AmbiguousReferenceError.
func IsAmbiguous(err error) bool {
	var ae *AmbiguousReferenceError
	return errors.As(err, &ae)
}

// DurationError reports a duration string that could not be parsed.
type DurationError struct {
	Input  string
	Reason string
}

func (e *DurationError) Error() string {
	return e.Reason
}
