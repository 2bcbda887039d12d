// Package workflow owns the advising session state and sequences calls to
// the advisory service: ingest, recommend, scholarships, summaries.
package workflow

import "fmt"

// ValidationError represents a local precondition failure detected before
// any network call. Never retried automatically.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// BusyError represents an operation rejected because another exclusive
// operation holds the busy lock. No network request was issued.
type BusyError struct {
	Held      BusyLock
	Requested BusyLock
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("cannot start %s: %s is already in progress", e.Requested, e.Held)
}

// SupersededError represents a call whose result was discarded because a
// newer call of the same kind started before it could commit.
type SupersededError struct {
	Op string
}

func (e *SupersededError) Error() string {
	return fmt.Sprintf("%s superseded by a newer call", e.Op)
}
