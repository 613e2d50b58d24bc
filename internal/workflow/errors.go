package workflow

import "fmt"

// InvalidTransitionError is returned for a status change not present in the
// transition table.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from '%s' to '%s'", e.From, e.To)
}

// ReferenceNotFoundError is returned when a mandatory parent record does not
// exist at child-creation time.
type ReferenceNotFoundError struct {
	Kind string
	ID   int
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Kind, e.ID)
}

// DuplicateOutcomeError is returned on an attempt to record a second outcome
// for an experiment that already has one.
type DuplicateOutcomeError struct {
	ExperimentID int
}

func (e *DuplicateOutcomeError) Error() string {
	return fmt.Sprintf("experiment %d already has an outcome", e.ExperimentID)
}

// ConflictError is returned when a version-gated update carries a stale
// version. The record is left untouched; the caller re-fetches and retries.
type ConflictError struct {
	ExpectedVersion int
	ActualVersion   int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict: submitted version %d, current version %d", e.ExpectedVersion, e.ActualVersion)
}
