package training

import "fmt"

// NotFoundError indicates a referenced user, module, company or progress
// record does not exist.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ValidationError indicates a malformed request the caller can fix.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ModuleLockedError indicates an action against a module the trainee has
// not unlocked yet. Completion actions are gated on it the same way
// module reads are.
type ModuleLockedError struct {
	ModuleID uint
}

func (e *ModuleLockedError) Error() string {
	return fmt.Sprintf("module %d is locked", e.ModuleID)
}

// NoQuestionsError indicates a quiz submission against a module that has
// no questions to grade.
type NoQuestionsError struct {
	ModuleID uint
}

func (e *NoQuestionsError) Error() string {
	return fmt.Sprintf("module %d has no quiz questions", e.ModuleID)
}

// ConflictError indicates a storage uniqueness violation, e.g. a duplicate
// enrollment or certificate insert losing a race.
type ConflictError struct {
	Resource string
	Reason   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Reason)
}
