package enquiry

import (
	"errors"
	"fmt"
)

var (
	ErrNoSelection      = errors.New("no job instance selected")
	ErrActionNotAllowed = errors.New("action not allowed for the selected job instance")
	ErrNotIdle          = errors.New("another confirmation is open")
	ErrNotPrompting     = errors.New("no confirmation is open")
)

// ValidationError reports a search field the operator has to fix. It never
// reaches the batch server.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q %s", e.Field, e.Value, e.Reason)
}

// ActionRejected wraps a failed rerun, force OK or cancel. The grid is left
// as it was.
type ActionRejected struct {
	Action Action
	ID     int64
	Err    error
}

func (e *ActionRejected) Error() string {
	return fmt.Sprintf("%s of job instance %d failed: %v", e.Action, e.ID, e.Err)
}

func (e *ActionRejected) Unwrap() error { return e.Err }
