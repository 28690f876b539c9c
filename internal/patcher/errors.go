package patcher

import (
	"errors"
	"fmt"
)

// Phase names the step of a patch run that failed.
type Phase string

const (
	PhaseValidate Phase = "validate"
	PhaseRead     Phase = "read"
	PhaseVerify   Phase = "verify"
	PhaseWrite    Phase = "write"
)

// IOError is a failure to open, read, stage or commit the target file.
// The target is left as it was before the run.
type IOError struct {
	Phase Phase
	Path  string
	Err   error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Phase, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ErrMismatch is matched by every MismatchError via errors.Is.
var ErrMismatch = errors.New("range does not hold the expected lines")

// MismatchError reports the first line of the range that differs from the
// expected anchor. Line is 1-based. Terminators are not compared.
type MismatchError struct {
	Line int
	Want string
	Got  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("line %d: expected %q, found %q", e.Line, e.Want, e.Got)
}

func (e *MismatchError) Is(target error) bool { return target == ErrMismatch }

// ErrDeclined is returned when interactive confirmation was refused.
var ErrDeclined = errors.New("patch declined")
