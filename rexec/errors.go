package rexec

import "fmt"

// Step identifies the guard operation that failed
type Step int

// Step constants
const (
	StepDetect Step = iota + 1
	StepSnapshot
	StepCreate
	StepSource
	StepCopy
	StepSeal
	StepExec
)

var stepToString = []string{
	"unknown",
	"detect",
	"snapshot",
	"memfd_create",
	"open_source",
	"copy",
	"seal",
	"execveat",
}

func (s Step) String() string {
	if s >= StepDetect && s <= StepExec {
		return stepToString[s]
	}
	return "unknown"
}

// Error is a fatal guard failure at a specific step. There is no recovery
// path: the caller must abort its whole entry sequence, since continuing
// without the clone guarantee reopens the hole the guard closes.
type Error struct {
	Step Step
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("rexec: %s: %s", e.Step.String(), e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}
