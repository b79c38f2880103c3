package rexec

import (
	"github.com/criyle/go-rexec/pkg/procvec"
)

// Ensure guarantees the running image is a sealed in-memory clone of
// itself before the caller proceeds. It returns nil only in the already
// cloned case. In the needs-cloning case control passes to the re-executed
// image and the call never returns. Every returned error is a *Error and
// is fatal: the caller must abort, not continue.
func Ensure() error {
	state, err := Detect()
	switch state {
	case AlreadyCloned:
		return nil
	case NotCloned:
		// fall through to clone
	default:
		return &Error{StepDetect, err}
	}

	args, env, err := procvec.Snapshot()
	if err != nil {
		return &Error{StepSnapshot, err}
	}
	file, cerr := cloneSelf()
	if cerr != nil {
		return cerr
	}
	err = execClone(file, args, env)
	// reached only when the kernel refused the transition
	file.Close()
	return &Error{StepExec, err}
}
