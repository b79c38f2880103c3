//go:build !linux

package rexec

import (
	"fmt"
	"runtime"
)

var errNotImplemented = fmt.Errorf("rexec: unsupported on platform %s", runtime.GOOS)

// Detect is linux only.
func Detect() (CloneState, error) {
	return Indeterminate, errNotImplemented
}

// Ensure is linux only.
func Ensure() error {
	return &Error{StepDetect, errNotImplemented}
}
