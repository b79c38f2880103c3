//go:build !linux

package procvec

import (
	"fmt"
	"runtime"
)

var errNotImplemented = fmt.Errorf("procvec: unsupported on platform %s", runtime.GOOS)

func Read(path string) ([]string, error) {
	return nil, errNotImplemented
}

func Snapshot() (args, env []string, err error) {
	return nil, nil, errNotImplemented
}
