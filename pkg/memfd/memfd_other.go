//go:build !linux

package memfd

import (
	"fmt"
	"io"
	"os"
	"runtime"
)

// CloneSeals is defined for linux only; zero here keeps callers compiling.
const CloneSeals = 0

var errNotImplemented = fmt.Errorf("memfd: unsupported on platform %s", runtime.GOOS)

func New(name string) (*os.File, error) {
	return nil, errNotImplemented
}

func Seal(file *os.File) error {
	return errNotImplemented
}

func Seals(fd uintptr) (int, error) {
	return 0, errNotImplemented
}

func Clone(name string, src *os.File, size int64) (*os.File, error) {
	return nil, errNotImplemented
}

func Copy(dst, src *os.File, size int64) error {
	return errNotImplemented
}

func DupToMemfd(name string, reader io.Reader) (*os.File, error) {
	return nil, errNotImplemented
}
