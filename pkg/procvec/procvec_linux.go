package procvec

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const (
	cmdlinePath = "/proc/self/cmdline"
	environPath = "/proc/self/environ"

	readChunk = 4096
	// transient read errors are retried at most this many times rather
	// than forever
	maxReadRetry = 50
)

// Read loads the full contents of a procfs pseudo-file and splits it into
// NUL-delimited fields. A record with zero fields fails with ErrEmpty.
func Read(path string) ([]string, error) {
	buf, err := readAll(path)
	if err != nil {
		return nil, err
	}
	fields := Split(buf)
	if len(fields) == 0 {
		return nil, fmt.Errorf("procvec: %s: %w", path, ErrEmpty)
	}
	vec := make([]string, len(fields))
	for i, f := range fields {
		vec[i] = string(f)
	}
	return vec, nil
}

// Snapshot reconstructs the current process's original invocation from the
// kernel's view. It is all-or-nothing: any failure on either record means
// no snapshot.
func Snapshot() (args, env []string, err error) {
	if args, err = Read(cmdlinePath); err != nil {
		return nil, nil, err
	}
	if env, err = Read(environPath); err != nil {
		return nil, nil, err
	}
	return args, env, nil
}

// readAll reads path in fixed-size chunks until EOF. procfs files report
// no size, so growth is append-driven.
func readAll(path string) ([]byte, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("procvec: open %s: %v", path, err)
	}
	defer unix.Close(fd)

	var buf []byte
	chunk := make([]byte, readChunk)
	retry := 0
	for {
		n, err := unix.Read(fd, chunk)
		switch err {
		case unix.EINTR, unix.EAGAIN:
			retry++
			if retry > maxReadRetry {
				return nil, fmt.Errorf("procvec: read %s: retry limit after %v", path, err)
			}
			continue
		case nil:
		default:
			return nil, fmt.Errorf("procvec: read %s: %v", path, err)
		}
		if n == 0 {
			return buf, nil
		}
		buf = append(buf, chunk[:n]...)
	}
}
