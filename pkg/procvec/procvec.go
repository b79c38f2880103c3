// Package procvec reconstructs a process's original argument and
// environment vectors from the kernel's NUL-delimited procfs records.
package procvec

import "errors"

// ErrEmpty indicates a record split into zero fields. A live process never
// has an empty command line or environment, so an empty record means the
// kernel view was raced or corrupted and must not be trusted.
var ErrEmpty = errors.New("procvec: empty record")

// Split walks buf and slices out consecutive NUL-terminated fields in
// place, without copying field bytes. A trailing NUL closes the last
// field; a tail without one still yields a final field.
func Split(buf []byte) [][]byte {
	var fields [][]byte
	for len(buf) > 0 {
		i := 0
		for i < len(buf) && buf[i] != 0 {
			i++
		}
		fields = append(fields, buf[:i])
		if i < len(buf) {
			i++ // skip the terminating NUL
		}
		buf = buf[i:]
	}
	return fields
}
