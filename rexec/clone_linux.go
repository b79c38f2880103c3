package rexec

import (
	"os"

	"github.com/criyle/go-rexec/pkg/memfd"
	"github.com/pkg/errors"
)

// cloneSelf copies the running executable into a fresh sealed memfd.
// Sealing is the last step; every failure closes the memfd so no unsealed
// descriptor survives. The source handle is closed right after the copy
// regardless of outcome.
func cloneSelf() (*os.File, *Error) {
	file, err := memfd.New(cloneName)
	if err != nil {
		return nil, &Error{StepCreate, err}
	}
	src, err := os.Open(selfExe)
	if err != nil {
		file.Close()
		return nil, &Error{StepSource, errors.Wrap(err, "open running image")}
	}
	fi, err := src.Stat()
	if err != nil {
		src.Close()
		file.Close()
		return nil, &Error{StepSource, errors.Wrap(err, "stat running image")}
	}
	err = memfd.Copy(file, src, fi.Size())
	src.Close()
	if err != nil {
		file.Close()
		return nil, &Error{StepCopy, err}
	}
	if err := memfd.Seal(file); err != nil {
		file.Close()
		return nil, &Error{StepSeal, err}
	}
	return file, nil
}
