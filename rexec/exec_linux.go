package rexec

import (
	"os"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// execClone replaces the current process image with the sealed clone,
// re-entering it with the captured argument and environment vectors.
// On success it never returns; only the failure path does. args and env
// must be non-empty; the terminating NULL entries the kernel requires are
// appended when the pointer vectors are built.
func execClone(file *os.File, args, env []string) error {
	argv, err := syscall.SlicePtrFromStrings(args)
	if err != nil {
		return errors.Wrap(err, "prepare argv")
	}
	envp, err := syscall.SlicePtrFromStrings(env)
	if err != nil {
		return errors.Wrap(err, "prepare envp")
	}
	empty, err := syscall.BytePtrFromString("")
	if err != nil {
		return errors.Wrap(err, "prepare path")
	}
	// the descriptor must survive into the new image
	if _, err := unix.FcntlInt(file.Fd(), unix.F_SETFD, 0); err != nil {
		return errors.Wrap(err, "clear close-on-exec")
	}
	_, _, errno := syscall.Syscall6(unix.SYS_EXECVEAT, file.Fd(),
		uintptr(unsafe.Pointer(empty)), uintptr(unsafe.Pointer(&argv[0])),
		uintptr(unsafe.Pointer(&envp[0])), unix.AT_EMPTY_PATH, 0)
	return errors.Wrap(errno, "execveat")
}
