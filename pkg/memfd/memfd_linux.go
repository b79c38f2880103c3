package memfd

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

const createFlag = unix.MFD_CLOEXEC | unix.MFD_ALLOW_SEALING

// CloneSeals is the full seal set applied to cloned binaries. A memfd
// carrying exactly these seals cannot be written, grown, shrunk or resealed.
const CloneSeals = unix.F_SEAL_SEAL | unix.F_SEAL_SHRINK | unix.F_SEAL_GROW | unix.F_SEAL_WRITE

// maxSendfile bounds a single sendfile(2) transfer to the per-call ceiling
// accepted by the kernel. Larger sources are copied in multiple calls.
const maxSendfile = 1<<31 - 4096

// New creates a new sealable memfd, caller need to close the file
func New(name string) (*os.File, error) {
	fd, err := unix.MemfdCreate(name, createFlag)
	if err != nil {
		return nil, fmt.Errorf("memfd: memfd_create failed %v", err)
	}
	file := os.NewFile(uintptr(fd), name)
	if file == nil {
		unix.Close(fd)
		return nil, fmt.Errorf("memfd: NewFile failed for %v", name)
	}
	return file, nil
}

// Seal applies CloneSeals to the memfd in a single F_ADD_SEALS call.
// The file is never left partially sealed: the call either applies the
// whole set or changes nothing.
func Seal(file *os.File) error {
	if _, err := unix.FcntlInt(file.Fd(), unix.F_ADD_SEALS, CloneSeals); err != nil {
		return fmt.Errorf("memfd: seal failed %v", err)
	}
	return nil
}

// Seals reports the current seal set of fd. Files that do not support
// sealing (any ordinary disk file) fail with EINVAL.
func Seals(fd uintptr) (int, error) {
	return unix.FcntlInt(fd, unix.F_GET_SEALS, 0)
}

// Clone copies exactly size bytes from src into a fresh memfd and seals it.
// The copy runs in kernel space via sendfile, chunked below the per-call
// ceiling so the result is never truncated for any source size.
// The returned file is positioned at offset 0; caller need to close it.
func Clone(name string, src *os.File, size int64) (*os.File, error) {
	file, err := New(name)
	if err != nil {
		return nil, fmt.Errorf("Clone: %v", err)
	}
	if err := Copy(file, src, size); err != nil {
		file.Close()
		return nil, fmt.Errorf("Clone: copy %v", err)
	}
	if err := Seal(file); err != nil {
		file.Close()
		return nil, fmt.Errorf("Clone: %v", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("Clone: file seek %v", err)
	}
	return file, nil
}

// Copy transfers exactly size bytes from src to dst in kernel space.
// Each sendfile call stays below the per-call ceiling; the loop continues
// from the current offset after short transfers, so the destination is
// never silently truncated. Zero progress is an error.
func Copy(dst, src *os.File, size int64) error {
	for copied := int64(0); copied < size; {
		chunk := size - copied
		if chunk > maxSendfile {
			chunk = maxSendfile
		}
		n, err := unix.Sendfile(int(dst.Fd()), int(src.Fd()), nil, int(chunk))
		if err != nil {
			return fmt.Errorf("sendfile at %d/%d: %v", copied, size, err)
		}
		if n <= 0 {
			return fmt.Errorf("sendfile no progress at %d/%d", copied, size)
		}
		copied += int64(n)
	}
	return nil
}

// DupToMemfd reads content from reader to sealed (readonly) memfd for given name
func DupToMemfd(name string, reader io.Reader) (*os.File, error) {
	file, err := New(name)
	if err != nil {
		return nil, fmt.Errorf("DupToMemfd: %v", err)
	}
	// linux syscall sendfile might be more efficient here if reader is a file
	if _, err = file.ReadFrom(reader); err != nil {
		file.Close()
		return nil, fmt.Errorf("DupToMemfd: read from %v", err)
	}
	if err = Seal(file); err != nil {
		file.Close()
		return nil, fmt.Errorf("DupToMemfd: %v", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("DupToMemfd: file seek %v", err)
	}
	return file, nil
}
