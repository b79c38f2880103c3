package rexec

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/criyle/go-rexec/pkg/memfd"
)

func TestDetect_OrdinaryBinary(t *testing.T) {
	// the test binary runs from disk, not from a sealed memfd
	state, err := Detect()
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if state != NotCloned {
		t.Errorf("Detect = %v, want %v", state, NotCloned)
	}
}

func TestDetectPath_SealedView(t *testing.T) {
	file, cerr := cloneSelf()
	if cerr != nil {
		t.Fatalf("cloneSelf error: %v", cerr)
	}
	defer file.Close()

	state, err := detectPath(fmt.Sprintf("/proc/self/fd/%d", file.Fd()))
	if err != nil {
		t.Fatalf("detectPath error: %v", err)
	}
	if state != AlreadyCloned {
		t.Errorf("detectPath on sealed clone = %v, want %v", state, AlreadyCloned)
	}
}

func TestDetectPath_PartialSeals(t *testing.T) {
	f, err := memfd.New("partial-seal")
	if err != nil {
		t.Fatalf("memfd.New error: %v", err)
	}
	defer f.Close()

	// an unsealed memfd must not count as our clone
	state, err := detectPath(fmt.Sprintf("/proc/self/fd/%d", f.Fd()))
	if err != nil {
		t.Fatalf("detectPath error: %v", err)
	}
	if state != NotCloned {
		t.Errorf("detectPath on unsealed memfd = %v, want %v", state, NotCloned)
	}
}

func TestDetectPath_Unopenable(t *testing.T) {
	state, err := detectPath(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("detectPath on missing path: expected error")
	}
	if state != Indeterminate {
		t.Errorf("detectPath on missing path = %v, want %v", state, Indeterminate)
	}
}

func TestCloneSelf_RoundTrip(t *testing.T) {
	want, err := os.ReadFile(selfExe)
	if err != nil {
		t.Fatalf("read running image: %v", err)
	}
	file, cerr := cloneSelf()
	if cerr != nil {
		t.Fatalf("cloneSelf error: %v", cerr)
	}
	defer file.Close()

	got, err := io.ReadAll(file)
	if err != nil {
		t.Fatalf("read clone: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("clone differs from source: %d bytes vs %d", len(got), len(want))
	}
	seals, err := memfd.Seals(file.Fd())
	if err != nil {
		t.Fatalf("Seals error: %v", err)
	}
	if seals != memfd.CloneSeals {
		t.Errorf("clone seals = %#x, want %#x", seals, memfd.CloneSeals)
	}
}

const reentryEnv = "REXEC_TEST_REENTRY"

// TestEnsure_Reentry runs the full guard in a child process. The first
// pass clones and re-executes the test binary out of the sealed memfd with
// identical argv and environment; the re-executed image reaches this test
// again, detects the sealed view and returns success without a second
// clone.
func TestEnsure_Reentry(t *testing.T) {
	if os.Getenv(reentryEnv) != "" {
		if err := Ensure(); err != nil {
			fmt.Printf("REENTRY_ERR %v\n", err)
			os.Exit(1)
		}
		state, err := Detect()
		fmt.Printf("REENTRY_OK %v %v\n", state, err)
		os.Exit(0)
	}

	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("executable: %v", err)
	}
	cmd := exec.Command(exe, "-test.run", "TestEnsure_Reentry$", "-test.v")
	cmd.Env = append(os.Environ(), reentryEnv+"=1")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("reentry child failed: %v\noutput: %s", err, out)
	}
	if !strings.Contains(string(out), "REENTRY_OK already cloned") {
		t.Errorf("reentry child output missing success marker:\n%s", out)
	}
}
