//go:build !linux

package main

import (
	"fmt"
	"os"
	"runtime"
)

func main() {
	fmt.Fprintf(os.Stderr, "rexec: unsupported on platform %s\n", runtime.GOOS)
	os.Exit(1)
}
