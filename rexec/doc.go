// Package rexec guards a namespace-entry helper against exposing the host
// runtime binary through its own executable handle (CVE-2019-5736). Ensure
// verifies that the running image is a sealed, memory-backed clone of
// itself; if it is not, the process captures its original argument and
// environment vectors from the kernel, copies its executable into a sealed
// memfd and re-executes from that copy. A container that later reaches
// /proc/self/exe of the helper only ever sees the immutable clone, never
// the on-disk host binary.
package rexec
