package shard

import (
	_ "unsafe" // for go:linkname
)

// slot maps the calling goroutine to an index in [0, n). It uses the ID of
// the P the goroutine is currently running on: stable while the goroutine
// stays scheduled, uniformly distributed across active Ps, and readable
// without any lock or cross-goroutine coordination. Go offers no
// goroutine-local storage, so the per-P index plays the role a thread-local
// slot registry would; a goroutine migrating between Ps merely starts
// writing to another cell, which every fold over Range already tolerates.
func slot(n int) int {
	pid := runtime_procPin()
	runtime_procUnpin()
	return pid % n
}

//go:linkname runtime_procPin sync.runtime_procPin
//go:nosplit
func runtime_procPin() int

//go:linkname runtime_procUnpin sync.runtime_procUnpin
//go:nosplit
func runtime_procUnpin()
