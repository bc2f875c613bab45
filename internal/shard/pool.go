// Package shard implements the storage engine behind the counter kinds:
// a fixed array of cache-line-isolated cells plus the mapping from the
// calling goroutine to the cell it should write.
//
// Each cell is padded with cpu.CacheLinePad so that two cells never share
// a hardware cache line; concurrent writers on different cells therefore
// never invalidate each other's lines. Readers aggregate by visiting every
// cell, so writes stay cheap and reads pay the O(shards) cost.
package shard

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// DefaultCount is the number of cells a pool owns unless overridden.
// 64 keeps that many writers fully contention-free while a pool of
// uint64 cells stays around 4KiB.
const DefaultCount = 64

// minStride is the smallest acceptable distance between two cell payloads.
const minStride = 64

type cell[T any] struct {
	v T
	_ cpu.CacheLinePad
}

// Pool is a fixed array of padded cells of type T. T is expected to be an
// atomic payload (atomic.Uint64, a pair of atomics, ...); the pool itself
// never touches the payload beyond handing out pointers.
type Pool[T any] struct {
	cells []cell[T]
}

// NewPool returns a pool with n cells, or DefaultCount cells when n <= 0.
// init, when non-nil, runs once per cell before the pool is visible to any
// other goroutine; kinds with a non-zero identity element (extrema) use it
// to seed their sentinel.
//
// Construction is the only moment this package can fail, and it fails by
// panicking: a cell layout narrower than a cache line would silently
// reintroduce false sharing.
func NewPool[T any](n int, init func(*T)) *Pool[T] {
	if n <= 0 {
		n = DefaultCount
	}
	if unsafe.Sizeof(cell[T]{}) < minStride {
		panic("shard: cell stride below cache line size")
	}
	p := &Pool[T]{cells: make([]cell[T], n)}
	if init != nil {
		for i := range p.cells {
			init(&p.cells[i].v)
		}
	}
	return p
}

// Len reports the number of cells.
func (p *Pool[T]) Len() int {
	return len(p.cells)
}

// Mine returns the cell assigned to the calling goroutine. Different
// goroutines running on different Ps get different cells; collisions when
// runnable goroutines outnumber cells degrade to shared-cell contention,
// never to incorrectness.
func (p *Pool[T]) Mine() *T {
	return &p.cells[slot(len(p.cells))].v
}

// Range visits every cell exactly once, in index order. Folds over Range
// must be associative and commutative: updates land in whichever cell the
// writer owned at the time, so visitation order carries no meaning.
func (p *Pool[T]) Range(fn func(*T)) {
	for i := range p.cells {
		fn(&p.cells[i].v)
	}
}
