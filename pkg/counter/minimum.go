package counter

import (
	"math"
	"sync/atomic"

	"github.com/awgn/contatori/internal/shard"
)

// UnsetMinimum is the sentinel a Minimum reports when nothing has been
// observed. Shards holding this value contribute nothing to the merge.
const UnsetMinimum = uint64(math.MaxUint64)

// Minimum tracks the smallest value observed so far. Every shard starts at
// UnsetMinimum so the first observation always wins its shard.
type Minimum struct {
	name string
	pool *shard.Pool[atomic.Uint64]
}

// NewMinimum creates a Minimum with all shards unset.
func NewMinimum(opts ...Option) *Minimum {
	cfg := ApplyOptions(opts...)
	return &Minimum{
		name: cfg.Name,
		pool: shard.NewPool(cfg.Shards, func(cell *atomic.Uint64) {
			cell.Store(UnsetMinimum)
		}),
	}
}

// Observe records v if it is smaller than the calling goroutine's shard.
// The update is a CAS loop; a lost race means another writer installed an
// even smaller value, so the loop re-checks rather than retrying blindly.
func (c *Minimum) Observe(v uint64) {
	cell := c.pool.Mine()
	for {
		cur := cell.Load()
		if v >= cur {
			return
		}
		if cell.CompareAndSwap(cur, v) {
			return
		}
	}
}

// Name returns the display name set at construction.
func (c *Minimum) Name() string { return c.name }

// Kind returns KindGauge.
func (c *Minimum) Kind() Kind { return KindGauge }

// Value returns the minimum across shards that have observed at least one
// value, or UnsetMinimum when none have.
func (c *Minimum) Value() Value {
	min := UnsetMinimum
	c.pool.Range(func(cell *atomic.Uint64) {
		if v := cell.Load(); v < min {
			min = v
		}
	})
	return UnsignedValue(min)
}

// ValueAndReset returns the minimum as of just before the reset and clears
// every shard back to UnsetMinimum.
func (c *Minimum) ValueAndReset() Value {
	min := UnsetMinimum
	c.pool.Range(func(cell *atomic.Uint64) {
		if v := cell.Swap(UnsetMinimum); v < min {
			min = v
		}
	})
	return UnsignedValue(min)
}

// Expand returns a single unlabeled entry for this counter.
func (c *Minimum) Expand() []Entry {
	return []Entry{{Observable: c}}
}
