package counter

import (
	"sync/atomic"

	"github.com/awgn/contatori/internal/shard"
)

// UnsetMaximum is the sentinel a Maximum reports when nothing has been
// observed. A recorded observation of exactly 0 is indistinguishable from
// no observation; callers for whom that matters should offset their
// samples.
const UnsetMaximum = uint64(0)

// Maximum tracks the largest value observed so far.
type Maximum struct {
	name string
	pool *shard.Pool[atomic.Uint64]
}

// NewMaximum creates a Maximum with all shards unset.
func NewMaximum(opts ...Option) *Maximum {
	cfg := ApplyOptions(opts...)
	return &Maximum{
		name: cfg.Name,
		pool: shard.NewPool[atomic.Uint64](cfg.Shards, nil),
	}
}

// Observe records v if it is larger than the calling goroutine's shard.
func (c *Maximum) Observe(v uint64) {
	cell := c.pool.Mine()
	for {
		cur := cell.Load()
		if v <= cur {
			return
		}
		if cell.CompareAndSwap(cur, v) {
			return
		}
	}
}

// Name returns the display name set at construction.
func (c *Maximum) Name() string { return c.name }

// Kind returns KindGauge.
func (c *Maximum) Kind() Kind { return KindGauge }

// Value returns the maximum across all shards, or UnsetMaximum when
// nothing has been observed.
func (c *Maximum) Value() Value {
	max := UnsetMaximum
	c.pool.Range(func(cell *atomic.Uint64) {
		if v := cell.Load(); v > max {
			max = v
		}
	})
	return UnsignedValue(max)
}

// ValueAndReset returns the maximum as of just before the reset and clears
// every shard back to UnsetMaximum.
func (c *Maximum) ValueAndReset() Value {
	max := UnsetMaximum
	c.pool.Range(func(cell *atomic.Uint64) {
		if v := cell.Swap(UnsetMaximum); v > max {
			max = v
		}
	})
	return UnsignedValue(max)
}

// Expand returns a single unlabeled entry for this counter.
func (c *Maximum) Expand() []Entry {
	return []Entry{{Observable: c}}
}
