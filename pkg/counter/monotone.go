package counter

import (
	"sync/atomic"

	"github.com/awgn/contatori/internal/shard"
)

// Monotone is a sharded counter that only ever grows. It reports as a
// counter (not a gauge) and ignores resets: ValueAndReset returns the
// aggregate without clearing anything, so the monotonicity contract
// exporters rely on is never broken. Overflow wraps at 64 bits.
type Monotone struct {
	name string
	pool *shard.Pool[atomic.Uint64]
}

// NewMonotone creates a Monotone counter at zero.
func NewMonotone(opts ...Option) *Monotone {
	cfg := ApplyOptions(opts...)
	return &Monotone{
		name: cfg.Name,
		pool: shard.NewPool[atomic.Uint64](cfg.Shards, nil),
	}
}

// Add adds delta to the calling goroutine's shard.
func (c *Monotone) Add(delta uint64) {
	c.pool.Mine().Add(delta)
}

// Inc adds one.
func (c *Monotone) Inc() {
	c.Add(1)
}

// Name returns the display name set at construction.
func (c *Monotone) Name() string { return c.name }

// Kind returns KindCounter.
func (c *Monotone) Kind() Kind { return KindCounter }

// Value sums all shards.
func (c *Monotone) Value() Value {
	var total uint64
	c.pool.Range(func(cell *atomic.Uint64) {
		total += cell.Load()
	})
	return UnsignedValue(total)
}

// ValueAndReset returns the current aggregate and leaves all shards
// untouched. Reset is a no-op for monotone counters.
func (c *Monotone) ValueAndReset() Value {
	return c.Value()
}

// Expand returns a single unlabeled entry for this counter.
func (c *Monotone) Expand() []Entry {
	return []Entry{{Observable: c}}
}
