package counter

import (
	"sync/atomic"

	"github.com/awgn/contatori/internal/shard"
)

// Signed is a sharded signed counter: a gauge that can go below zero.
// Its aggregate is the sum of all shards.
type Signed struct {
	name string
	pool *shard.Pool[atomic.Int64]
}

// NewSigned creates a Signed counter at zero.
func NewSigned(opts ...Option) *Signed {
	cfg := ApplyOptions(opts...)
	return &Signed{
		name: cfg.Name,
		pool: shard.NewPool[atomic.Int64](cfg.Shards, nil),
	}
}

// Add adds delta (which may be negative) to the calling goroutine's shard.
func (c *Signed) Add(delta int64) {
	c.pool.Mine().Add(delta)
}

// Sub subtracts delta.
func (c *Signed) Sub(delta int64) {
	c.pool.Mine().Add(-delta)
}

// Name returns the display name set at construction.
func (c *Signed) Name() string { return c.name }

// Kind returns KindGauge.
func (c *Signed) Kind() Kind { return KindGauge }

// Value sums all shards. Non-destructive.
func (c *Signed) Value() Value {
	var total int64
	c.pool.Range(func(cell *atomic.Int64) {
		total += cell.Load()
	})
	return SignedValue(total)
}

// ValueAndReset swaps every shard to zero and returns the sum of the
// values swapped out.
func (c *Signed) ValueAndReset() Value {
	var total int64
	c.pool.Range(func(cell *atomic.Int64) {
		total += cell.Swap(0)
	})
	return SignedValue(total)
}

// Expand returns a single unlabeled entry for this counter.
func (c *Signed) Expand() []Entry {
	return []Entry{{Observable: c}}
}
