package counter

import (
	"strings"
	"sync/atomic"

	"github.com/awgn/contatori/internal/shard"
)

// Unsigned is a sharded unsigned counter. Its aggregate is the sum of all
// shards and it reports as a gauge: unlike Monotone it supports Sub and a
// real reset, so exporters must not assume it only grows.
type Unsigned struct {
	name string
	pool *shard.Pool[atomic.Uint64]
}

// NewUnsigned creates an Unsigned counter at zero.
func NewUnsigned(opts ...Option) *Unsigned {
	cfg := ApplyOptions(opts...)
	return &Unsigned{
		name: cfg.Name,
		pool: shard.NewPool[atomic.Uint64](cfg.Shards, nil),
	}
}

// Add adds delta to the calling goroutine's shard. Lock-free; never
// blocks. Overflow of the cumulative sum wraps at 64 bits.
func (c *Unsigned) Add(delta uint64) {
	c.pool.Mine().Add(delta)
}

// Sub subtracts delta using wrapping arithmetic: subtracting more than the
// current total wraps the aggregate around, exactly as two's-complement
// addition would.
func (c *Unsigned) Sub(delta uint64) {
	c.pool.Mine().Add(^delta + 1)
}

// Name returns the display name set at construction.
func (c *Unsigned) Name() string { return c.name }

// Kind returns KindGauge.
func (c *Unsigned) Kind() Kind { return KindGauge }

// Value sums all shards. Non-destructive.
func (c *Unsigned) Value() Value {
	var total uint64
	c.pool.Range(func(cell *atomic.Uint64) {
		total += cell.Load()
	})
	return UnsignedValue(total)
}

// ValueAndReset swaps every shard to zero and returns the sum of the
// values swapped out. A concurrent Add lands either in the returned sum or
// in the next aggregate, never in both, never lost.
func (c *Unsigned) ValueAndReset() Value {
	var total uint64
	c.pool.Range(func(cell *atomic.Uint64) {
		total += cell.Swap(0)
	})
	return UnsignedValue(total)
}

// Expand returns a single unlabeled entry for this counter.
func (c *Unsigned) Expand() []Entry {
	return []Entry{{Observable: c}}
}

// String formats the counter as name:value, or just the value when
// unnamed.
func (c *Unsigned) String() string {
	var b strings.Builder
	if c.name != "" {
		b.WriteString(c.name)
		b.WriteByte(':')
	}
	b.WriteString(c.Value().String())
	return b.String()
}
