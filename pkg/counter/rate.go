package counter

import (
	"sync/atomic"
	"time"

	"github.com/awgn/contatori/internal/shard"
)

// Rate tracks how fast a cumulative count grows. Writers Add deltas into
// sharded storage; Rate divides the growth since the previous Rate call by
// the wall-clock seconds elapsed since it. The first call returns 0 and
// records the baseline. Calling Rate resets only the measurement window,
// never the cumulative total.
type Rate struct {
	name string
	pool *shard.Pool[atomic.Uint64]

	lastTotal atomic.Uint64
	// lastNano is the wall-clock nanosecond timestamp of the previous
	// Rate call; 0 means never sampled.
	lastNano atomic.Int64
}

// NewRate creates a Rate counter at zero with no baseline.
func NewRate(opts ...Option) *Rate {
	cfg := ApplyOptions(opts...)
	return &Rate{
		name: cfg.Name,
		pool: shard.NewPool[atomic.Uint64](cfg.Shards, nil),
	}
}

// Add adds delta to the calling goroutine's shard.
func (c *Rate) Add(delta uint64) {
	c.pool.Mine().Add(delta)
}

// Total returns the cumulative count, independent of any rate window.
func (c *Rate) Total() uint64 {
	var total uint64
	c.pool.Range(func(cell *atomic.Uint64) {
		total += cell.Load()
	})
	return total
}

// Rate returns the observed growth per second since the previous call and
// starts a new window. Zero or negative elapsed time (rapid repeated
// calls, clock skew) yields 0, never a division by zero or an infinity.
func (c *Rate) Rate() float64 {
	now := time.Now().UnixNano()
	total := c.Total()

	last := c.lastNano.Swap(now)
	prev := c.lastTotal.Swap(total)
	if last == 0 {
		return 0
	}

	elapsed := float64(now-last) / float64(time.Second)
	if elapsed <= 0 {
		return 0
	}
	if total < prev {
		// 64-bit wraparound of the cumulative sum; saturate.
		return 0
	}
	return float64(total-prev) / elapsed
}

// Name returns the display name set at construction.
func (c *Rate) Name() string { return c.name }

// Kind returns KindGauge: rates rise and fall.
func (c *Rate) Kind() Kind { return KindGauge }

// Value returns the current rate. Unlike the pure-aggregate kinds this
// advances the measurement window: two back-to-back reads report the rate
// of two back-to-back windows.
func (c *Rate) Value() Value {
	return FloatValue(c.Rate())
}

// ValueAndReset is identical to Value: the window is the only state a
// rate read consumes, and the cumulative total is never cleared.
func (c *Rate) ValueAndReset() Value {
	return FloatValue(c.Rate())
}

// Expand returns a single unlabeled entry for this counter.
func (c *Rate) Expand() []Entry {
	return []Entry{{Observable: c}}
}
