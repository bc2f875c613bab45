package counter

import (
	"sync/atomic"

	"github.com/awgn/contatori/internal/shard"
)

// meanCell keeps a shard's running sum and observation count in the same
// padded cell, so one counter costs one cache line per shard instead of
// two.
type meanCell struct {
	sum   atomic.Uint64
	count atomic.Uint64
}

// Average tracks the mean of observed values: each shard accumulates a
// (sum, count) pair and the merge divides total sum by total count.
// With zero observations Value reports 0, never a division fault.
type Average struct {
	name string
	pool *shard.Pool[meanCell]
}

// NewAverage creates an Average with all sums and counts at zero.
func NewAverage(opts ...Option) *Average {
	cfg := ApplyOptions(opts...)
	return &Average{
		name: cfg.Name,
		pool: shard.NewPool[meanCell](cfg.Shards, nil),
	}
}

// Observe records one sample.
func (c *Average) Observe(v uint64) {
	cell := c.pool.Mine()
	cell.sum.Add(v)
	cell.count.Add(1)
}

// ObserveMany records a pre-aggregated batch: sum over count samples.
func (c *Average) ObserveMany(sum, count uint64) {
	cell := c.pool.Mine()
	cell.sum.Add(sum)
	cell.count.Add(count)
}

// Sum returns the total of all observed samples.
func (c *Average) Sum() uint64 {
	var sum uint64
	c.pool.Range(func(cell *meanCell) {
		sum += cell.sum.Load()
	})
	return sum
}

// Count returns the number of observed samples.
func (c *Average) Count() uint64 {
	var count uint64
	c.pool.Range(func(cell *meanCell) {
		count += cell.count.Load()
	})
	return count
}

// Mean returns the average as a float, or 0 with no observations.
func (c *Average) Mean() float64 {
	sum, count := c.totals()
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// Name returns the display name set at construction.
func (c *Average) Name() string { return c.name }

// Kind returns KindGauge.
func (c *Average) Kind() Kind { return KindGauge }

// Value returns the integer average (total sum / total count, truncated),
// or 0 with no observations.
func (c *Average) Value() Value {
	sum, count := c.totals()
	if count == 0 {
		return UnsignedValue(0)
	}
	return UnsignedValue(sum / count)
}

// ValueAndReset returns the average as of just before the reset and clears
// every shard's sum and count. The sum and count of one shard are swapped
// as two separate atomic operations; a sample racing the reset may have
// its sum and count attributed to different generations, which evens out
// over any real collection interval.
func (c *Average) ValueAndReset() Value {
	var sum, count uint64
	c.pool.Range(func(cell *meanCell) {
		sum += cell.sum.Swap(0)
		count += cell.count.Swap(0)
	})
	if count == 0 {
		return UnsignedValue(0)
	}
	return UnsignedValue(sum / count)
}

// Expand returns a single unlabeled entry for this counter.
func (c *Average) Expand() []Entry {
	return []Entry{{Observable: c}}
}

func (c *Average) totals() (sum, count uint64) {
	c.pool.Range(func(cell *meanCell) {
		sum += cell.sum.Load()
		count += cell.count.Load()
	})
	return sum, count
}
