// Package counter provides thread-safe counters for highly concurrent
// workloads.
//
// A single shared atomic becomes a scalability bottleneck under many
// writers: every increment bounces the cache line between cores. The
// counters here shard their state across cache-line-isolated cells (64 by
// default); writers touch only the cell mapped to their scheduling slot,
// and readers aggregate all cells on demand. Writes are lock-free and
// complete in constant time regardless of how many goroutines are writing.
//
// Consistency is deliberately relaxed: each cell update is atomic, but a
// read may observe a mix of pre- and post-update cells relative to any
// single concurrent write. There is no global snapshot. What is guaranteed
// is accounting: a write racing a reset lands deterministically in either
// the value returned by the reset or the next aggregate, never in both and
// never in neither.
//
// Seven kinds cover the usual reductions — Monotone, Unsigned, Signed,
// Minimum, Maximum, Average and Rate — and three adapters (NonResettable,
// Resettable, Labeled) compose read and label behavior on top of any of
// them without touching storage.
package counter

// Observable is the read-only capability every counter and adapter
// exposes. External renderers and exporters consume counters exclusively
// through this surface; nothing outside this module reaches into shard
// storage.
type Observable interface {
	// Name returns the display name set at construction, or "".
	Name() string

	// Value returns the current aggregate. It never mutates the counter.
	// Reading visits every shard, so it is more expensive than a single
	// atomic load; the trade-off favors the write path.
	Value() Value

	// Kind reports how the counter should be classified by exporters.
	Kind() Kind

	// Expand flattens the counter into exportable entries. A plain
	// counter yields exactly one entry with no labels.
	Expand() []Entry
}

// Resetter is the destructive-read capability. ValueAndReset returns the
// aggregate of the shard states as they were immediately prior and clears
// every shard to the kind's identity element. Atomicity is per shard, not
// whole-array: an Add racing the reset is attributed to exactly one side
// of it.
//
// Plain reads never reset; callers wanting reset-on-read wrap a counter in
// the Resettable adapter instead of calling this directly.
type Resetter interface {
	ValueAndReset() Value
}

// Expander is the subset of Observable that groups also satisfy, letting
// exporters accept plain counters, adapters and groups uniformly.
type Expander interface {
	Expand() []Entry
}

// Label is one key/value pair attached to a counter for export.
type Label struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Entry is one exportable (observable, labels) pair produced by Expand.
// Labels is nil for unlabeled counters.
type Entry struct {
	Observable Observable
	Labels     []Label
}
