package counter

// NonResettable shields a counter from destructive reads: its
// ValueAndReset forwards to the inner Value and never clears storage.
// Everything else passes through unchanged. Useful when one collection
// pipeline resets counters wholesale but a few of them must keep their
// all-time totals.
type NonResettable struct {
	inner Observable
}

// NewNonResettable wraps inner. The wrapper holds inner for its whole
// lifetime.
func NewNonResettable(inner Observable) *NonResettable {
	return &NonResettable{inner: inner}
}

// Inner returns the wrapped counter.
func (n *NonResettable) Inner() Observable { return n.inner }

// Name forwards to the inner counter.
func (n *NonResettable) Name() string { return n.inner.Name() }

// Value forwards to the inner counter.
func (n *NonResettable) Value() Value { return n.inner.Value() }

// Kind forwards to the inner counter.
func (n *NonResettable) Kind() Kind { return n.inner.Kind() }

// ValueAndReset returns the inner value without resetting anything.
func (n *NonResettable) ValueAndReset() Value { return n.inner.Value() }

// Expand returns a single entry for the wrapper, so consumers that read
// through entries keep the non-resetting behavior.
func (n *NonResettable) Expand() []Entry {
	return []Entry{{Observable: n}}
}
