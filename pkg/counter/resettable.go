package counter

// ResetObservable is what the Resettable adapter wraps: a counter that is
// both readable and destructively readable. All sharded kinds qualify.
type ResetObservable interface {
	Observable
	Resetter
}

// Resettable turns reads destructive: its Value forwards to the inner
// ValueAndReset, so every read reports the activity since the previous
// read and clears the counter. This adapter is the only sanctioned path to
// reset-on-read; plain counters never reset on Value.
type Resettable struct {
	inner ResetObservable
}

// NewResettable wraps inner. The wrapper holds inner for its whole
// lifetime.
func NewResettable(inner ResetObservable) *Resettable {
	return &Resettable{inner: inner}
}

// Inner returns the wrapped counter.
func (r *Resettable) Inner() ResetObservable { return r.inner }

// Name forwards to the inner counter.
func (r *Resettable) Name() string { return r.inner.Name() }

// Value returns the inner aggregate and resets it. Two consecutive calls
// without intervening writes return the value and then the identity.
func (r *Resettable) Value() Value { return r.inner.ValueAndReset() }

// ValueAndReset behaves exactly like Value.
func (r *Resettable) ValueAndReset() Value { return r.inner.ValueAndReset() }

// Kind forwards to the inner counter.
func (r *Resettable) Kind() Kind { return r.inner.Kind() }

// Expand returns a single entry for the wrapper, so consumers that read
// through entries get the reset-on-read behavior.
func (r *Resettable) Expand() []Entry {
	return []Entry{{Observable: r}}
}
