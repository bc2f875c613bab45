package counter

// Labeled attaches ordered key/value labels to a counter for export. All
// numeric operations and the kind pass through unchanged; only the label
// surface is added. Labels keep first-seen key order; setting an existing
// key overwrites its value in place.
//
// Labeled is not safe for concurrent label mutation; attach labels at
// construction time, like the name.
type Labeled struct {
	inner  Observable
	labels []Label
}

// NewLabeled wraps inner with the given labels.
func NewLabeled(inner Observable, labels ...Label) *Labeled {
	l := &Labeled{inner: inner}
	for _, lb := range labels {
		l.WithLabel(lb.Key, lb.Value)
	}
	return l
}

// WithLabel sets key to value, overwriting an existing key without moving
// it, and returns the wrapper for chaining.
func (l *Labeled) WithLabel(key, value string) *Labeled {
	for i := range l.labels {
		if l.labels[i].Key == key {
			l.labels[i].Value = value
			return l
		}
	}
	l.labels = append(l.labels, Label{Key: key, Value: value})
	return l
}

// Labels returns the labels in first-seen key order. The slice is a copy.
func (l *Labeled) Labels() []Label {
	out := make([]Label, len(l.labels))
	copy(out, l.labels)
	return out
}

// GetLabel returns the last value written for key.
func (l *Labeled) GetLabel(key string) (string, bool) {
	for _, lb := range l.labels {
		if lb.Key == key {
			return lb.Value, true
		}
	}
	return "", false
}

// Inner returns the wrapped counter.
func (l *Labeled) Inner() Observable { return l.inner }

// Name forwards to the inner counter.
func (l *Labeled) Name() string { return l.inner.Name() }

// Value forwards to the inner counter.
func (l *Labeled) Value() Value { return l.inner.Value() }

// Kind forwards to the inner counter.
func (l *Labeled) Kind() Kind { return l.inner.Kind() }

// ValueAndReset forwards to the inner counter when it supports destructive
// reads, and falls back to the plain value otherwise.
func (l *Labeled) ValueAndReset() Value {
	if r, ok := l.inner.(Resetter); ok {
		return r.ValueAndReset()
	}
	return l.inner.Value()
}

// Expand returns a single entry carrying the wrapper and its labels.
func (l *Labeled) Expand() []Entry {
	return []Entry{{Observable: l, Labels: l.Labels()}}
}
