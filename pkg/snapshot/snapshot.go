// Package snapshot captures point-in-time counter values in a
// serializable form, decoupled from the live shard storage. A snapshot is
// plain data: it can be logged, diffed, shipped over the wire or handed to
// systems that know nothing about counters.
package snapshot

import (
	"encoding/json"
	"time"

	"github.com/awgn/contatori/pkg/counter"
)

// Counter is a single captured value. Labels is omitted from JSON when
// empty, so an unlabeled counter marshals as {"name":...,"value":...}.
type Counter struct {
	Name   string          `json:"name"`
	Labels []counter.Label `json:"labels,omitempty"`
	Value  counter.Value   `json:"value"`
}

// Metrics is a timestamped set of captured counters.
type Metrics struct {
	TimestampMS int64     `json:"timestamp_ms"`
	Counters    []Counter `json:"counters"`
}

// New builds a snapshot from pre-captured counters, stamped with the
// current wall clock.
func New(counters ...Counter) Metrics {
	return Metrics{TimestampMS: time.Now().UnixMilli(), Counters: counters}
}

// From captures a single observable without disturbing it.
func From(src counter.Observable) Counter {
	return Counter{Name: src.Name(), Value: src.Value()}
}

// FromAndReset captures a single observable and clears it in the same
// pass. The per-shard attribution guarantee of ValueAndReset carries over:
// a concurrent write lands either in the returned capture or in the next
// one, never in both.
func FromAndReset(src counter.ResetObservable) Counter {
	return Counter{Name: src.Name(), Value: src.ValueAndReset()}
}

// Collect expands every source and captures the resulting entries,
// stamped with the current wall clock. Sources may be plain counters,
// adapters or groups.
func Collect(sources ...counter.Expander) Metrics {
	return collect(false, sources)
}

// CollectAndReset is Collect with a destructive read: entries whose
// observable supports resetting are cleared as they are captured, the
// rest are read normally.
func CollectAndReset(sources ...counter.Expander) Metrics {
	return collect(true, sources)
}

func collect(reset bool, sources []counter.Expander) Metrics {
	m := Metrics{TimestampMS: time.Now().UnixMilli()}
	for _, src := range sources {
		for _, e := range src.Expand() {
			c := Counter{Name: e.Observable.Name(), Labels: e.Labels}
			if r, ok := e.Observable.(counter.Resetter); ok && reset {
				c.Value = r.ValueAndReset()
			} else {
				c.Value = e.Observable.Value()
			}
			m.Counters = append(m.Counters, c)
		}
	}
	return m
}

// Get returns the first captured counter with the given name.
func (m Metrics) Get(name string) (Counter, bool) {
	for _, c := range m.Counters {
		if c.Name == name {
			return c, true
		}
	}
	return Counter{}, false
}

// Len returns the number of captured counters.
func (m Metrics) Len() int { return len(m.Counters) }

// JSON returns the snapshot as a single JSON document.
func (m Metrics) JSON() ([]byte, error) {
	return json.Marshal(m)
}
