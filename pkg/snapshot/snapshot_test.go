package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awgn/contatori/pkg/counter"
)

func TestFrom(t *testing.T) {
	t.Run("captures without disturbing", func(t *testing.T) {
		c := counter.NewUnsigned(counter.WithName("requests"))
		c.Add(42)

		snap := From(c)
		assert.Equal(t, "requests", snap.Name)
		assert.Equal(t, uint64(42), snap.Value.Uint64())
		assert.Equal(t, uint64(42), c.Value().Uint64())
	})

	t.Run("and reset clears the source", func(t *testing.T) {
		c := counter.NewUnsigned(counter.WithName("requests"))
		c.Add(42)

		snap := FromAndReset(c)
		assert.Equal(t, uint64(42), snap.Value.Uint64())
		assert.Equal(t, uint64(0), c.Value().Uint64())
	})
}

func TestCollect(t *testing.T) {
	t.Run("expands groups and plain counters", func(t *testing.T) {
		reqs := counter.NewGroup("http_requests_total", "method",
			func(name string) *counter.Unsigned {
				return counter.NewUnsigned(counter.WithName(name))
			},
			counter.Field{Name: "total"},
			counter.Field{Name: "get", Value: "GET"},
		)
		reqs.MustGet("get").Add(3)

		errs := counter.NewMonotone(counter.WithName("errors_total"))
		errs.Inc()

		m := Collect(reqs, errs)
		require.Equal(t, 3, m.Len())
		assert.NotZero(t, m.TimestampMS)

		get := m.Counters[1]
		assert.Equal(t, "http_requests_total", get.Name)
		assert.Equal(t, []counter.Label{{Key: "method", Value: "GET"}}, get.Labels)
		assert.Equal(t, uint64(3), get.Value.Uint64())

		e, ok := m.Get("errors_total")
		require.True(t, ok)
		assert.Equal(t, uint64(1), e.Value.Uint64())
	})

	t.Run("missing name", func(t *testing.T) {
		m := Collect(counter.NewUnsigned(counter.WithName("a")))
		_, ok := m.Get("b")
		assert.False(t, ok)
	})

	t.Run("and reset clears resettable sources only", func(t *testing.T) {
		gauge := counter.NewUnsigned(counter.WithName("inflight"))
		gauge.Add(10)
		mono := counter.NewMonotone(counter.WithName("events_total"))
		mono.Add(5)
		pinned := counter.NewNonResettable(counter.NewUnsigned(counter.WithName("lifetime")))
		pinned.Inner().(*counter.Unsigned).Add(7)

		m := CollectAndReset(gauge, mono, pinned)
		require.Equal(t, 3, m.Len())
		assert.Equal(t, uint64(10), m.Counters[0].Value.Uint64())
		assert.Equal(t, uint64(0), gauge.Value().Uint64())
		// monotone counters ignore resets
		assert.Equal(t, uint64(5), mono.Value().Uint64())
		// the non-resettable wrapper shields its inner counter
		assert.Equal(t, uint64(7), m.Counters[2].Value.Uint64())
		assert.Equal(t, uint64(7), pinned.Value().Uint64())
	})
}

func TestJSON(t *testing.T) {
	t.Run("unlabeled counter shape", func(t *testing.T) {
		b, err := json.Marshal(Counter{Name: "requests", Value: counter.UnsignedValue(42)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"requests","value":42}`, string(b))
	})

	t.Run("round trip", func(t *testing.T) {
		m := New(
			Counter{Name: "requests", Value: counter.UnsignedValue(42)},
			Counter{
				Name:   "http_requests_total",
				Labels: []counter.Label{{Key: "method", Value: "GET"}},
				Value:  counter.UnsignedValue(3),
			},
		)
		b, err := m.JSON()
		require.NoError(t, err)

		var got Metrics
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, m, got)
	})
}
