package prometheus

import (
	"io"
	"net/http/httptest"
	"sort"
	"testing"

	promclient "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awgn/contatori/pkg/counter"
)

func gather(t *testing.T, sources ...counter.Expander) []*dto.MetricFamily {
	t.Helper()
	reg := promclient.NewPedanticRegistry()
	require.NoError(t, reg.Register(NewCollector(sources...)))
	families, err := reg.Gather()
	require.NoError(t, err)
	return families
}

func findFamily(families []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

func TestCollector(t *testing.T) {
	t.Run("kinds map to prometheus types", func(t *testing.T) {
		mono := counter.NewMonotone(counter.WithName("events_total"))
		mono.Add(5)
		gauge := counter.NewSigned(counter.WithName("inflight"))
		gauge.Add(3)

		families := gather(t, mono, gauge)
		require.Len(t, families, 2)

		events := findFamily(families, "events_total")
		require.NotNil(t, events)
		assert.Equal(t, dto.MetricType_COUNTER, events.GetType())
		assert.Equal(t, 5.0, events.GetMetric()[0].GetCounter().GetValue())

		inflight := findFamily(families, "inflight")
		require.NotNil(t, inflight)
		assert.Equal(t, dto.MetricType_GAUGE, inflight.GetType())
		assert.Equal(t, 3.0, inflight.GetMetric()[0].GetGauge().GetValue())
	})

	t.Run("float values survive", func(t *testing.T) {
		avg := counter.NewAverage(counter.WithName("latency_ms"))
		avg.Observe(100)
		avg.Observe(50)

		families := gather(t, avg)
		require.Len(t, families, 1)
		assert.Equal(t, 75.0, families[0].GetMetric()[0].GetGauge().GetValue())
	})

	t.Run("group entries become one family with padded labels", func(t *testing.T) {
		g := counter.NewGroup("http_requests_total", "method",
			func(name string) *counter.Unsigned {
				return counter.NewUnsigned(counter.WithName(name))
			},
			counter.Field{Name: "total"},
			counter.Field{Name: "get", Value: "GET"},
			counter.Field{Name: "post", Value: "POST"},
		)
		g.MustGet("get").Add(3)
		g.MustGet("post").Add(2)
		g.MustGet("total").Add(5)

		families := gather(t, g)
		require.Len(t, families, 1)

		family := findFamily(families, "http_requests_total")
		require.NotNil(t, family)
		require.Len(t, family.GetMetric(), 3)

		byMethod := make(map[string]float64)
		for _, m := range family.GetMetric() {
			require.Len(t, m.GetLabel(), 1)
			require.Equal(t, "method", m.GetLabel()[0].GetName())
			byMethod[m.GetLabel()[0].GetValue()] = m.GetGauge().GetValue()
		}
		assert.Equal(t, map[string]float64{"": 5, "GET": 3, "POST": 2}, byMethod)
	})

	t.Run("multiple labels are preserved", func(t *testing.T) {
		c := counter.NewLabeled(counter.NewUnsigned(counter.WithName("reqs"))).
			WithLabel("method", "GET").
			WithLabel("path", "/api")

		families := gather(t, c)
		require.Len(t, families, 1)
		labels := families[0].GetMetric()[0].GetLabel()
		require.Len(t, labels, 2)
		sort.Slice(labels, func(i, j int) bool { return labels[i].GetName() < labels[j].GetName() })
		assert.Equal(t, "method", labels[0].GetName())
		assert.Equal(t, "GET", labels[0].GetValue())
		assert.Equal(t, "path", labels[1].GetName())
		assert.Equal(t, "/api", labels[1].GetValue())
	})

	t.Run("unnamed counters are skipped", func(t *testing.T) {
		named := counter.NewUnsigned(counter.WithName("named"))
		families := gather(t, counter.NewUnsigned(), named)
		require.Len(t, families, 1)
		assert.Equal(t, "named", families[0].GetName())
	})

	t.Run("scrapes read live values", func(t *testing.T) {
		c := counter.NewUnsigned(counter.WithName("live"))
		reg := promclient.NewRegistry()
		require.NoError(t, reg.Register(NewCollector(c)))

		families, err := reg.Gather()
		require.NoError(t, err)
		assert.Equal(t, 0.0, families[0].GetMetric()[0].GetGauge().GetValue())

		c.Add(9)
		families, err = reg.Gather()
		require.NoError(t, err)
		assert.Equal(t, 9.0, families[0].GetMetric()[0].GetGauge().GetValue())
	})
}

func TestHandler(t *testing.T) {
	mono := counter.NewMonotone(counter.WithName("events_total"))
	mono.Add(7)

	srv := httptest.NewServer(Handler(mono))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), "# TYPE events_total counter")
	assert.Contains(t, string(body), "events_total 7")
}
