// Package prometheus bridges counters to the Prometheus client library.
// The Collector reads counters through the Observable capability at
// scrape time, so no background copying or registration of individual
// series is needed.
package prometheus

import (
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/awgn/contatori/pkg/counter"
)

// Collector exposes a set of counter sources as a prometheus.Collector.
// Each expanded entry becomes one time series; the entry's labels become
// constant labels on that series. Unnamed counters are skipped, since
// Prometheus requires a metric name.
type Collector struct {
	sources []counter.Expander
}

var _ promclient.Collector = (*Collector)(nil)

// NewCollector builds a collector over the given sources. Sources may be
// plain counters, adapters or groups; they are read live on every scrape.
func NewCollector(sources ...counter.Expander) *Collector {
	return &Collector{sources: sources}
}

// Describe implements prometheus.Collector. Descriptors are derived from
// a live collection, which makes the collector unchecked in the rare case
// a source expands to nothing yet.
func (c *Collector) Describe(ch chan<- *promclient.Desc) {
	promclient.DescribeByCollect(c, ch)
}

// Collect implements prometheus.Collector. Entries sharing a metric name
// form one family; the registry requires every series in a family to carry
// the same label keys, so entries missing a key another sibling has (a
// group's unlabeled aggregate field, typically) are padded with an empty
// value for it.
func (c *Collector) Collect(ch chan<- promclient.Metric) {
	type series struct {
		name   string
		labels []counter.Label
		kind   counter.Kind
		value  float64
	}

	var all []series
	keysByName := make(map[string]map[string]struct{})
	for _, src := range c.sources {
		for _, e := range src.Expand() {
			name := e.Observable.Name()
			if name == "" {
				continue
			}
			all = append(all, series{
				name:   name,
				labels: e.Labels,
				kind:   e.Observable.Kind(),
				value:  e.Observable.Value().Float64(),
			})
			keys := keysByName[name]
			if keys == nil {
				keys = make(map[string]struct{})
				keysByName[name] = keys
			}
			for _, l := range e.Labels {
				keys[l.Key] = struct{}{}
			}
		}
	}

	for _, s := range all {
		valueType := promclient.GaugeValue
		if s.kind == counter.KindCounter {
			valueType = promclient.CounterValue
		}

		labels := toConstLabels(s.labels)
		for key := range keysByName[s.name] {
			if _, ok := labels[key]; !ok {
				if labels == nil {
					labels = promclient.Labels{}
				}
				labels[key] = ""
			}
		}

		desc := promclient.NewDesc(s.name, "", nil, labels)
		m, err := promclient.NewConstMetric(desc, valueType, s.value)
		if err != nil {
			ch <- promclient.NewInvalidMetric(desc, err)
			continue
		}
		ch <- m
	}
}

// Handler returns an http.Handler serving the sources in the Prometheus
// text exposition format on a dedicated registry.
func Handler(sources ...counter.Expander) http.Handler {
	reg := promclient.NewRegistry()
	reg.MustRegister(NewCollector(sources...))
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func toConstLabels(labels []counter.Label) promclient.Labels {
	if len(labels) == 0 {
		return nil
	}
	out := make(promclient.Labels, len(labels))
	for _, l := range labels {
		out[l.Key] = l.Value
	}
	return out
}
