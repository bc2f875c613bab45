// Package otel bridges counters to OpenTelemetry observable instruments.
// Values are pulled through a single metric callback at collection time,
// so counters keep their lock-free write path and the OpenTelemetry SDK
// sees a consistent pull-based source.
package otel

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/awgn/contatori/pkg/counter"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNoSources = errors.New("no sources")
	ErrNoEntries = errors.New("sources expanded to no named entries")
)

type observedEntry struct {
	observable counter.Observable
	instrument metric.Float64Observable
	attrs      metric.ObserveOption
}

// Observer holds the instruments and callback registration for a set of
// counter sources. Close unregisters the callback.
type Observer struct {
	registration metric.Registration
	entries      []observedEntry
}

// Register creates one observable instrument per expanded entry and a
// single callback observing them all. Cumulative counters become
// Float64ObservableCounter instruments, everything else
// Float64ObservableGauge; entry labels become attributes. Entries sharing
// a name share one instrument. Unnamed entries are skipped, since
// OpenTelemetry requires an instrument name.
func Register(meter metric.Meter, sources ...counter.Expander) (*Observer, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	obs := &Observer{}
	instruments := make(map[string]metric.Float64Observable)
	var observables []metric.Observable

	for _, src := range sources {
		for _, e := range src.Expand() {
			name := e.Observable.Name()
			if name == "" {
				continue
			}

			ins, ok := instruments[name]
			if !ok {
				var err error
				if e.Observable.Kind() == counter.KindCounter {
					ins, err = meter.Float64ObservableCounter(name)
				} else {
					ins, err = meter.Float64ObservableGauge(name)
				}
				if err != nil {
					return nil, fmt.Errorf("create observable instrument %s: %w", name, err)
				}
				instruments[name] = ins
				observables = append(observables, ins)
			}

			obs.entries = append(obs.entries, observedEntry{
				observable: e.Observable,
				instrument: ins,
				attrs:      metric.WithAttributeSet(toAttributes(e.Labels)),
			})
		}
	}

	if len(obs.entries) == 0 {
		return nil, ErrNoEntries
	}

	registration, err := meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		for _, e := range obs.entries {
			observer.ObserveFloat64(e.instrument, e.observable.Value().Float64(), e.attrs)
		}
		return nil
	}, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}

	obs.registration = registration
	return obs, nil
}

// Close unregisters the observation callback. The instruments stop
// reporting on the next collection.
func (o *Observer) Close() error {
	if o == nil || o.registration == nil {
		return nil
	}
	return o.registration.Unregister()
}

func toAttributes(labels []counter.Label) attribute.Set {
	if len(labels) == 0 {
		return *attribute.EmptySet()
	}
	kvs := make([]attribute.KeyValue, 0, len(labels))
	for _, l := range labels {
		kvs = append(kvs, attribute.String(l.Key, l.Value))
	}
	return attribute.NewSet(kvs...)
}
