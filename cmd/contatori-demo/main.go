// Command contatori-demo simulates HTTP traffic against a set of sharded
// counters and reports them three ways: a periodic table on stdout, a
// structured log snapshot, and a Prometheus /metrics endpoint.
package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/awgn/contatori/pkg/counter"
	promexport "github.com/awgn/contatori/pkg/export/prometheus"
	"github.com/awgn/contatori/pkg/render"
	"github.com/awgn/contatori/pkg/snapshot"
)

const (
	metricsAddr    = ":9090"
	reportInterval = 2 * time.Second
	writers        = 8
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	requests := counter.NewGroup("http_requests_total", "method",
		func(name string) *counter.Monotone {
			return counter.NewMonotone(counter.WithName(name))
		},
		counter.Field{Name: "total"},
		counter.Field{Name: "get", Value: "GET"},
		counter.Field{Name: "post", Value: "POST"},
		counter.Field{Name: "delete", Value: "DELETE"},
	)
	latency := counter.NewAverage(counter.WithName("request_latency_ms"))
	peak := counter.NewMaximum(counter.WithName("peak_latency_ms"))
	throughput := counter.NewRate(counter.WithName("requests_per_second"))

	sources := []counter.Expander{requests, latency, peak, throughput}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("shutting down")
		cancel()
	}()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promexport.Handler(sources...))
	srv := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		log.Info("metrics endpoint running", zap.String("addr", metricsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("metrics server failed", zap.Error(err))
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			simulateTraffic(ctx, seed, requests, latency, peak, throughput)
		}(int64(i))
	}

	table := render.NewTable(render.WithTitle("-- traffic --"))
	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			if err := table.Render(os.Stdout, sources...); err != nil {
				log.Error("render failed", zap.Error(err))
			}
			snap := snapshot.Collect(sources...)
			fields := []zap.Field{
				zap.Int64("timestamp_ms", snap.TimestampMS),
				zap.Int("counters", snap.Len()),
			}
			if rps, ok := snap.Get("requests_per_second"); ok {
				fields = append(fields, zap.Float64("rps", rps.Value.Float64()))
			}
			log.Info("snapshot", fields...)
		}
	}

	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("metrics server shutdown failed", zap.Error(err))
	}

	final := snapshot.CollectAndReset(sources...)
	if out, err := final.JSON(); err == nil {
		log.Info("final snapshot", zap.ByteString("metrics", out))
	}
	log.Info("stopped")
}

func simulateTraffic(
	ctx context.Context,
	seed int64,
	requests *counter.Group[*counter.Monotone],
	latency *counter.Average,
	peak *counter.Maximum,
	throughput *counter.Rate,
) {
	rng := rand.New(rand.NewSource(seed))
	methods := []string{"get", "post", "delete"}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		requests.MustGet("total").Inc()
		requests.MustGet(methods[rng.Intn(len(methods))]).Inc()

		ms := uint64(5 + rng.Intn(195))
		latency.Observe(ms)
		peak.Observe(ms)
		throughput.Add(1)

		time.Sleep(time.Duration(1+rng.Intn(5)) * time.Millisecond)
	}
}
