package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bigcalc"

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeMismatch = "mismatch"
)

// Recorder owns a private Prometheus registry holding the calculator's
// metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	cases      *prometheus.CounterVec
}

// NewRecorder creates a Recorder with all metrics registered, along with the
// Go runtime collector and a heap gauge fed by MemoryCollector.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Evaluated operations by name and outcome.",
		}, []string{"op", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Wall time spent evaluating an operation.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op"}),
		cases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selfcheck_cases_total",
			Help:      "Self-check cases by property and outcome.",
		}, []string{"property", "outcome"}),
	}

	mc := NewMemoryCollector()
	heap := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "heap_alloc_bytes",
		Help:      "Bytes of allocated heap objects.",
	}, func() float64 { return float64(mc.Snapshot().HeapAlloc) })

	r.registry.MustRegister(r.operations, r.durations, r.cases, heap, collectors.NewGoCollector())
	return r
}

// ObserveOperation records one evaluation of op.
func (r *Recorder) ObserveOperation(op string, d time.Duration, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	r.operations.WithLabelValues(op, outcome).Inc()
	r.durations.WithLabelValues(op).Observe(d.Seconds())
}

// ObserveCase records one self-check case for property.
func (r *Recorder) ObserveCase(property, outcome string) {
	if r == nil {
		return
	}
	r.cases.WithLabelValues(property, outcome).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes Handler on addr under /metrics until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
