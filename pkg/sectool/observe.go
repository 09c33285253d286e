package sectool

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/sectool/internal/domain"
)

// Operation labels.
const (
	opRun            = "run"
	opFilingSearch   = "filing_search"
	opFullTextSearch = "full_text_search"
)

// toolMetrics holds prometheus metrics registered for the SDK.
type toolMetrics struct {
	calls    *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newToolMetrics(reg prometheus.Registerer) (*toolMetrics, error) {
	m := &toolMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sectool",
			Subsystem: "sdk",
			Name:      "calls_total",
			Help:      "Tool calls by operation and status.",
		}, []string{"operation", "status"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sectool",
			Subsystem: "sdk",
			Name:      "failures_total",
			Help:      "Failed tool calls by operation and error kind.",
		}, []string{"operation", "kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sectool",
			Subsystem: "sdk",
			Name:      "call_duration_seconds",
			Help:      "Tool call duration in seconds, SEC API round trip included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.calls); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.failures); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one,
// so several Tools can share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("sectool: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("sectool: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer logs and counts tool calls. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *toolMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newToolMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// observe records one call. Query text is never logged.
func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
			o.metrics.failures.WithLabelValues(op, domain.KindOf(err).String()).Inc()
		}
		o.metrics.calls.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("sec_api call failed",
			"op", op,
			"kind", domain.KindOf(err).String(),
			"duration", dur,
			"error", err,
		)
		return
	}
	o.logger.Debug("sec_api call completed", "op", op, "duration", dur)
}
