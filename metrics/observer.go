// Package metrics counts and times stacklog scopes with Prometheus.
//
// An Observer attaches ENTER and EXIT callbacks to a Logger; it does not
// change what the Logger prints.
//
//	obs, err := metrics.NewObserver(prometheus.DefaultRegisterer, "myapp")
//	l := stacklog.New(sink, "Syncing")
//	obs.Attach(l)
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/stacklog"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Observer records one count and one duration per scope, labeled by the
// Logger's message and the outcome.
type Observer struct {
	scopes   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	clock    clockz.Clock
}

// NewObserver creates an Observer and registers its collectors with reg.
func NewObserver(reg prometheus.Registerer, namespace string) (*Observer, error) {
	o := &Observer{
		scopes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "stacklog",
				Name:      "scopes_total",
				Help:      "Total number of completed scopes",
			},
			[]string{"scope", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "stacklog",
				Name:      "scope_duration_seconds",
				Help:      "Duration of completed scopes",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"scope", "outcome"},
		),
		clock: clockz.RealClock,
	}

	if err := reg.Register(o.scopes); err != nil {
		return nil, fmt.Errorf("registering scopes counter: %w", err)
	}
	if err := reg.Register(o.duration); err != nil {
		return nil, fmt.Errorf("registering duration histogram: %w", err)
	}

	return o, nil
}

// WithClock sets the clock used to time scopes.
func (o *Observer) WithClock(clock clockz.Clock) *Observer {
	o.clock = clock
	return o
}

// Attach starts observing every scope of l.
// The start time is kept per Logger, so one Observer can serve many Loggers.
func (o *Observer) Attach(l *stacklog.Logger) {
	var start time.Time

	l.OnEnter(func(*stacklog.Logger) {
		start = o.clock.Now()
	})
	l.OnExit(func(l *stacklog.Logger) {
		if start.IsZero() {
			return
		}
		outcome := OutcomeSuccess
		if l.Err() != nil {
			outcome = OutcomeFailure
		}
		o.scopes.WithLabelValues(l.Message(), outcome).Inc()
		o.duration.WithLabelValues(l.Message(), outcome).Observe(o.clock.Since(start).Seconds())
		start = time.Time{}
	})
}
