// Package metrics records directive results for the node_exporter textfile
// collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/cloudconfig"
)

const namespace = "bsd_cloudinit"

// Recorder holds the metrics of one run on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	directivesTotal   *prometheus.CounterVec
	directiveDuration *prometheus.HistogramVec
	lastRun           prometheus.Gauge
	lastRunFailed     prometheus.Gauge
}

var _ cloudconfig.Recorder = (*Recorder)(nil)

// NewRecorder creates a recorder with its metrics registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		directivesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "directive",
				Name:      "total",
				Help:      "Number of processed directives by outcome",
			},
			[]string{"directive", "outcome"},
		),
		directiveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "directive",
				Name:      "duration_seconds",
				Help:      "Duration of directive handlers in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8), // 1ms to ~16s
			},
			[]string{"directive"},
		),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
		lastRunFailed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_failed_directives",
			Help:      "Number of directives that failed during the last run",
		}),
	}
	r.registry.MustRegister(r.directivesTotal, r.directiveDuration, r.lastRun, r.lastRunFailed)
	return r
}

// Registerer exposes the registry for library instrumentation.
func (r *Recorder) Registerer() prometheus.Registerer {
	if r == nil {
		return nil
	}
	return r.registry
}

// Gatherer exposes the registry for reading.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// UnknownDirective is the directive label of every unsupported directive.
// Their names come from user data and would make the label unbounded.
const UnknownDirective = "unknown"

// ObserveDirective implements cloudconfig.Recorder.
func (r *Recorder) ObserveDirective(name, outcome string, duration time.Duration) {
	if outcome == string(cloudconfig.OutcomeUnsupported) {
		r.directivesTotal.WithLabelValues(UnknownDirective, outcome).Inc()
		return
	}
	r.directivesTotal.WithLabelValues(name, outcome).Inc()
	r.directiveDuration.WithLabelValues(name).Observe(duration.Seconds())
}

// FinishRun records the end of a run.
func (r *Recorder) FinishRun(at time.Time, results []cloudconfig.Result) {
	failed := 0
	for _, res := range results {
		if res.Outcome == cloudconfig.OutcomeFailed {
			failed++
		}
	}
	r.lastRun.Set(float64(at.Unix()))
	r.lastRunFailed.Set(float64(failed))
}

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
