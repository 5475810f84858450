package adapters

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/prometheus/client_golang/prometheus"

	"ros-cargo-build/internal/ports"
)

// PhaseMetricsAdapter keeps per-run metrics in a private registry so they
// can be dumped in the node_exporter textfile format after a run.
type PhaseMetricsAdapter struct {
	registry     *prometheus.Registry
	duration     *prometheus.GaugeVec
	failures     *prometheus.CounterVec
	dependencies prometheus.Gauge
	lastRun      prometheus.Gauge
	clock        func() time.Time
}

func NewPhaseMetricsAdapter(pkg string) *PhaseMetricsAdapter {
	labels := prometheus.Labels{"package": pkg}
	m := &PhaseMetricsAdapter{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "ros_cargo_build_phase_duration_seconds",
			Help:        "Wall clock duration of the last run of each phase.",
			ConstLabels: labels,
		}, []string{"phase"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ros_cargo_build_phase_failures_total",
			Help:        "Phases that ended with an error.",
			ConstLabels: labels,
		}, []string{"phase"}),
		dependencies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "ros_cargo_build_resolved_dependencies",
			Help:        "Dependencies resolved by the last configure.",
			ConstLabels: labels,
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "ros_cargo_build_last_run_timestamp_seconds",
			Help:        "Unix time of the last observed phase.",
			ConstLabels: labels,
		}),
		clock: time.Now,
	}
	m.registry.MustRegister(m.duration, m.failures, m.dependencies, m.lastRun)
	return m
}

func (m *PhaseMetricsAdapter) ObservePhase(phase string, duration time.Duration, err error) {
	m.duration.WithLabelValues(phase).Set(duration.Seconds())
	if err != nil {
		m.failures.WithLabelValues(phase).Inc()
	}
	m.lastRun.Set(float64(m.clock().Unix()))
}

func (m *PhaseMetricsAdapter) SetDependencies(count int) {
	m.dependencies.Set(float64(count))
}

func (m *PhaseMetricsAdapter) Registry() *prometheus.Registry {
	return m.registry
}

func (m *PhaseMetricsAdapter) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create metrics directory").
			WithCause(err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write metrics textfile").
			WithCause(err)
	}
	return nil
}

// NopPhaseMetrics discards observations.
type NopPhaseMetrics struct{}

func (NopPhaseMetrics) ObservePhase(string, time.Duration, error) {}
func (NopPhaseMetrics) SetDependencies(int)                       {}
func (NopPhaseMetrics) WriteTextfile(string) error                { return nil }

var (
	_ ports.PhaseMetricsPort = (*PhaseMetricsAdapter)(nil)
	_ ports.PhaseMetricsPort = NopPhaseMetrics{}
)
