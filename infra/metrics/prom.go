package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/confsched/core/metrics"
)

// PromSink records scheduling runs in Prometheus metrics and writes them to
// a textfile on Flush.
type PromSink struct {
	reg        *prometheus.Registry
	textfile   string
	runs       *prometheus.CounterVec
	scheduled  *prometheus.CounterVec
	sessions   *prometheus.CounterVec
	rollovers  *prometheus.CounterVec
	unassigned *prometheus.GaugeVec
	duration   *prometheus.HistogramVec
	lastRun    prometheus.Gauge
}

// NewPromSink registers run metrics on a fresh registry.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, nil)
}

// NewPromSinkWithRegistry registers metrics on reg. A nil registry creates a new one.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg *prometheus.Registry) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &PromSink{reg: reg, textfile: cfg.Textfile}
	var err error
	if s.runs, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "confsched_runs_total",
		Help: "Scheduling runs by mode and outcome",
	}, []string{"mode", "status"})); err != nil {
		return nil, err
	}
	if s.scheduled, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "confsched_presentations_scheduled_total",
		Help: "Presentations given a slot",
	}, []string{"mode", "track"})); err != nil {
		return nil, err
	}
	if s.sessions, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "confsched_sessions_total",
		Help: "Sessions allocated",
	}, []string{"mode", "track"})); err != nil {
		return nil, err
	}
	if s.rollovers, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "confsched_rollovers_total",
		Help: "Sessions moved to a following day",
	}, []string{"mode", "track"})); err != nil {
		return nil, err
	}
	if s.unassigned, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "confsched_unassigned_presentations",
		Help: "Presentations left without a slot in the last run",
	}, []string{"mode"})); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "confsched_run_duration_seconds",
		Help:    "Wall time of a scheduling run",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	}, []string{"mode"})); err != nil {
		return nil, err
	}
	if s.lastRun, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "confsched_last_run_timestamp_seconds",
		Help: "Unix time of the last run",
	})); err != nil {
		return nil, err
	}
	return s, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun updates counters from the run summary.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	status := "ok"
	if ev.Err != nil {
		status = "error"
	}
	s.runs.WithLabelValues(ev.Mode, status).Inc()
	s.duration.WithLabelValues(ev.Mode).Observe(ev.Duration.Seconds())
	if !ev.Time.IsZero() {
		s.lastRun.Set(float64(ev.Time.Unix()))
	}
	if ev.Err != nil {
		return nil
	}
	for _, ts := range ev.Summary.PerTrack {
		s.scheduled.WithLabelValues(ev.Mode, ts.Name).Add(float64(ts.Records))
		s.sessions.WithLabelValues(ev.Mode, ts.Name).Add(float64(ts.Sessions))
		s.rollovers.WithLabelValues(ev.Mode, ts.Name).Add(float64(ts.Rollovers))
	}
	s.unassigned.WithLabelValues(ev.Mode).Set(float64(ev.Summary.Unassigned))
	return nil
}

// Flush writes the registry to the configured textfile, if any.
func (s *PromSink) Flush() error {
	if s.textfile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(s.textfile, s.reg)
}
