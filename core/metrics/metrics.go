package metrics

import (
	"fmt"
	"time"

	"github.com/kilianp07/confsched/core/scheduler"
)

// Known sink names.
const (
	SinkPrometheus = "prometheus"
	SinkLog        = "log"
)

// Config defines settings for metrics output.
type Config struct {
	// Sinks lists the sinks every run is reported to.
	Sinks []string `json:"sinks"`
	// Textfile is written in the Prometheus text format after each run so
	// the node exporter textfile collector can pick it up. Empty disables it.
	Textfile string `json:"textfile"`
}

// SetDefaults enables both built-in sinks when none are listed.
func (c *Config) SetDefaults() {
	if c.Sinks == nil {
		c.Sinks = []string{SinkPrometheus, SinkLog}
	}
}

// Validate rejects unknown or repeated sink names.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Sinks))
	for _, name := range c.Sinks {
		switch name {
		case SinkPrometheus, SinkLog:
		default:
			return fmt.Errorf("unknown metrics sink %q", name)
		}
		if seen[name] {
			return fmt.Errorf("metrics sink %q listed twice", name)
		}
		seen[name] = true
	}
	return nil
}

// RunEvent describes one finished scheduling run.
type RunEvent struct {
	RunID    string
	Mode     string
	Summary  scheduler.Summary
	Duration time.Duration
	// Err is set when the run failed before producing output.
	Err  error
	Time time.Time
}

// Sink records scheduling runs.
type Sink interface {
	RecordRun(ev RunEvent) error
}

// Flusher is implemented by sinks that buffer until explicitly written.
type Flusher interface {
	Flush() error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunEvent) error { return nil }

// MultiSink fans events out to several sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRun(ev RunEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(ev); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every sink that supports it.
func (m *MultiSink) Flush() error {
	for _, s := range m.Sinks {
		if f, ok := s.(Flusher); ok {
			if err := f.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}
