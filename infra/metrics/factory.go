package metrics

import (
	"fmt"

	corelogger "github.com/kilianp07/confsched/core/logger"
	coremetrics "github.com/kilianp07/confsched/core/metrics"
)

// NewSink builds the sinks listed in cfg. Several sinks are combined in a
// MultiSink; none yields a NopSink.
func NewSink(cfg coremetrics.Config, log corelogger.Logger) (coremetrics.Sink, error) {
	if len(cfg.Sinks) == 0 {
		return coremetrics.NopSink{}, nil
	}
	sinks := make([]coremetrics.Sink, 0, len(cfg.Sinks))
	for _, name := range cfg.Sinks {
		switch name {
		case coremetrics.SinkPrometheus:
			s, err := NewPromSink(cfg)
			if err != nil {
				return nil, fmt.Errorf("prom sink: %w", err)
			}
			sinks = append(sinks, s)
		case coremetrics.SinkLog:
			sinks = append(sinks, NewLogSink(log))
		default:
			return nil, fmt.Errorf("unknown metrics sink %q", name)
		}
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return coremetrics.NewMultiSink(sinks...), nil
}
