package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/kilianp07/confsched/config"
	"github.com/kilianp07/confsched/core/assemble"
	coremetrics "github.com/kilianp07/confsched/core/metrics"
	"github.com/kilianp07/confsched/core/model"
	"github.com/kilianp07/confsched/core/runlog"
	"github.com/kilianp07/confsched/core/scheduler"
	"github.com/kilianp07/confsched/infra/logger"
	"github.com/kilianp07/confsched/infra/metrics"
	"github.com/kilianp07/confsched/infra/tabular"
)

// Service wires the file collaborators, the scheduler and the run history.
type Service struct {
	cfg      *config.Config
	fs       afero.Fs
	stdout   io.Writer
	now      func() time.Time
	log      logger.Logger
	schedLog logger.Logger
	sink     coremetrics.Sink
	store    runlog.Store
	registry *scheduler.Registry
}

// Option customises a Service.
type Option func(*Service)

// WithFs replaces the filesystem used for input and output files.
func WithFs(fs afero.Fs) Option { return func(s *Service) { s.fs = fs } }

// WithStdout sets where schedules go when no output path is given.
func WithStdout(w io.Writer) Option { return func(s *Service) { s.stdout = w } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithLogger replaces the service and scheduler loggers.
func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

// WithSink replaces the metrics sink built from configuration.
func WithSink(sink coremetrics.Sink) Option { return func(s *Service) { s.sink = sink } }

// WithStore replaces the run store built from configuration.
func WithStore(st runlog.Store) Option { return func(s *Service) { s.store = st } }

// WithRegistry replaces the grouping strategy registry.
func WithRegistry(r *scheduler.Registry) Option { return func(s *Service) { s.registry = r } }

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	s := &Service{
		cfg:      cfg,
		fs:       afero.NewOsFs(),
		stdout:   os.Stdout,
		now:      time.Now,
		registry: scheduler.DefaultRegistry(),
	}
	for _, o := range opts {
		o(s)
	}
	metricsLog := s.log
	if s.log == nil {
		s.log = logger.New("service")
		s.schedLog = logger.New("scheduler")
		metricsLog = logger.New("metrics")
	} else {
		s.schedLog = s.log
	}
	if s.sink == nil {
		sink, err := metrics.NewSink(cfg.Metrics, metricsLog)
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		s.sink = sink
	}
	if s.store == nil {
		st, err := runlog.Open(cfg.RunLog)
		if err != nil {
			return nil, fmt.Errorf("run log: %w", err)
		}
		s.store = st
	}
	return s, nil
}

// Report describes a completed run.
type Report struct {
	RunID  string
	Result *scheduler.Result
	Table  assemble.Table
	// Output is the written path, empty when the schedule went to stdout.
	Output string
}

// Schedule reads the configured input, schedules it and publishes the
// result. Nothing is written when any step before publishing fails.
func (s *Service) Schedule(ctx context.Context) (rep *Report, err error) {
	start := s.now()
	sc := s.cfg.Schedule
	sc.SetDefaults()
	if sc.BaseDate == "" {
		sc.BaseDate = start.Format(time.DateOnly)
	}
	rec := runlog.NewRecord(start, sc.Mode)
	rec.Input, rec.Output = s.cfg.IO.Input, s.cfg.IO.Output
	rec.Params = paramsSnapshot(sc)
	defer func() { s.finish(ctx, rec, rep, err, start) }()

	schema, err := model.SchemaByName(s.cfg.IO.Schema)
	if err != nil {
		return nil, err
	}
	params, err := sc.Params(s.registry)
	if err != nil {
		return nil, err
	}
	table, err := s.readInput()
	if err != nil {
		return nil, err
	}
	recs, err := assemble.Extract(table, schema)
	if err != nil {
		return nil, err
	}
	sched, err := scheduler.New(params, s.schedLog)
	if err != nil {
		return nil, err
	}
	res, err := sched.Run(recs)
	if err != nil {
		return nil, err
	}
	tracks := sched.Params().Tracks
	names := make([]string, len(tracks))
	for i, w := range tracks {
		names[i] = w.Name
	}
	out := assemble.Merge(table, schema, res.Assignments, assemble.Options{
		SortBySession: s.cfg.IO.SortOutput,
		TrackOrder:    names,
	})
	rep = &Report{RunID: rec.ID, Result: res, Table: out, Output: s.cfg.IO.Output}
	if err := s.publish(out); err != nil {
		return nil, err
	}
	return rep, nil
}

// Validate checks that the input carries the columns the schema needs.
func (s *Service) Validate() error {
	schema, err := model.SchemaByName(s.cfg.IO.Schema)
	if err != nil {
		return err
	}
	table, err := s.readInput()
	if err != nil {
		return err
	}
	return assemble.Validate(table, schema)
}

// History lists recorded runs.
func (s *Service) History(ctx context.Context, q runlog.Query) ([]runlog.RunRecord, error) {
	return s.store.Query(ctx, q)
}

// Close releases the run store.
func (s *Service) Close() error { return s.store.Close() }

func (s *Service) readInput() (assemble.Table, error) {
	if s.cfg.IO.Input == "" {
		return assemble.Table{}, errors.New("no input file given")
	}
	format, err := tabular.ResolveFormat(s.cfg.IO.Input, s.cfg.IO.InputFormat)
	if err != nil {
		return assemble.Table{}, err
	}
	return tabular.ReadFile(s.fs, s.cfg.IO.Input, format, s.cfg.IO.Sheet)
}

func (s *Service) publish(t assemble.Table) error {
	path := s.cfg.IO.Output
	if path == "" || path == "-" {
		format := tabular.FormatCSV
		if s.cfg.IO.Format != "" {
			f, err := tabular.ResolveFormat("", s.cfg.IO.Format)
			if err != nil {
				return err
			}
			format = f
		}
		return tabular.Write(s.stdout, format, t, s.cfg.IO.Sheet)
	}
	format, err := tabular.ResolveFormat(path, s.cfg.IO.Format)
	if err != nil {
		return err
	}
	if err := tabular.WriteFile(s.fs, path, format, t, s.cfg.IO.Sheet); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.log.Infof("schedule written to %s", path)
	return nil
}

// finish records the run in history and metrics. Failures here are logged,
// never returned: the schedule itself is already published or has failed.
func (s *Service) finish(ctx context.Context, rec runlog.RunRecord, rep *Report, runErr error, start time.Time) {
	if rep != nil && rep.Result != nil {
		rec.Summary = rep.Result.Summary
	}
	if runErr != nil {
		rec.Error = runErr.Error()
		s.log.Errorf("run %s failed: %v", rec.ID, runErr)
	}
	if err := s.store.Append(ctx, rec); err != nil {
		s.log.Warnf("run log append: %v", err)
	}
	ev := coremetrics.RunEvent{
		RunID:    rec.ID,
		Mode:     rec.Mode,
		Summary:  rec.Summary,
		Duration: s.now().Sub(start),
		Err:      runErr,
		Time:     start,
	}
	if err := s.sink.RecordRun(ev); err != nil {
		s.log.Warnf("metrics: %v", err)
	}
	if f, ok := s.sink.(coremetrics.Flusher); ok {
		if err := f.Flush(); err != nil {
			s.log.Warnf("metrics flush: %v", err)
		}
	}
}

func paramsSnapshot(c scheduler.Config) map[string]any {
	m := map[string]any{
		"mode":            c.Mode,
		"slot_minutes":    c.SlotMinutes,
		"max_per_session": c.MaxPerSession,
		"num_tracks":      c.NumTracks,
		"grouping":        c.Grouping.Type,
		"session_ids":     c.SessionIDs,
		"base_date":       c.BaseDate,
	}
	if len(c.Grouping.Conf) > 0 {
		m["grouping_conf"] = c.Grouping.Conf
	}
	if c.Mode == string(model.ModePoster) {
		m["poster_slot_minutes"] = c.PosterSlotMinutes
	}
	if len(c.PosterBatches) > 0 {
		m["poster_batches"] = len(c.PosterBatches)
	}
	return m
}
