package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/confsched/app"
	"github.com/kilianp07/confsched/core/scheduler"
	"github.com/kilianp07/confsched/infra/logger"
)

type scheduleFlags struct {
	input, inputFormat, output, format string
	sheet, schema, mode, grouping      string
	date, sessionIDs, params           string
	tracks, slot, perSession           int
	sort                               bool
}

var schedFlags scheduleFlags

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Assign every submission a track, session and time slot",
	RunE:  runSchedule,
}

func init() {
	f := scheduleCmd.Flags()
	f.StringVarP(&schedFlags.input, "input", "i", "", "submissions file (.csv or .xlsx)")
	f.StringVar(&schedFlags.inputFormat, "input-format", "", "input format override (csv, xlsx)")
	f.StringVarP(&schedFlags.output, "output", "o", "", "schedule file; empty or - writes to stdout")
	f.StringVarP(&schedFlags.format, "format", "f", "", "output format override (csv, xlsx, json)")
	f.StringVar(&schedFlags.sheet, "sheet", "", "worksheet to read and write")
	f.StringVar(&schedFlags.schema, "schema", "", "input columns: theme or legacy")
	f.StringVarP(&schedFlags.params, "params", "p", "", "standalone schedule section (.yaml or .json) replacing the configured one")
	f.StringVarP(&schedFlags.mode, "mode", "m", "", "oral, poster or batch")
	f.StringVar(&schedFlags.grouping, "grouping", "", "oral grouping strategy: theme, mixed or sequential")
	f.StringVar(&schedFlags.date, "date", "", "first conference day (YYYY-MM-DD), defaults to today")
	f.StringVar(&schedFlags.sessionIDs, "session-ids", "", "session numbering: global or per_track")
	f.IntVarP(&schedFlags.tracks, "tracks", "t", 0, "number of parallel tracks")
	f.IntVar(&schedFlags.slot, "slot", 0, "minutes per presentation")
	f.IntVar(&schedFlags.perSession, "per-session", 0, "maximum presentations per oral session")
	f.BoolVar(&schedFlags.sort, "sort", false, "order output rows by track, session and slot")
	rootCmd.AddCommand(scheduleCmd)
}

func (f scheduleFlags) apply(cmd *cobra.Command) {
	set := cmd.Flags().Changed
	if set("input") {
		cfg.IO.Input = f.input
	}
	if set("input-format") {
		cfg.IO.InputFormat = f.inputFormat
	}
	if set("output") {
		cfg.IO.Output = f.output
	}
	if set("format") {
		cfg.IO.Format = f.format
	}
	if set("sheet") {
		cfg.IO.Sheet = f.sheet
	}
	if set("schema") {
		cfg.IO.Schema = f.schema
	}
	if set("sort") {
		cfg.IO.SortOutput = f.sort
	}
	sc := &cfg.Schedule
	if set("mode") {
		sc.Mode = f.mode
		if !set("session-ids") {
			sc.SessionIDs = ""
		}
	}
	if set("grouping") {
		sc.Grouping = scheduler.ModuleConfig{Type: f.grouping}
	}
	if set("date") {
		sc.BaseDate = f.date
	}
	if set("session-ids") {
		sc.SessionIDs = f.sessionIDs
	}
	if set("tracks") {
		sc.NumTracks = f.tracks
	}
	if set("slot") {
		if sc.Mode == "poster" {
			sc.PosterSlotMinutes = f.slot
		} else {
			sc.SlotMinutes = f.slot
		}
	}
	if set("per-session") {
		sc.MaxPerSession = f.perSession
	}
}

func runSchedule(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cmd.Flags().Changed("params") {
		if err := cfg.ApplyScheduleFile(schedFlags.params); err != nil {
			return err
		}
	}
	schedFlags.apply(cmd)
	if err := cfg.IO.Validate(); err != nil {
		return err
	}
	svc, err := app.New(cfg, app.WithStdout(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	rep, err := svc.Schedule(ctx)
	if err != nil {
		return err
	}
	printSummary(cmd.ErrOrStderr(), rep)
	return nil
}

func printSummary(w io.Writer, rep *app.Report) {
	s := rep.Result.Summary
	fmt.Fprintf(w, "run %s: %d/%d presentations in %d sessions over %d day(s)\n",
		rep.RunID, s.Scheduled, s.Records, s.Sessions, s.Days)
	for _, t := range s.PerTrack {
		fmt.Fprintf(w, "  %-12s %3d presentations %3d sessions %2d rollovers\n", t.Name, t.Records, t.Sessions, t.Rollovers)
	}
	if s.Sessions > 0 {
		fmt.Fprintf(w, "  session size %.1f ± %.1f\n", s.MeanSize, s.StdDevSize)
	}
	if s.Unassigned > 0 {
		fmt.Fprintf(w, "  %d presentations left unassigned\n", s.Unassigned)
	}
	if rep.Output != "" && rep.Output != "-" {
		fmt.Fprintf(w, "schedule written to %s\n", rep.Output)
	}
}
