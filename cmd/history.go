package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/confsched/app"
	"github.com/kilianp07/confsched/core/metrics"
	"github.com/kilianp07/confsched/core/runlog"
	"github.com/kilianp07/confsched/pkg/export"
)

var historyFlags struct {
	since time.Duration
	mode  string
	limit int
	out   string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous scheduling runs",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.DurationVar(&historyFlags.since, "since", 0, "only runs newer than this (e.g. 72h)")
	f.StringVarP(&historyFlags.mode, "mode", "m", "", "only runs in this mode")
	f.IntVarP(&historyFlags.limit, "limit", "n", 20, "maximum number of runs, 0 for all")
	f.StringVarP(&historyFlags.out, "output-format", "o", "table", "table, csv or json")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, err := app.New(cfg, app.WithSink(metrics.NopSink{}))
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	q := runlog.Query{Mode: historyFlags.mode, Limit: historyFlags.limit}
	if historyFlags.since > 0 {
		q.Start = time.Now().Add(-historyFlags.since)
	}
	runs, err := svc.History(context.Background(), q)
	if err != nil {
		return err
	}
	switch historyFlags.out {
	case "csv":
		return export.WriteCSV(cmd.OutOrStdout(), runs)
	case "json":
		return export.WriteJSON(cmd.OutOrStdout(), runs)
	case "table", "":
	default:
		return fmt.Errorf("unknown output format %q", historyFlags.out)
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tMODE\tSCHEDULED\tSESSIONS\tINPUT\tSTATUS")
	for _, r := range runs {
		status := "ok"
		if r.Error != "" {
			status = r.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%d\t%s\t%s\n",
			r.ID, r.Timestamp.Local().Format(time.DateTime), r.Mode,
			r.Summary.Scheduled, r.Summary.Records, r.Summary.Sessions, r.Input, status)
	}
	return tw.Flush()
}
