package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/confsched/app"
	"github.com/kilianp07/confsched/core/assemble"
	"github.com/kilianp07/confsched/core/metrics"
	"github.com/kilianp07/confsched/core/runlog"
)

// ErrValidation is returned once the missing columns have been listed.
var ErrValidation = errors.New("input validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the submissions file has every required column",
	RunE:  runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVarP(&schedFlags.input, "input", "i", "", "submissions file (.csv or .xlsx)")
	f.StringVar(&schedFlags.inputFormat, "input-format", "", "input format override (csv, xlsx)")
	f.StringVar(&schedFlags.sheet, "sheet", "", "worksheet to read")
	f.StringVar(&schedFlags.schema, "schema", "", "input columns: theme or legacy")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	schedFlags.apply(cmd)
	if err := cfg.IO.Validate(); err != nil {
		return err
	}
	svc, err := app.New(cfg, app.WithSink(metrics.NopSink{}), app.WithStore(runlog.NopStore{}))
	if err != nil {
		return err
	}
	err = svc.Validate()
	var mc *assemble.MissingColumnsError
	if errors.As(err, &mc) {
		for _, c := range mc.Columns {
			fmt.Fprintf(cmd.ErrOrStderr(), "missing column: %s\n", c)
		}
		return ErrValidation
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: all required columns present\n", cfg.IO.Input)
	return nil
}
