package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/confsched/config"
	"github.com/kilianp07/confsched/infra/logger"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "confsched",
	Short:         "Schedule conference presentations into tracks, sessions and time slots",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgPath
		if !cmd.Flags().Changed("config") {
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				path = ""
			}
		}
		c, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.SetLevel(c.Logging.Level)
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
