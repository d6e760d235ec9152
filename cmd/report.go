package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"wish/core/logger"
)

var reportInput string

// reportCmd aggregates the event log into a YAML summary.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the shell's event log.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fd, err := openEventLog()
		if err != nil {
			return err
		}
		defer fd.Close()

		var report logger.Report
		if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func openEventLog() (io.ReadCloser, error) {
	if reportInput != "" {
		return os.Open(reportInput)
	}

	configuration, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if configuration.LogPath == "" {
		return nil, errors.New("event logging is disabled, set log_path or pass --input")
	}
	return configuration.ReadEventLog()
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportInput, "input", "i", "", "event log to read instead of the configured one")
}
