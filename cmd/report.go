package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/procsim/procsim/sim"
	"github.com/procsim/procsim/sim/config"
)

var reportCmd = &cobra.Command{
	Use:   "report <config>",
	Short: "Print the cost table and per-instruction time metrics without simulating",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeReport(args[0], cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
			logrus.Fatalf("Report failed: %v", err)
		}
	},
}

// writeReport sends the metrics report to the configured log destination.
func writeReport(configPath string, console, diag io.Writer) error {
	cfg, costs, res, err := loadScript(configPath, diag)
	if err != nil {
		return err
	}
	sink, err := openSink(cfg, console)
	if err != nil {
		return err
	}
	defer sink.Close()

	if err := sim.WriteCostTable(sink, costs); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(sink, "Logged to: %s\n\n", loggedTo(cfg.Log)); err != nil {
		return err
	}
	return sim.ComputeMetrics(res.Instructions, costs).Print(sink)
}

func loggedTo(l config.LogConfig) string {
	switch l.Target {
	case config.LogBoth:
		return "monitor and " + l.Path
	case config.LogFile:
		return l.Path
	default:
		return "monitor"
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
