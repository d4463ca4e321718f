package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/procsim/procsim/sim"
	"github.com/procsim/procsim/sim/config"
	"github.com/procsim/procsim/sim/logsink"
	"github.com/procsim/procsim/sim/parser"
	"github.com/procsim/procsim/sim/trace"
)

var (
	logLevel   string // Log verbosity level
	traceLevel string // Trace verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "procsim",
	Short: "Process-execution simulator for meta-data scripts",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd simulates the script named by a configuration file
var runCmd = &cobra.Command{
	Use:   "run <config>",
	Short: "Run the simulation described by a configuration file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s; valid: none, transitions", traceLevel)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		st, err := runSimulation(ctx, args[0], trace.TraceLevel(traceLevel), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		if st.Config.Enabled() {
			fmt.Fprintln(cmd.OutOrStdout())
			trace.Summarize(st).Print(cmd.OutOrStdout())
		}
		logrus.Info("Simulation complete.")
	},
}

// loadScript loads the configuration at configPath and parses the script it
// names. Diagnostics are written to diag.
func loadScript(configPath string, diag io.Writer) (*config.Config, *sim.CostTable, *parser.Result, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	costs, err := cfg.CostTable()
	if err != nil {
		return nil, nil, nil, err
	}
	res, err := parser.ParseFile(cfg.ResolvedScriptPath(), costs)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, d := range res.Diagnostics {
		fmt.Fprintln(diag, d.String())
	}
	if !res.Ended {
		logrus.Warnf("script %s has no end marker", cfg.ResolvedScriptPath())
	}
	return cfg, costs, res, nil
}

// openSink opens the event destination named by the configuration.
func openSink(cfg *config.Config, console io.Writer) (*logsink.Sink, error) {
	return logsink.Open(cfg.Log.Target, cfg.ResolvedLogPath(), console)
}

// runSimulation loads, parses and simulates. The returned trace is empty
// unless level enables recording.
func runSimulation(ctx context.Context, configPath string, level trace.TraceLevel, console, diag io.Writer) (*trace.SimulationTrace, error) {
	cfg, costs, res, err := loadScript(configPath, diag)
	if err != nil {
		return nil, err
	}
	sink, err := openSink(cfg, console)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			logrus.Warnf("closing log file: %v", cerr)
		}
	}()

	simulator := sim.NewSimulator(costs, cfg.Resources(), sink)
	simulator.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: level})
	logrus.Infof("Running %s: %d instructions, %d printers, %d hard drives",
		cfg.ResolvedScriptPath(), len(res.Instructions), cfg.Printers, cfg.HardDrives)
	if _, err := simulator.Run(ctx, res.Instructions); err != nil {
		return nil, err
	}
	return simulator.Trace, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Trace level (none, transitions)")

	rootCmd.AddCommand(runCmd)
}
