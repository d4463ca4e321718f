package cmd

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var dumpInstructions bool // Pretty-print parsed instructions with pp

var parseCmd = &cobra.Command{
	Use:   "parse <config>",
	Short: "Parse the configured script and print its instructions and diagnostics",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := parseOnly(args[0], dumpInstructions, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
			logrus.Fatalf("Parse failed: %v", err)
		}
	},
}

// parseOnly prints the instruction stream without simulating it.
func parseOnly(configPath string, dump bool, out, diag io.Writer) error {
	_, _, res, err := loadScript(configPath, diag)
	if err != nil {
		return err
	}
	if dump {
		printer := pp.New()
		printer.SetColoringEnabled(false)
		printer.SetOutput(out)
		_, err := printer.Println(res)
		return err
	}
	for i, in := range res.Instructions {
		if _, err := fmt.Fprintf(out, "%3d  %s\n", i, in); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(out, "%d instructions, %d diagnostics\n", len(res.Instructions), len(res.Diagnostics))
	return err
}

func init() {
	parseCmd.Flags().BoolVar(&dumpInstructions, "dump", false, "Pretty-print the parse result")
	rootCmd.AddCommand(parseCmd)
}
