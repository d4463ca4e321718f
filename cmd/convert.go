package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/procsim/procsim/sim/config"
)

var convertCmd = &cobra.Command{
	Use:   "convert <config>",
	Short: "Convert a configuration file to YAML",
	Long:  "Convert a legacy Simulator Configuration File (or a YAML one) to the YAML format. Output is written to stdout for piping.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(args[0])
		if err != nil {
			logrus.Fatalf("Conversion failed: %v", err)
		}
		if err := writeConfigYAML(cfg, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Conversion failed: %v", err)
		}
	},
}

// writeConfigYAML marshals cfg to YAML and writes it to w.
func writeConfigYAML(cfg *config.Config, w io.Writer) error {
	data, err := cfg.ToYAML()
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
