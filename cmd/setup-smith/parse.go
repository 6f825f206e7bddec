package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/setup-smith/pkg/parser"
	"github.com/wonderfulspam/setup-smith/pkg/renderer"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse and display a setup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setup, err := parser.ParseFile(args[0])
		if err != nil {
			return err
		}

		output, err := renderer.FormatValue(setup.Root, outputFormat(parseFormat))
		if err != nil {
			return err
		}

		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "Model: %s\n", setup.Model)
		if t := setup.Temperatures.Ambient; t != nil {
			fmt.Fprintf(errOut, "Ambient: %d°C\n", *t)
		}
		if t := setup.Temperatures.Track; t != nil {
			fmt.Fprintf(errOut, "Track: %d°C\n", *t)
		}

		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

var parseFormat string

func init() {
	parseCmd.Flags().StringVar(&parseFormat, "format", "", "Output format (yaml, json)")
	rootCmd.AddCommand(parseCmd)
}
