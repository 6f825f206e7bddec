package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/setup-smith/pkg/batch"
	"github.com/wonderfulspam/setup-smith/pkg/catalog"
	"github.com/wonderfulspam/setup-smith/pkg/parser"
	"github.com/wonderfulspam/setup-smith/pkg/renderer"
)

var batchCmd = &cobra.Command{
	Use:   "batch [--car <car> --track <track> | <file>...]",
	Short: "Compare every pair of setups",
	Long: `Compares every pair among a set of setups: all setups saved for a car on a
track, or the files given as arguments. Prints one line per pair and the
closest pair.`,
	RunE: runBatch,
}

var (
	batchCar       string
	batchTrack     string
	batchFormat    string
	batchOutput    string
	batchIgnore    []string
	batchNoConvert bool
	batchWorkers   int
)

func init() {
	batchCmd.Flags().StringVar(&batchCar, "car", "", "Car folder in the setups directory")
	batchCmd.Flags().StringVar(&batchTrack, "track", "", "Track folder in the setups directory")
	batchCmd.Flags().StringVar(&batchFormat, "format", "", "Output format (table, json, yaml)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "Output file for results (default: stdout)")
	batchCmd.Flags().StringSliceVar(&batchIgnore, "ignore", nil, "Glob pattern of paths to ignore, repeatable")
	batchCmd.Flags().BoolVar(&batchNoConvert, "raw", false, "Show raw file values without unit conversion")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Concurrent comparisons (default: from config)")
	batchCmd.MarkFlagsRequiredTogether("car", "track")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	setups, err := loadBatch(args)
	if err != nil {
		return err
	}

	workers := cfg.Batch.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}

	pairs, err := batch.Run(cmd.Context(), setups, batch.Options{
		Workers: workers,
		Compare: compareOptions(batchIgnore, batchNoConvert),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	output, err := renderer.FormatBatch(pairs, outputFormat(batchFormat))
	if err != nil {
		return err
	}
	return writeOutput(cmd, batchOutput, output)
}

func loadBatch(files []string) ([]*parser.Setup, error) {
	if batchCar != "" {
		if len(files) > 0 {
			return nil, fmt.Errorf("give either --car/--track or files, not both")
		}
		cat, err := catalog.Open(cfg.SetupsDir)
		if err != nil {
			return nil, err
		}
		logger.Debug("loading setups", "dir", cat.Root(), "car", batchCar, "track", batchTrack)
		return cat.LoadAll(batchCar, batchTrack)
	}

	setups := make([]*parser.Setup, 0, len(files))
	for _, file := range files {
		setup, err := parser.ParseFile(file)
		if err != nil {
			return nil, err
		}
		setups = append(setups, setup)
	}
	return setups, nil
}
