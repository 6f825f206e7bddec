package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/setup-smith/pkg/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list [car [track]]",
	Short: "List cars, tracks or setups in the setups directory",
	Long: `Without arguments lists the cars that have saved setups. With a car lists
its tracks, and with a car and a track lists the setup files.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runList,
}

var listDir string

func init() {
	listCmd.Flags().StringVar(&listDir, "dir", "", "Setups directory (default: from config)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	dir := cfg.SetupsDir
	if listDir != "" {
		dir = listDir
	}

	cat, err := catalog.Open(dir)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch len(args) {
	case 0:
		cars, err := cat.Cars()
		if err != nil {
			return err
		}
		if len(cars) == 0 {
			fmt.Fprintf(out, "No cars found in %s\n", cat.Root())
		}
		for _, car := range cars {
			fmt.Fprintf(out, "%-36s %s\n", car.ID, car.Name)
		}
	case 1:
		tracks, err := cat.Tracks(args[0])
		if err != nil {
			return err
		}
		for _, track := range tracks {
			fmt.Fprintln(out, track)
		}
	default:
		files, err := cat.Setups(args[0], args[1])
		if err != nil {
			return err
		}
		for _, file := range files {
			fmt.Fprintln(out, file)
		}
	}
	return nil
}
