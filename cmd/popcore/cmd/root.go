package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "popcore",
	Short: "run unit-movement simulation scenarios",
	Long: `This is the command-line application accompanying popcore:
	- run a YAML-described scenario headlessly for a fixed number of ticks,
	- dump a single pathfinder search's per-arm trace for debugging.`,
}

// Execute adds all child commands to the root command sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
