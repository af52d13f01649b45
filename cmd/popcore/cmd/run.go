package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/popsim/popcore/coordinator"
	"github.com/popsim/popcore/scenario"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run SCENARIO",
	Short: "run a scenario headlessly for a fixed number of ticks",
	Long: `Load a YAML scenario file, build a Coordinator from its terrain and
unit placements, and advance it for the scenario's configured tick count,
printing a one-line summary of live unit state after every tick.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "scenario.yml"
		if len(args) >= 1 {
			path = args[0]
		}

		s, err := scenario.LoadSettings(path)
		check(err)

		ticks := s.Ticks
		if ticksVal > 0 {
			ticks = ticksVal
		}

		c := s.NewCoordinator()
		fmt.Printf("loaded %d units on a %dx%d landscape, seed=0x%x\n",
			len(c.Units), s.LandscapeSize, s.LandscapeSize, s.Seed)

		for i := 0; i < ticks; i++ {
			c.Tick()
			if !quietVal {
				fmt.Printf("tick %4d: %d units alive\n", i, countAlive(c))
			}
		}
		fmt.Printf("ran %d ticks, %d units alive\n", ticks, countAlive(c))
	},
}

func countAlive(c *coordinator.Coordinator) int {
	n := 0
	for _, u := range c.Units {
		if u.Alive {
			n++
		}
	}
	return n
}

var ticksVal int
var quietVal bool

func init() {
	RootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVar(&ticksVal, "ticks", 0, "override the scenario's tick count (0 keeps the scenario's own value)")
	runCmd.Flags().BoolVar(&quietVal, "quiet", false, "suppress per-tick output")
}
