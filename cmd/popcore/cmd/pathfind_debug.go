package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/popsim/popcore"
	"github.com/popsim/popcore/movement"
	"github.com/popsim/popcore/scenario"
)

// pathfindDebugCmd represents the pathfind-debug command
var pathfindDebugCmd = &cobra.Command{
	Use:   "pathfind-debug",
	Short: "dump a single pathfinder search's per-arm trace",
	Long: `Load a scenario's terrain (ignoring its units), run one dual-arm
wall-following search between two cells, and print the result plus each
arm's step-by-step trace. The visited bitmap itself is not printed.`,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := scenario.LoadSettings(cfgVal)
		check(err)

		c := s.NewCoordinator()
		rm := c.RegionMap()

		start := popcore.TileCoord{X: int16(startXVal * 2), Z: int16(startZVal * 2)}
		goal := popcore.TileCoord{X: int16(goalXVal * 2), Z: int16(goalZVal * 2)}

		dbg := movement.PathfindDebugTrace(rm, start, goal)

		fmt.Printf("start=%v goal=%v result=%v waypoints=%d\n",
			start, goal, dbg.Result.Kind, len(dbg.Result.Waypoints))
		fmt.Printf("arm0 trace (%d steps):\n", len(dbg.Arm0Trace))
		for i, n := range dbg.Arm0Trace {
			fmt.Printf("  %3d: (%d, %d)\n", i, n.X, n.Z)
		}
		fmt.Printf("arm1 trace (%d steps):\n", len(dbg.Arm1Trace))
		for i, n := range dbg.Arm1Trace {
			fmt.Printf("  %3d: (%d, %d)\n", i, n.X, n.Z)
		}
	},
}

var cfgVal string
var startXVal, startZVal, goalXVal, goalZVal int

func init() {
	RootCmd.AddCommand(pathfindDebugCmd)

	pathfindDebugCmd.Flags().StringVar(&cfgVal, "config", "scenario.yml", "scenario file supplying the terrain to search over")
	pathfindDebugCmd.Flags().IntVar(&startXVal, "start-x", 0, "start cell x")
	pathfindDebugCmd.Flags().IntVar(&startZVal, "start-z", 0, "start cell z")
	pathfindDebugCmd.Flags().IntVar(&goalXVal, "goal-x", 1, "goal cell x")
	pathfindDebugCmd.Flags().IntVar(&goalZVal, "goal-z", 1, "goal cell z")
}
