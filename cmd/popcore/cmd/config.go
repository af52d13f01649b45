package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"

	"github.com/popsim/popcore/scenario"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config FILE",
	Short: "create a scenario file",
	Long: `Create a scenario file in YAML format, prefilled with default values.

If FILE is not provided, 'scenario.yml' is used`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "scenario.yml"
		if len(args) >= 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !forceVal {
			fmt.Printf("file '%s' already exists, use --force to overwrite\n", path)
			return
		}

		buf, err := yaml.Marshal(scenario.NewSettings())
		check(err)
		check(ioutil.WriteFile(path, buf, 0644))
		fmt.Printf("scenario written to '%s'\n", path)
	},
}

var forceVal bool

func init() {
	RootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVar(&forceVal, "force", false, "overwrite FILE if it already exists")
}
