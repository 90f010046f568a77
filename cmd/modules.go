package cmd

import (
	"encoding/json"
	"os"

	"github.com/jsphweid/midivary/variation"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(modulesCmd)
}

type moduleDescription struct {
	Name       string                `json:"name"`
	Parameters []variation.Parameter `json:"parameters"`
}

func describeModules(reg *variation.Registry) ([]moduleDescription, error) {
	all, err := reg.All()
	if err != nil {
		return nil, err
	}
	res := make([]moduleDescription, 0, len(all))
	for _, m := range all {
		res = append(res, moduleDescription{Name: m.Name(), Parameters: m.Parameters()})
	}
	return res, nil
}

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Lists variation modules and their parameters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		descriptions, err := describeModules(registry)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(descriptions)
	},
}
