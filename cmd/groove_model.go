package cmd

import (
	"fmt"

	"github.com/jsphweid/midivary/groove"
	"github.com/spf13/cobra"
)

var (
	grooveModelOut   string
	grooveModelSteps int
	grooveModelSeed  int64
)

func init() {
	grooveModelCmd.Flags().StringVarP(&grooveModelOut, "out", "o", "groove.gob", "where to write the model")
	grooveModelCmd.Flags().IntVar(&grooveModelSteps, "steps", 32, "activations produced per inference")
	grooveModelCmd.Flags().Int64Var(&grooveModelSeed, "seed", 1, "initialization seed")
	rootCmd.AddCommand(grooveModelCmd)
}

var grooveModelCmd = &cobra.Command{
	Use:   "groove-model",
	Short: "Writes an untrained groove model",
	Long:  `Writes a randomly initialized groove model. Point GROOVE_MODEL_PATH at it to enable the groove module.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if grooveModelSteps < 1 {
			return fmt.Errorf("steps must be at least 1, got %d", grooveModelSteps)
		}
		if err := groove.SaveModel(grooveModelOut, groove.RandomModel(grooveModelSteps, grooveModelSeed)); err != nil {
			return err
		}
		fmt.Println(grooveModelOut)
		return nil
	},
}
