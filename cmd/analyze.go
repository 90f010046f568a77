package cmd

import (
	"encoding/json"
	"os"

	"github.com/jsphweid/midivary/chord"
	"github.com/jsphweid/midivary/midi"
	"github.com/jsphweid/midivary/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.mid>",
	Short: "Prints the chord progression of a MIDI file",
	Long:  `Prints the chord progression of a MIDI file as JSON, one chord per beat that has a note onset.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		timeline, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(model.AnalyzeResponse{Chords: chord.Analyze(timeline)})
	},
}
