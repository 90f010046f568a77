package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/midivary/logger"
	"github.com/jsphweid/midivary/midi"
	"github.com/jsphweid/midivary/model"
	"github.com/jsphweid/midivary/variation"
	"github.com/spf13/cobra"
)

var (
	generateOut    string
	generateParams string
	generateChords string
)

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "output file (default <uuid>.mid)")
	generateCmd.Flags().StringVarP(&generateParams, "params", "p", "", `parameter values as JSON, e.g. '{"seed": 3}'`)
	generateCmd.Flags().StringVarP(&generateChords, "chords", "c", "", "JSON file with a chord progression (the output of analyze works)")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate <module> <file.mid>",
	Short: "Generates a variation of a MIDI file",
	Long:  `Generates a new melody from a MIDI file with the named variation module. See "modules" for names and parameters.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}

		var chords []model.ChordEvent
		if generateChords != "" {
			raw, err := os.ReadFile(generateChords)
			if err != nil {
				return err
			}
			if chords, err = parseChords(string(raw)); err != nil {
				return err
			}
		}

		out, err := runGeneration(registry, args[0], data, generateParams, chords)
		if err != nil {
			return err
		}

		path := generateOut
		if path == "" {
			path = uuid.New().String() + ".mid"
		}
		if err := os.WriteFile(path, out, 0644); err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

// parseChords accepts a bare list of chords or an object with a "chords" list.
// Blank input means no chord context.
func parseChords(data string) ([]model.ChordEvent, error) {
	data = strings.TrimSpace(data)
	if data == "" || data == "null" {
		return nil, nil
	}

	var chords []model.ChordEvent
	var err error
	if strings.HasPrefix(data, "{") {
		var wrapped model.AnalyzeResponse
		err = json.Unmarshal([]byte(data), &wrapped)
		chords = wrapped.Chords
	} else {
		err = json.Unmarshal([]byte(data), &chords)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: malformed chords: %v", variation.ErrInvalidInput, err)
	}
	return chords, nil
}

// runGeneration decodes data, runs the named module and encodes the result at
// the source's resolution.
func runGeneration(reg *variation.Registry, name string, data []byte, rawParams string, chords []model.ChordEvent) ([]byte, error) {
	start := time.Now()
	module, err := reg.Get(name)
	if err != nil {
		return nil, err
	}

	src, err := midi.Decode(data)
	if err != nil {
		return nil, err
	}
	params, err := variation.ParseParameters(rawParams)
	if err != nil {
		return nil, err
	}

	notes, err := module.Generate(src, chords, params)
	if err != nil {
		return nil, err
	}

	logger.Info("Generated variation", logger.Fields{
		"module":      name,
		"notes":       len(notes),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return midi.Encode(notes, src.TicksPerBeat)
}
