package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/jsphweid/midivary/config"
	"github.com/jsphweid/midivary/logger"
	"github.com/jsphweid/midivary/modules"
	"github.com/jsphweid/midivary/variation"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config

	// process-wide; modules are discovered on first use
	registry *variation.Registry
)

var rootCmd = &cobra.Command{
	Use:   "midivary",
	Short: "Chord analysis and melodic variations for MIDI files",
	Long: `midivary labels the chord progression of a MIDI file and generates
new melodies from it with pluggable variation modules.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
		cfg = config.Load()
		logger.SetLevel(cfg.LogLevel)
		registry = modules.NewRegistry(cfg)
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
