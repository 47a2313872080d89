// Package cli wires the triage commands together.
package cli

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/triageai/triage/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Patient intake and triage assessment",
	Long: `triage runs the patient intake wizard, the assessment service it
talks to, and a non-interactive assessment mode for scripting.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(intakeCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger from config: console output in
// development, JSON elsewhere.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
