// Package cmd wires the haptiq command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for haptiq.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "haptiq",
		Short: "Turn written MCQ answers into haptic feedback sequences",
		Long: `Haptiq scans free-form text for multiple-choice answer notations
("1/c", "Q2: b", "3-a,d") and plays the extracted answers back as a timed
sequence of pulses, so answers can be perceived without looking at a screen.

Each answer letter encodes as a count of pulses (a=1 .. e=5); each question
number is announced by a marker pulse followed by one pulse per unit.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewExtractCommand())
	cmd.AddCommand(NewPlayCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
