// Package cmd implements the shifud command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shifud",
	Short: "pronunciation practice tracker and tutor",
	Long: `shifud - pronunciation practice tracker and tutor
  - records per-syllable practice outcomes
  - recommends the next syllable to practice`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
