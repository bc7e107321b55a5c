// Package cmd contains the planora command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "planora",
	Short: "Planora - structured travel planning agents",
	Long: `Planora serves a small fleet of travel planning agents: a weather
forecaster, an activities recommender, a weekend planner, and a free-text
concierge. Task agents accept structured JSON requests, drive a generative
model, and return schema-validated artifacts or typed error envelopes.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
