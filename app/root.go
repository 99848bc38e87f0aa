// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kochwerk",
	Short: "Kochwerk is a recipe catalog website with an admin panel",
	Long: `Kochwerk serves a public recipe and kitchen equipment catalog
together with an authenticated admin panel for managing recipes,
equipment recommendations and the about section.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
