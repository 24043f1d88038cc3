package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "toursctl",
	Short: "Demo Tours backend control tool",
	Long:  `toursctl runs the Demo Tours itinerary backend and manages its database schema.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
