// Package main provides the entry point for the TrainTrack recommendation
// API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "traintrack",
	Short: "TrainTrack recommendation API server",
	Long:  "TrainTrack matches a candidate's subjects and skills against a catalog of weighted training positions and serves tiered recommendations over a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
