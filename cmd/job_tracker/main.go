// Package main provides the entry point for the Job Tracker HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_tracker",
	Short: "Job Tracker HTTP API Server",
	Long:  "Job Tracker stores job applications and extracts posting details (title, company, location) from job listing pages via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
