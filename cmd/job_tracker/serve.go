package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jonathan/job-tracker/internal/llm"
	"github.com/jonathan/job-tracker/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for tracking job applications and extracting job posting details.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveBrowser, "browser", false, "Render JavaScript-heavy pages with a headless browser when plain fetches come back thin")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// Optional: without it the server runs, but extraction endpoints are off.
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("GEMINI_API_KEY not set; job extraction endpoints will be unavailable")
	}

	cfg := server.Config{
		Port:        servePort,
		DatabaseURL: databaseURL,
		APIKey:      apiKey,
		Model:       llm.ModelFromEnv(),
		UseBrowser:  serveBrowser,
	}

	srv, err := server.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
