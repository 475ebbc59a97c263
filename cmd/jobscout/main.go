// Package main provides the jobscout command: the discovery agent, the
// REST API server, and operator tooling around the career-portal
// knowledge base.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/priya/jobscout/internal/logger"
)

var (
	logJSON  bool
	logDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "Job discovery and resume scoring pipeline",
	Long:  "Jobscout discovers entry-level job listings across aggregator APIs, job boards and company career portals, and scores resumes against job descriptions.",
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit JSON logs")
	rootCmd.PersistentFlags().BoolVar(&logDebug, "debug", false, "Enable debug logging")
}

func newLogger() (*zap.Logger, error) {
	return logger.New(logJSON, logDebug)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
