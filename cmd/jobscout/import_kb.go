package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/priya/jobscout/internal/config"
	"github.com/priya/jobscout/internal/db"
	"github.com/priya/jobscout/internal/kb"
)

var importKBCmd = &cobra.Command{
	Use:   "import-kb <file>",
	Short: "Import a legacy knowledge base file",
	Long:  `Validate a flat-file knowledge base (JSON object mapping company name to crawl health) and load its entries into the career_portals table.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runImportKB,
}

func init() {
	rootCmd.AddCommand(importKBCmd)
}

func runImportKB(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer database.Close()

	recorder := kb.NewRecorder(database, log)
	n, err := recorder.ImportLegacyFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d portal entries from %s\n", n, args[0])
	return nil
}
