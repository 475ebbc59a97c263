package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/priya/jobscout/internal/config"
	"github.com/priya/jobscout/internal/db"
	"github.com/priya/jobscout/internal/dispatch"
	"github.com/priya/jobscout/internal/ingest"
	"github.com/priya/jobscout/internal/kb"
	"github.com/priya/jobscout/internal/sources"
)

var agentEvery string

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Process the search queue",
	Long:  `Drain the pending task queue once, or keep processing on a schedule with --every.`,
	RunE:  runAgent,
}

func init() {
	agentCmd.Flags().StringVar(&agentEvery, "every", "", "Run on a schedule, e.g. --every 2h (default: run once and exit)")
	rootCmd.AddCommand(agentCmd)
}

func runAgent(cmd *cobra.Command, _ []string) error {
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

	dispatcher := buildDispatcher(cfg, database, log)

	if agentEvery == "" {
		return dispatcher.RunBatch(cmd.Context())
	}

	interval, err := time.ParseDuration(agentEvery)
	if err != nil {
		return fmt.Errorf("invalid --every value %q: %w", agentEvery, err)
	}

	// First run happens immediately; the schedule covers the rest.
	if err := dispatcher.RunBatch(cmd.Context()); err != nil {
		log.Error("batch failed", zap.Error(err))
	}

	c := cron.New()
	_, err = c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if err := dispatcher.RunBatch(context.Background()); err != nil {
			log.Error("batch failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule agent: %w", err)
	}

	log.Info("agent scheduled", zap.Duration("interval", interval))
	c.Start()
	defer c.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("agent stopping")
	return nil
}

func buildDispatcher(cfg *config.Config, database *db.DB, log *zap.Logger) *dispatch.Dispatcher {
	gate := ingest.New(database, log)
	recorder := kb.NewRecorder(database, log)
	guard := dispatch.NewGuard(cfg.GuardFile, time.Duration(cfg.GuardWindowHours)*time.Hour)

	return dispatch.New(dispatch.Options{
		Store:             database,
		Gate:              gate,
		Aggregator:        sources.NewAggregator(cfg.AdzunaAppID, cfg.AdzunaAppKey, cfg.AdzunaCountry, log),
		DeepScanner:       sources.NewDeepScanner(log),
		Crawler:           sources.NewPortalCrawler(cfg.UseBrowser, log),
		Portals:           recorder,
		Guard:             guard,
		AutoDeepThreshold: cfg.AutoDeepThreshold,
		Logger:            log,
	})
}
