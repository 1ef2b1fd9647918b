package main

// Package main is the entry point for the facilityiq-ai analysis daemon.
//
// Responsibilities:
//   - Load and validate configuration from YAML, environment variables, and CLI flags
//   - Open the SQLite store holding the operational snapshot and completion history
//   - Run analysis cycles on an interval (or once with -once)
//   - Persist generated recommendations back to the store
//   - Emit the tier-projected analysis report as JSON on stdout
//   - Serve Prometheus metrics on the configured address
//   - Implement graceful shutdown with context cancellation
//
// Data Flow:
//   1. SQLite store → snapshot (employees, locations, work orders, alerts, metrics, templates)
//   2. Snapshot → context analyzers (workload, conflicts, alerts, skills, cost, location, performance)
//   3. Snapshot + history + baselines → recommendation analyzer → scored task recommendations
//   4. Merged report → tier projection → JSON output

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/facilityiq/facilityiq-ai/internal/config"
	"github.com/facilityiq/facilityiq-ai/internal/estimator"
	"github.com/facilityiq/facilityiq-ai/internal/logging"
	"github.com/facilityiq/facilityiq-ai/internal/orchestrator"
	"github.com/facilityiq/facilityiq-ai/internal/store"
	"github.com/facilityiq/facilityiq-ai/internal/tier"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to YAML config file (optional)")
		tierFlag    = flag.String("tier", "", "subscription tier to project the report for (overrides config)")
		interval    = flag.Duration("interval", 5*time.Minute, "time between analysis cycles")
		once        = flag.Bool("once", false, "run a single analysis cycle and exit")
		metricsAddr = flag.String("metrics-addr", ":9090", "listen address for Prometheus metrics, empty to disable")
	)
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	manager := config.NewManager(*configPath)
	if err := manager.Load(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := manager.Validate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	cfg := manager.Get(ctx)

	logger, err := logging.New(&logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	reportTier := tier.Tier(cfg.Tier.Default)
	if *tierFlag != "" {
		reportTier = tier.Tier(*tierFlag)
	}
	if _, err := tier.Capabilities(reportTier); err != nil {
		logger.Fatal("invalid tier", zap.Error(err))
	}

	db, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("path", cfg.Database.SQLitePath), zap.Error(err))
	}
	defer db.Close()

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, logger)
	}

	builder := orchestrator.New(db, db, db, estimator.NewFixed(), cfg, logger)

	logger.Info("analysis daemon started",
		zap.String("tier", string(reportTier)),
		zap.Duration("interval", *interval),
		zap.Bool("once", *once),
	)

	if err := runCycle(ctx, builder, db, reportTier, logger); err != nil {
		logger.Fatal("analysis cycle failed", zap.Error(err))
	}
	if *once {
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	reloads := manager.Watch(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutdown signal received")
			return
		case updated := <-reloads:
			logger.Info("configuration reloaded")
			cfg = &updated
			builder = orchestrator.New(db, db, db, estimator.NewFixed(), cfg, logger)
		case <-ticker.C:
			if err := runCycle(ctx, builder, db, reportTier, logger); err != nil {
				logger.Error("analysis cycle failed", zap.Error(err))
			}
		}
	}
}

// runCycle builds one report, persists its recommendations and writes the
// projected report to stdout.
func runCycle(ctx context.Context, builder *orchestrator.Builder, db *store.Store, t tier.Tier, logger *zap.Logger) error {
	report, err := builder.BuildReport(ctx, t)
	if err != nil {
		return err
	}
	if len(report.Recommendations) > 0 {
		if err := db.SaveRecommendations(ctx, report.Recommendations); err != nil {
			return fmt.Errorf("persisting recommendations: %w", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	logger.Debug("report written", zap.Int("recommendations", len(report.Recommendations)))
	return nil
}

func serveMetrics(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("metrics listener started", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics listener stopped", zap.Error(err))
	}
}
