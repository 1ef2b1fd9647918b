package config

import "context"

// Package config provides configuration management for facilityiq-ai.
//
// Configuration Sources (priority order, high to low):
//   1. Environment variables (FACILITYIQ_* prefix)
//   2. YAML config file (default: /etc/facilityiq/config.yaml)
//   3. Built-in defaults
//
// Main Configuration Sections:
//
//   1. Analysis
//      - lookback_days: pattern-analysis history window
//      - variance_threshold: metric degradation threshold
//      - trigger_threshold: alert trigger-score threshold
//      - workday_hours: standard workday for utilization
//      - imbalance_threshold: workload-imbalance deviation fraction
//      - building_travel_minutes / floor_travel_minutes: travel-cost model
//
//   2. Database
//      - sqlite_path: path to the snapshot/history SQLite file
//
//   3. Cache
//      - enabled, ttl_seconds, max_entries
//
//   4. Logging
//      - level: "debug" | "info" | "warn" | "error"
//      - format: "json" | "console"
//      - path, max_size_mb, max_backups, max_age_days
//
//   5. Tier
//      - default: "basic" | "professional" | "enterprise"

// Config contains all configuration fields.
type Config struct {
	Analysis struct {
		LookbackDays          int     `mapstructure:"lookback_days"`
		VarianceThreshold     float64 `mapstructure:"variance_threshold"`
		TriggerThreshold      float64 `mapstructure:"trigger_threshold"`
		WorkdayHours          float64 `mapstructure:"workday_hours"`
		ImbalanceThreshold    float64 `mapstructure:"imbalance_threshold"`
		BuildingTravelMinutes float64 `mapstructure:"building_travel_minutes"`
		FloorTravelMinutes    float64 `mapstructure:"floor_travel_minutes"`
	} `mapstructure:"analysis"`

	Database struct {
		SQLitePath string `mapstructure:"sqlite_path"`
	} `mapstructure:"database"`

	Cache struct {
		Enabled    bool `mapstructure:"enabled"`
		TTLSeconds int  `mapstructure:"ttl_seconds"`
		MaxEntries int  `mapstructure:"max_entries"`
	} `mapstructure:"cache"`

	Logging struct {
		Level      string `mapstructure:"level"`
		Format     string `mapstructure:"format"`
		Path       string `mapstructure:"path"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAgeDays int    `mapstructure:"max_age_days"`
	} `mapstructure:"logging"`

	Tier struct {
		Default string `mapstructure:"default"`
	} `mapstructure:"tier"`
}

// Manager loads, validates and watches configuration.
type Manager interface {
	// Load loads configuration from all sources.
	Load(ctx context.Context) error

	// Get returns the current configuration.
	Get(ctx context.Context) *Config

	// Validate validates configuration is correct and complete.
	Validate(ctx context.Context) error

	// Watch watches for configuration changes and reloads.
	Watch(ctx context.Context) <-chan Config
}

// NewManager creates a viper-backed configuration manager.
func NewManager(configPath string) Manager {
	return &viperManager{
		configPath: configPath,
		watchChan:  make(chan Config, 1),
	}
}
