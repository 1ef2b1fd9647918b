package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// viperManager implements Manager using Viper.
type viperManager struct {
	configPath string
	config     *Config
	viper      *viper.Viper
	watchChan  chan Config
}

// Load loads configuration from all sources.
func (m *viperManager) Load(ctx context.Context) error {
	m.viper = viper.New()
	m.viper.SetConfigType("yaml")
	if m.configPath != "" {
		m.viper.SetConfigFile(m.configPath)
	} else {
		m.viper.SetConfigName("config")
		m.viper.AddConfigPath("/etc/facilityiq")
		m.viper.AddConfigPath(".")
	}

	m.viper.SetEnvPrefix("FACILITYIQ")
	m.viper.AutomaticEnv()
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	m.setDefaults()

	// Config file is optional; defaults + env vars suffice.
	if err := m.viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// use defaults
		} else if os.IsNotExist(err) {
			// use defaults
		} else {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return m.unmarshalConfig()
}

// Get returns the current configuration.
func (m *viperManager) Get(ctx context.Context) *Config {
	return m.config
}

// Validate validates configuration is correct and complete.
func (m *viperManager) Validate(ctx context.Context) error {
	errs := m.config.Validate()
	if len(errs) > 0 {
		var msgs []string
		for _, err := range errs {
			msgs = append(msgs, err.Error())
		}
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
	}
	return nil
}

// Watch watches for configuration changes and reloads.
func (m *viperManager) Watch(ctx context.Context) <-chan Config {
	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		if err := m.unmarshalConfig(); err != nil {
			return
		}
		select {
		case m.watchChan <- *m.config:
		default:
			// Channel full, skip this update
		}
	})
	return m.watchChan
}

// setDefaults sets default values in viper.
func (m *viperManager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("analysis.lookback_days", defaults.Analysis.LookbackDays)
	m.viper.SetDefault("analysis.variance_threshold", defaults.Analysis.VarianceThreshold)
	m.viper.SetDefault("analysis.trigger_threshold", defaults.Analysis.TriggerThreshold)
	m.viper.SetDefault("analysis.workday_hours", defaults.Analysis.WorkdayHours)
	m.viper.SetDefault("analysis.imbalance_threshold", defaults.Analysis.ImbalanceThreshold)
	m.viper.SetDefault("analysis.building_travel_minutes", defaults.Analysis.BuildingTravelMinutes)
	m.viper.SetDefault("analysis.floor_travel_minutes", defaults.Analysis.FloorTravelMinutes)

	m.viper.SetDefault("database.sqlite_path", defaults.Database.SQLitePath)

	m.viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	m.viper.SetDefault("cache.ttl_seconds", defaults.Cache.TTLSeconds)
	m.viper.SetDefault("cache.max_entries", defaults.Cache.MaxEntries)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.path", defaults.Logging.Path)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)

	m.viper.SetDefault("tier.default", defaults.Tier.Default)
}

// unmarshalConfig unmarshals viper config into the Config struct.
func (m *viperManager) unmarshalConfig() error {
	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}
	m.config = cfg
	return nil
}
