package config

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Analysis.LookbackDays = 30
	cfg.Analysis.VarianceThreshold = 0.2
	cfg.Analysis.TriggerThreshold = 0.6
	cfg.Analysis.WorkdayHours = 8
	cfg.Analysis.ImbalanceThreshold = 0.30
	cfg.Analysis.BuildingTravelMinutes = 20
	cfg.Analysis.FloorTravelMinutes = 5

	cfg.Database.SQLitePath = "data/facilityiq.db"

	cfg.Cache.Enabled = true
	cfg.Cache.TTLSeconds = 300
	cfg.Cache.MaxEntries = 1024

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	cfg.Logging.Path = "logs/analysisd.log"
	cfg.Logging.MaxSizeMB = 100
	cfg.Logging.MaxBackups = 10
	cfg.Logging.MaxAgeDays = 30

	cfg.Tier.Default = "professional"

	return cfg
}
