package config

import "fmt"

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed for %s: %s", e.Field, e.Message)
}

// Validate validates the configuration and returns validation errors.
func (c *Config) Validate() []error {
	var errs []error

	if c.Analysis.LookbackDays < 1 {
		errs = append(errs, &ValidationError{
			Field:   "analysis.lookback_days",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Analysis.LookbackDays),
		})
	}
	if c.Analysis.VarianceThreshold <= 0 || c.Analysis.VarianceThreshold >= 1 {
		errs = append(errs, &ValidationError{
			Field:   "analysis.variance_threshold",
			Message: fmt.Sprintf("must be in (0, 1), got %g", c.Analysis.VarianceThreshold),
		})
	}
	if c.Analysis.TriggerThreshold <= 0 || c.Analysis.TriggerThreshold > 1 {
		errs = append(errs, &ValidationError{
			Field:   "analysis.trigger_threshold",
			Message: fmt.Sprintf("must be in (0, 1], got %g", c.Analysis.TriggerThreshold),
		})
	}
	if c.Analysis.WorkdayHours <= 0 || c.Analysis.WorkdayHours > 24 {
		errs = append(errs, &ValidationError{
			Field:   "analysis.workday_hours",
			Message: fmt.Sprintf("must be in (0, 24], got %g", c.Analysis.WorkdayHours),
		})
	}
	if c.Analysis.ImbalanceThreshold <= 0 {
		errs = append(errs, &ValidationError{
			Field:   "analysis.imbalance_threshold",
			Message: "must be positive",
		})
	}

	if c.Database.SQLitePath == "" {
		errs = append(errs, &ValidationError{
			Field:   "database.sqlite_path",
			Message: "sqlite_path is required",
		})
	}

	if c.Cache.Enabled {
		if c.Cache.TTLSeconds < 1 {
			errs = append(errs, &ValidationError{
				Field:   "cache.ttl_seconds",
				Message: fmt.Sprintf("must be at least 1 when cache is enabled, got %d", c.Cache.TTLSeconds),
			})
		}
		if c.Cache.MaxEntries < 1 {
			errs = append(errs, &ValidationError{
				Field:   "cache.max_entries",
				Message: fmt.Sprintf("must be at least 1 when cache is enabled, got %d", c.Cache.MaxEntries),
			})
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, &ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error; got %q", c.Logging.Level),
		})
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, &ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("must be json or console, got %q", c.Logging.Format),
		})
	}

	switch c.Tier.Default {
	case "basic", "professional", "enterprise":
	default:
		errs = append(errs, &ValidationError{
			Field:   "tier.default",
			Message: fmt.Sprintf("must be basic, professional or enterprise; got %q", c.Tier.Default),
		})
	}

	return errs
}
