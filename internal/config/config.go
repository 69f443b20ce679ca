package config

import "github.com/spf13/viper"

// WatchConfig holds configuration for the plan directory watcher.
type WatchConfig struct {
	DebounceMs int    `mapstructure:"debounce_ms"`
	Cron       string `mapstructure:"cron"`
}

// Config holds all runtime configuration for a fitplan session.
// Values are populated from .fitplan.yaml, FITPLAN_* env vars, and CLI flags.
type Config struct {
	PlanDir       string      `mapstructure:"plan_dir"`
	DBPath        string      `mapstructure:"db_path"`
	TelemetryPath string      `mapstructure:"telemetry_path"`
	Verbose       bool        `mapstructure:"verbose"`
	NoColor       bool        `mapstructure:"no_color"`
	Watch         WatchConfig `mapstructure:"watch"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("plan_dir", ".")
	viper.SetDefault("db_path", ".fitplan.db")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("no_color", false)
	viper.SetDefault("watch.debounce_ms", 100)
	viper.SetDefault("watch.cron", "@daily")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
