package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment variables that override file values,
// e.g. SLEEPCHART_DATABASE_HOST.
const EnvPrefix = "SLEEPCHART"

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	HealthAPI HealthAPIConfig `mapstructure:"health_api"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Chart     ChartConfig     `mapstructure:"chart"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

type ServerConfig struct {
	GRPCPort int    `mapstructure:"grpc_port"`
	HTTPPort int    `mapstructure:"http_port"`
	Host     string `mapstructure:"host"`
}

// HealthAPIConfig points at the upstream health-data API.
type HealthAPIConfig struct {
	URL        string        `mapstructure:"url"`
	Token      string        `mapstructure:"token"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retry_count"`
	// Timezone applies to upstream timestamps that carry no offset.
	Timezone string `mapstructure:"timezone"`
}

type DatabaseConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	Name              string `mapstructure:"name"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	SSLMode           string `mapstructure:"ssl_mode"`
	MaxConnections    int    `mapstructure:"max_connections"`
	ConnectionTimeout int    `mapstructure:"connection_timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ChartConfig tunes the combined sleep chart.
type ChartConfig struct {
	SmoothingWindow   int           `mapstructure:"smoothing_window"`
	TickInterval      time.Duration `mapstructure:"tick_interval"`
	HeartRateFloor    float64       `mapstructure:"heart_rate_floor"`
	HeartRateHeadroom float64       `mapstructure:"heart_rate_headroom"`
	RestingPadding    float64       `mapstructure:"resting_padding"`
	Timezone          string        `mapstructure:"timezone"`
}

type CacheConfig struct {
	Size int           `mapstructure:"size"`
	TTL  time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type SchedulerConfig struct {
	Spec          string        `mapstructure:"spec"`
	Lookback      time.Duration `mapstructure:"lookback"`
	BootstrapDays int           `mapstructure:"bootstrap_days"`
}

// ConnString builds a lib/pq connection string.
func (d DatabaseConfig) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode, d.ConnectionTimeout,
	)
}

// Load reads configuration from file and environment variables.
//
// $VAR references inside the file are expanded first, then defaults fill
// missing keys and SLEEPCHART_* variables override the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal([]byte(expanded), &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal raw config: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.MergeConfigMap(rawConfig); err != nil {
		return nil, fmt.Errorf("failed to merge config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Ticks are anchored at the top of the hour, so the step has to tile it.
	if step := config.Chart.TickInterval; step <= 0 || time.Hour%step != 0 {
		return nil, fmt.Errorf("chart.tick_interval %s does not divide an hour", step)
	}

	return &config, nil
}

// Location resolves a timezone name. Empty and "Local" mean the process
// local zone.
func Location(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.grpc_port", 50051)
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.host", "0.0.0.0")

	v.SetDefault("health_api.timeout", 30*time.Second)
	v.SetDefault("health_api.retry_count", 3)
	v.SetDefault("health_api.timezone", "Local")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.connection_timeout", 5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("chart.smoothing_window", 9)
	v.SetDefault("chart.tick_interval", 15*time.Minute)
	v.SetDefault("chart.heart_rate_floor", 45)
	v.SetDefault("chart.heart_rate_headroom", 5)
	v.SetDefault("chart.resting_padding", 2)
	v.SetDefault("chart.timezone", "Local")

	v.SetDefault("cache.size", 1000)
	v.SetDefault("cache.ttl", 5*time.Minute)

	v.SetDefault("rate_limit.rps", 5.0)
	v.SetDefault("rate_limit.burst", 10)

	v.SetDefault("scheduler.spec", "*/15 * * * *")
	v.SetDefault("scheduler.lookback", 12*time.Hour)
	v.SetDefault("scheduler.bootstrap_days", 30)
}
