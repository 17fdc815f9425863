package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// envBindings maps each configuration key to the environment variable that
// overrides it. The database variables keep the names used by existing
// deployments (DB_HOST, DB_NAME, ...).
var envBindings = map[string]string{
	"server.host":                "SERVER_HOST",
	"server.port":                "SERVER_PORT",
	"server.log_level":           "LOG_LEVEL",
	"server.shutdown_timeout":    "SERVER_SHUTDOWN_TIMEOUT",
	"database.host":              "DB_HOST",
	"database.port":              "DB_PORT",
	"database.name":              "DB_NAME",
	"database.user":              "DB_USER",
	"database.password":          "DB_PASSWORD",
	"database.sslmode":           "DB_SSLMODE",
	"database.max_retries":       "DB_MAX_RETRIES",
	"database.retry_delay":       "DB_RETRY_DELAY",
	"database.connect_timeout":   "DB_CONNECT_TIMEOUT",
	"database.max_open_conns":    "DB_MAX_OPEN_CONNS",
	"database.max_idle_conns":    "DB_MAX_IDLE_CONNS",
	"database.conn_max_lifetime": "DB_CONN_MAX_LIFETIME",
	"startup.delay":              "STARTUP_DELAY",
	"api.strict_not_found":       "API_STRICT_NOT_FOUND",
	"cache.redis_addr":           "REDIS_ADDR",
	"cache.redis_password":       "REDIS_PASSWORD",
	"cache.redis_db":             "REDIS_DB",
	"cache.ttl":                  "CACHE_TTL",
}

// defaults holds the value of every key that has one. Keys without a
// default (database.name, database.user) must come from the environment.
var defaults = map[string]any{
	"server.host":                "0.0.0.0",
	"server.port":                5000,
	"server.log_level":           "info",
	"server.shutdown_timeout":    "10s",
	"database.host":              "localhost",
	"database.port":              5432,
	"database.name":              "",
	"database.user":              "",
	"database.password":          "",
	"database.sslmode":           "disable",
	"database.max_retries":       5,
	"database.retry_delay":       "2s",
	"database.connect_timeout":   "5s",
	"database.max_open_conns":    10,
	"database.max_idle_conns":    5,
	"database.conn_max_lifetime": "5m",
	"startup.delay":              "5s",
	"api.strict_not_found":       false,
	"cache.redis_addr":           "",
	"cache.redis_password":       "",
	"cache.redis_db":             0,
	"cache.ttl":                  "30s",
}

// Options tunes where Load looks for configuration sources.
type Options struct {
	// EnvFiles are dotenv files loaded before reading the environment.
	// Missing files are ignored. Values never override variables that are
	// already set in the process environment.
	EnvFiles []string

	// ConfigPaths are directories searched for config.yaml.
	ConfigPaths []string
}

// DefaultOptions looks for .env and config.yaml in the working directory.
func DefaultOptions() Options {
	return Options{
		EnvFiles:    []string{".env"},
		ConfigPaths: []string{"."},
	}
}

// Load reads configuration with DefaultOptions.
func Load() (*Config, error) {
	return LoadWithOptions(DefaultOptions())
}

// LoadWithOptions reads configuration from defaults, an optional config.yaml,
// dotenv files and environment variables, in increasing order of precedence.
// Returns a populated Config or an error if loading/validation fails.
func LoadWithOptions(opts Options) (*Config, error) {
	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return nil, err
	}

	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s to %s: %w", key, env, err)
		}
	}

	if len(opts.ConfigPaths) > 0 {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, path := range opts.ConfigPaths {
			v.AddConfigPath(path)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// loadEnvFiles applies dotenv files without overriding the real environment.
func loadEnvFiles(files []string) error {
	for _, file := range files {
		if err := gotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}
	return nil
}
