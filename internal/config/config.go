package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Startup  StartupConfig  `mapstructure:"startup"`
	API      APIConfig      `mapstructure:"api"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// Addr returns the host:port pair the HTTP server binds to.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DatabaseConfig contains the connection settings for PostgreSQL together
// with the retry and pool parameters used by the connection manager.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"              validate:"required"`
	Port            int           `mapstructure:"port"              validate:"required,gt=0,lt=65536"`
	Name            string        `mapstructure:"name"              validate:"required"`
	User            string        `mapstructure:"user"              validate:"required"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"           validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
	MaxRetries      int           `mapstructure:"max_retries"       validate:"gte=1"`
	RetryDelay      time.Duration `mapstructure:"retry_delay"       validate:"gt=0"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"   validate:"gt=0"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// URL builds a PostgreSQL connection URL from the individual settings.
// The password is escaped, so it may contain any character.
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}

	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	if c.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(int(c.ConnectTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// SafeString describes the target database without credentials, for logs.
func (c DatabaseConfig) SafeString() string {
	return fmt.Sprintf("%s@%s/%s", c.User, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.Name)
}

// StartupConfig controls the delay before the first database contact.
type StartupConfig struct {
	Delay time.Duration `mapstructure:"delay" validate:"gte=0"`
}

// APIConfig holds HTTP behaviour switches.
type APIConfig struct {
	// StrictNotFound makes update/delete of a missing task answer 404
	// instead of reporting success.
	StrictNotFound bool `mapstructure:"strict_not_found"`
}

// CacheConfig configures the optional Redis list cache.
// The cache is disabled when RedisAddr is empty.
type CacheConfig struct {
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"       validate:"gte=0"`
	TTL           time.Duration `mapstructure:"ttl"            validate:"gt=0"`
}

// Enabled reports whether a Redis address was configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}
