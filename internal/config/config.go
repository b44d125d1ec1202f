// Package config loads settings for the planner server and CLI.
//
// Values come from built-in defaults, an optional TOML file (PLANNER_CONFIG or
// ./planner.toml) and PLANNER_* environment variables, in increasing order of
// precedence. Nested keys map to env vars with "." replaced by "_", so
// database.host is PLANNER_DATABASE_HOST.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
)

// Config holds application configuration.
type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Listing  ListingConfig  `mapstructure:"listing"`
	NATS     NATSConfig     `mapstructure:"nats"`
	S3       S3Config       `mapstructure:"s3"`
	Client   ClientConfig   `mapstructure:"client"`
}

// HTTPConfig holds server listener settings.
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds PostgreSQL connection settings. URL wins over the
// individual fields when set.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
	ConnectAttempts int           `mapstructure:"connect_attempts"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ListingConfig tunes the list pipeline for every collection.
type ListingConfig struct {
	DefaultPageSize int    `mapstructure:"default_page_size"`
	MaxPageSize     int    `mapstructure:"max_page_size"`
	MissingPrice    string `mapstructure:"missing_price"`
}

// NATSConfig enables domain events when URL is set.
type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// S3Config enables collection exports when Bucket is set.
type S3Config struct {
	Bucket   string `mapstructure:"bucket"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
	Prefix   string `mapstructure:"prefix"`
}

// ClientConfig is used by plannerctl.
type ClientConfig struct {
	APIURL  string        `mapstructure:"api_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DSN builds a libpq-compatible connection string.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// MigrateURL returns a pgx5:// URL for golang-migrate.
func (c DatabaseConfig) MigrateURL() string {
	if c.URL != "" {
		return "pgx5://" + strings.TrimPrefix(strings.TrimPrefix(c.URL, "postgres://"), "postgresql://")
	}
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// MissingPolicy returns the parsed missing-price policy.
func (c ListingConfig) MissingPolicy() listing.MissingPolicy {
	p, err := listing.ParseMissingPolicy(c.MissingPrice)
	if err != nil {
		return listing.MissingAsZero
	}
	return p
}

// Defaults returns pipeline defaults for a collection with the given sort.
func (c ListingConfig) Defaults(sort listing.SortKey) listing.Defaults {
	return listing.Defaults{Sort: sort, PageSize: c.DefaultPageSize, MaxPageSize: c.MaxPageSize}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("http.allowed_origins", []string{"*"})

	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "eventplanner")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", 30*time.Minute)
	v.SetDefault("database.max_conn_idle_time", 5*time.Minute)
	v.SetDefault("database.connect_attempts", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("listing.default_page_size", listing.DefaultPageSize)
	v.SetDefault("listing.max_page_size", 100)
	v.SetDefault("listing.missing_price", string(listing.MissingAsZero))

	v.SetDefault("nats.url", "")

	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "exports/")

	v.SetDefault("client.api_url", "http://localhost:8080")
	v.SetDefault("client.timeout", 15*time.Second)
}

// New returns a viper instance with defaults, file lookup and env binding
// configured. Callers may bind flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path := os.Getenv("PLANNER_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("planner")
	}

	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (if any) and unmarshals v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if _, err := listing.ParseMissingPolicy(c.Listing.MissingPrice); err != nil {
		return fmt.Errorf("listing.missing_price: %w", err)
	}
	if c.Listing.DefaultPageSize < 1 {
		return fmt.Errorf("listing.default_page_size must be positive, got %d", c.Listing.DefaultPageSize)
	}
	if c.Listing.MaxPageSize < c.Listing.DefaultPageSize {
		return fmt.Errorf("listing.max_page_size (%d) must be >= default_page_size (%d)",
			c.Listing.MaxPageSize, c.Listing.DefaultPageSize)
	}
	return nil
}
