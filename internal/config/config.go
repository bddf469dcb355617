package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/TheMisteMince/MVP-API/internal/paths"
	"github.com/spf13/viper"
)

// Holds all service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Runtime  RuntimeConfig  `mapstructure:"runtime"`
	Build    BuildConfig    `mapstructure:"build"`
	Launch   LaunchConfig   `mapstructure:"launch"`
	Log      LogConfig      `mapstructure:"log"`
}

// HTTP server configuration for the product API.
//
// The host and port default to the fixed tuple the image descriptor bakes
// into launched containers (loopback, port 8000).
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Database configuration.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// Containerd connection configuration.
type RuntimeConfig struct {
	Address   string `mapstructure:"address"`
	Namespace string `mapstructure:"namespace"`
}

// Image build configuration.
type BuildConfig struct {
	CacheDir string `mapstructure:"cache_dir"` // Directory for cached dependency-layer archives.
	Output   string `mapstructure:"output"`    // Directory for the exported image.
}

// Container launch configuration.
type LaunchConfig struct {
	StartupTimeout time.Duration `mapstructure:"startup_timeout"` // How long to wait for the listener to come up.
}

// Logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Loads configuration from an optional file and the environment.
//
// Defaults are applied first, then the config file (when given), then
// MVPD_-prefixed environment variables. A missing file is not an error;
// a file that exists but cannot be parsed is.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("database.dsn", paths.Database())
	v.SetDefault("runtime.address", "/run/containerd/containerd.sock")
	v.SetDefault("runtime.namespace", "mvpd")
	v.SetDefault("build.cache_dir", paths.LayerCache())
	v.SetDefault("build.output", "dist")
	v.SetDefault("launch.startup_timeout", "30s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found: defaults and environment apply.
		}
	}

	v.SetEnvPrefix("MVPD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Checks the loaded configuration for values the service cannot run with.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.Host == "" {
		return fmt.Errorf("server.host must not be empty")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn must not be empty")
	}
	if c.Launch.StartupTimeout <= 0 {
		return fmt.Errorf("launch.startup_timeout must be positive")
	}
	return nil
}
