package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Default greeting values used when an invocation leaves them unset
const (
	DefaultName  = "stranger"
	DefaultPlace = "Earth"
)

// Config holds all configuration for the actions
type Config struct {
	Environment string
	Stage       string
	Log         LogConfig
	Greeting    GreetingConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// GreetingConfig holds the defaults the dispatcher falls back to
type GreetingConfig struct {
	DefaultName  string
	DefaultPlace string
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("STAGE", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("GREETING_DEFAULT_NAME", DefaultName)
	v.SetDefault("GREETING_DEFAULT_PLACE", DefaultPlace)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Stage:       v.GetString("STAGE"),
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		Greeting: GreetingConfig{
			DefaultName:  v.GetString("GREETING_DEFAULT_NAME"),
			DefaultPlace: v.GetString("GREETING_DEFAULT_PLACE"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the configuration values are usable
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.Log.Level, err)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: must be text or json", c.Log.Format)
	}

	if strings.TrimSpace(c.Greeting.DefaultName) == "" {
		return fmt.Errorf("GREETING_DEFAULT_NAME cannot be empty")
	}
	if strings.TrimSpace(c.Greeting.DefaultPlace) == "" {
		return fmt.Errorf("GREETING_DEFAULT_PLACE cannot be empty")
	}

	return nil
}

// NewLogger builds a logrus logger from the log configuration
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if c.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsBool gets an environment variable as boolean with a fallback value
func GetEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
