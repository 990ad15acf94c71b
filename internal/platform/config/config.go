package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces every variable. Nested structs add their field name,
// e.g. Server.Addr is read from NHI_SERVER_ADDR.
const envPrefix = "NHI"

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Server Server
	Log    Log
	Check  Check
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr              string        `envconfig:"ADDR" default:":8080"`
	ReadHeaderTimeout time.Duration `envconfig:"READ_HEADER_TIMEOUT" default:"5s"`
	ReadTimeout       time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout      time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Log selects the slog handler and level.
type Log struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"json"`
}

// Check holds policy for the check service.
type Check struct {
	// ExcludeTest rejects Z-prefixed test NHIs unless a request says otherwise.
	ExcludeTest  bool `envconfig:"EXCLUDE_TEST" default:"false"`
	MaxBatchSize int  `envconfig:"MAX_BATCH_SIZE" default:"500"`
}

// FromEnv builds a Config from environment variables, reading a .env file
// in the working directory first when one exists.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Check.MaxBatchSize <= 0 {
		return Config{}, fmt.Errorf("failed to load config: %s_CHECK_MAX_BATCH_SIZE must be positive", envPrefix)
	}
	return cfg, nil
}

// MustFromEnv loads configuration or panics on error.
func MustFromEnv() Config {
	cfg, err := FromEnv()
	if err != nil {
		panic(err)
	}
	return cfg
}
