package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Scoring ScoringConfig `mapstructure:"scoring" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
}

// ScoringConfig contains settings for the prioritization engine and the
// batch analysis endpoints.
type ScoringConfig struct {
	// DefaultStrategy is applied when a request names no strategy.
	DefaultStrategy string `mapstructure:"default_strategy" validate:"required,strategy"`
	// MaxBatchSize caps the number of tasks accepted in one analysis batch.
	MaxBatchSize int `mapstructure:"max_batch_size" validate:"required,gte=1"`
	// Workers bounds the goroutines used to score a single batch.
	Workers int `mapstructure:"workers" validate:"required,gte=1"`
}
