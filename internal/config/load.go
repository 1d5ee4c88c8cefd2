package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskrank-api/internal/domain/priority"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. TASKRANK_SERVER_PORT.
const EnvPrefix = "TASKRANK"

// ConfigFileEnv names the environment variable holding an optional config
// file path.
const ConfigFileEnv = EnvPrefix + "_CONFIG_FILE"

// Default values applied before any file or environment override.
const (
	DefaultPort                   = 8080
	DefaultLogLevel               = "info"
	DefaultShutdownTimeoutSeconds = 10
	DefaultMaxBatchSize           = 1000
	DefaultWorkers                = 4
)

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.shutdown_timeout_seconds", DefaultShutdownTimeoutSeconds)
	v.SetDefault("scoring.default_strategy", string(priority.DefaultStrategy))
	v.SetDefault("scoring.max_batch_size", DefaultMaxBatchSize)
	v.SetDefault("scoring.workers", DefaultWorkers)
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.RegisterValidation("strategy", func(fl validator.FieldLevel) bool {
		return priority.IsKnownStrategy(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register strategy validator: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config validation failed: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Default returns a Config populated with default values only.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                   DefaultPort,
			LogLevel:               DefaultLogLevel,
			ShutdownTimeoutSeconds: DefaultShutdownTimeoutSeconds,
		},
		Scoring: ScoringConfig{
			DefaultStrategy: string(priority.DefaultStrategy),
			MaxBatchSize:    DefaultMaxBatchSize,
			Workers:         DefaultWorkers,
		},
	}
}
