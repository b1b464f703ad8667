package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config is read from the environment
type Config struct {
	Port           int      `env:"PATIENCE_PORT,default=8000"`
	LogLevel       string   `env:"PATIENCE_LOG_LEVEL,default=info"`
	LogPretty      bool     `env:"PATIENCE_LOG_PRETTY,default=false"`
	DefaultGame    int      `env:"PATIENCE_DEFAULT_GAME,default=261"`
	MaxFillSteps   int      `env:"PATIENCE_MAX_FILL_STEPS,default=256"`
	MaxSessions    int      `env:"PATIENCE_MAX_SESSIONS,default=1024"`
	AllowedOrigins []string `env:"PATIENCE_ALLOWED_ORIGINS,default=*"`
}

var ErrInvalidConfig = errors.New("invalid config")

// Load decodes the environment over the defaults
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Port)
	}
	if c.MaxFillSteps <= 0 {
		return fmt.Errorf("%w: max fill steps %d", ErrInvalidConfig, c.MaxFillSteps)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("%w: max sessions %d", ErrInvalidConfig, c.MaxSessions)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Addr is the listen address
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// SetupLogging points the global logger at stderr at the configured level
func (c Config) SetupLogging() {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}
