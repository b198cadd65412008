package zap

import (
	"errors"
	"fmt"
	"os"
	"strings"

	constant "github.com/LerianStudio/lib-bigmatch/bigmatch/constants"
	logpkg "github.com/LerianStudio/lib-bigmatch/bigmatch/log"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const callerSkipFrames = 1

// ErrMissingLibraryName is returned when Config.OTelLibraryName is empty.
var ErrMissingLibraryName = errors.New("OTelLibraryName is required")

// Environment controls the baseline logger profile.
type Environment string

const (
	EnvironmentProduction  Environment = "production"
	EnvironmentStaging     Environment = "staging"
	EnvironmentDevelopment Environment = "development"
	EnvironmentLocal       Environment = "local"
)

// Config contains all required logger initialization inputs.
type Config struct {
	Environment     Environment
	Level           string
	OTelLibraryName string
}

// ConfigFromEnv builds a Config from BIGMATCH_ENV and BIGMATCH_LOG_LEVEL,
// defaulting to the local profile.
func ConfigFromEnv(libraryName string) Config {
	env := Environment(strings.ToLower(strings.TrimSpace(os.Getenv(constant.EnvBigmatchEnvironment))))
	if env == "" {
		env = EnvironmentLocal
	}

	return Config{
		Environment:     env,
		Level:           strings.TrimSpace(os.Getenv(constant.EnvBigmatchLogLevel)),
		OTelLibraryName: libraryName,
	}
}

func (c Config) validate() error {
	if c.OTelLibraryName == "" {
		return ErrMissingLibraryName
	}

	switch c.Environment {
	case EnvironmentProduction, EnvironmentStaging, EnvironmentDevelopment, EnvironmentLocal:
		return nil
	default:
		return fmt.Errorf("invalid environment %q", c.Environment)
	}
}

// New creates a structured logger. Entries are teed to the OpenTelemetry log
// bridge registered under cfg.OTelLibraryName.
func New(cfg Config) (*Logger, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid zap config: %w", err)
	}

	baseConfig := buildConfigByEnvironment(cfg.Environment)

	level, err := resolveLevel(cfg)
	if err != nil {
		return nil, err
	}

	baseConfig.Level = level
	baseConfig.DisableStacktrace = true

	built, err := baseConfig.Build(
		zap.AddCallerSkip(callerSkipFrames),
		zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, otelzap.NewCore(cfg.OTelLibraryName))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{base: built}, nil
}

func resolveLevel(cfg Config) (zap.AtomicLevel, error) {
	if strings.TrimSpace(cfg.Level) != "" {
		parsed, err := logpkg.ParseLevel(cfg.Level)
		if err != nil {
			return zap.AtomicLevel{}, fmt.Errorf("invalid level %q: %w", cfg.Level, err)
		}

		return zap.NewAtomicLevelAt(zapLevel(parsed)), nil
	}

	if cfg.Environment == EnvironmentDevelopment || cfg.Environment == EnvironmentLocal {
		return zap.NewAtomicLevelAt(zapcore.DebugLevel), nil
	}

	return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
}

func buildConfigByEnvironment(environment Environment) zap.Config {
	if environment == EnvironmentDevelopment || environment == EnvironmentLocal {
		cfg := zap.NewDevelopmentConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

		return cfg
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	return cfg
}
