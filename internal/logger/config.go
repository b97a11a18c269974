package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config represents logger configuration
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Format      string // "json", "text"
	ServiceName string
	Version     string
	Environment string // "dev", "staging", "prod", "test"
	AddSource   bool
}

// NewConfig creates a config from explicit values
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// ForEnvironment returns the preset for an environment name. Production logs
// JSON at info, tests only log warnings, anything else is a verbose dev setup.
func ForEnvironment(env string) Config {
	cfg := DefaultConfig()
	cfg.Environment = env

	switch strings.ToLower(env) {
	case EnvironmentProduction, EnvironmentStaging:
		cfg.Format = LogFormatJSON
		cfg.Version = ProductionVersion
	case EnvironmentTest:
		cfg.Level = LogLevelWarn
	default:
		cfg.Level = LogLevelDebug
		cfg.AddSource = true
	}
	return cfg
}

// DefaultConfig is the fallback when nothing was configured
func DefaultConfig() Config {
	return Config{
		Level:       LogLevelInfo,
		Format:      LogFormatText,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: EnvironmentDev,
	}
}

// Validate rejects level and format names the handlers would silently ignore
func (c Config) Validate() error {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelWarning, LogLevelError:
	default:
		return fmt.Errorf(ErrMsgUnknownLevel, c.Level)
	}
	switch strings.ToLower(c.Format) {
	case LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf(ErrMsgUnknownFormat, c.Format)
	}
	return nil
}

// LogLevel converts string level to slog.Level
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == LogFormatJSON
}

// BaseAttributes are attached to every record
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
