package app

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-store/internal/config"
)

const serviceName = "go-task-store"

var globalLogger zerolog.Logger

func InitDefaultLogger() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimestampFieldName = "timestamp"

	globalLogger = zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Int("pid", os.Getpid()).
		Logger()

	globalLogger.Info().Msg("initialized default logger")
}

// InitApplicationLogger switches the logger to the level and writer of the
// loaded config and tags every entry with the env and store driver.
func InitApplicationLogger() {
	cfg := config.Global()

	level := logLevel(cfg)
	zerolog.SetGlobalLevel(level)

	w := io.Writer(os.Stdout)
	if cfg.Env == config.EnvLocal {
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = os.Stdout
		w = consoleWriter
	}

	globalLogger = globalLogger.Output(w).
		With().
		Str("env", cfg.Env).
		Str("store_driver", cfg.Store.Driver).
		Logger()
	globalLogger.Info().
		Stringer("level", level).
		Msg("initialized application logger")
}

// logLevel returns the configured level, or the default one for the env.
// Config validation has already rejected unparsable levels.
func logLevel(cfg *config.Config) zerolog.Level {
	if cfg.Log.Level != "" {
		level, err := zerolog.ParseLevel(cfg.Log.Level)
		if err == nil {
			return level
		}
	}

	switch cfg.Env {
	case config.EnvLocal:
		return zerolog.TraceLevel
	case config.EnvDev:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}
