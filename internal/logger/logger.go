package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger *zerolog.Logger
)

// Get returns the singleton logger instance, initializing it on first call.
func Get() *zerolog.Logger {
	once.Do(func() {
		logger = newLogger()
	})
	return logger
}

// newLogger creates a logger based on the ENV environment variable
func newLogger() *zerolog.Logger {
	env := os.Getenv("ENV")

	// Set log level based on LOG_LEVEL env var, default to info
	logLevel := zerolog.InfoLevel
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if parsedLevel, err := zerolog.ParseLevel(strings.ToLower(levelStr)); err == nil {
			logLevel = parsedLevel
		} else {
			fmt.Fprintf(os.Stderr, "Invalid LOG_LEVEL %q; defaulting to 'info'\n", levelStr)
		}
	}

	zerolog.SetGlobalLevel(logLevel)

	if env == "development" || env == "dev" || env == "" {
		return newDevelopment()
	}
	return newProduction()
}

// newDevelopment creates a development logger with console output
func newDevelopment() *zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}
	zl := zerolog.New(output).With().Timestamp().Logger()
	return &zl
}

// newProduction creates a production logger with JSON output and UNIX timestamps
func newProduction() *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
	return &zl
}
