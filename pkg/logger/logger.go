package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var base = newLogger(os.Stdout, os.Getenv("ENVIRONMENT"))

func newLogger(w io.Writer, environment string) zerolog.Logger {
	level := zerolog.InfoLevel
	if environment == "development" {
		level = zerolog.DebugLevel
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Configure replaces the process logger. Called once from main after config is loaded.
func Configure(w io.Writer, environment string) {
	base = newLogger(w, environment)
}

// Get returns the underlying zerolog logger for structured use.
func Get() *zerolog.Logger {
	return &base
}

func Info(format string, v ...interface{}) {
	base.Info().Msg(fmt.Sprintf(format, v...))
}

func Error(format string, v ...interface{}) {
	base.Error().Msg(fmt.Sprintf(format, v...))
}

func Debug(format string, v ...interface{}) {
	base.Debug().Msg(fmt.Sprintf(format, v...))
}

func Warn(format string, v ...interface{}) {
	base.Warn().Msg(fmt.Sprintf(format, v...))
}

// With returns a child logger carrying the given key/value fields.
func With(fields map[string]interface{}) zerolog.Logger {
	return base.With().Fields(fields).Logger()
}

// LogStepError records a failed step of a multi-write sequence so it can be retried.
func LogStepError(saga, step, entityID string, err error) {
	base.Error().
		Str("saga", saga).
		Str("step", step).
		Str("entity_id", entityID).
		Err(err).
		Msg("multi-step write failed")
}
