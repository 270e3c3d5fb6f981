// Package logging adapts zerolog to the faas.Logger interface used by the
// console client.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
)

// Logger implements faas.Logger on top of zerolog.
type Logger struct {
	log zerolog.Logger
}

var _ faas.Logger = (*Logger)(nil)

// New creates a logger writing to w. verbose lowers the level to debug.
// When pretty is set, output uses zerolog's console format.
func New(w io.Writer, verbose, pretty bool) *Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return &Logger{
		log: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

// Wrap uses an existing zerolog logger.
func Wrap(log zerolog.Logger) *Logger {
	return &Logger{log: log}
}

// Zerolog returns the underlying logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.log
}

func (l *Logger) emit(event *zerolog.Event, msg string, fields map[string]interface{}) {
	if len(fields) > 0 {
		event = event.Fields(fields)
	}

	event.Msg(msg)
}

// Debug implements faas.Logger.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.emit(l.log.Debug(), msg, fields)
}

// Info implements faas.Logger.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.emit(l.log.Info(), msg, fields)
}

// Warn implements faas.Logger.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.emit(l.log.Warn(), msg, fields)
}

// Error implements faas.Logger.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.emit(l.log.Error(), msg, fields)
}
