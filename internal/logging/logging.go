// Package logging builds the zerolog logger used across the tools.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// LogFilePath builds a log file path using OS-appropriate path separators.
func LogFilePath(logsDir, toolName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", toolName, sessionStart.Format("20060102_150405")),
	)
}

// ParseLevel maps a config log level to zerolog. Unknown values mean info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Options selects the log sinks.
type Options struct {
	Level string

	// Console defaults to stderr when nil.
	Console io.Writer
	// File receives uncoloured console output; skipped when nil.
	File io.Writer
	// GraylogAddress enables a GELF UDP sink when non-empty.
	GraylogAddress string
}

// Manager owns the configured logger and any sink that needs closing.
type Manager struct {
	Logger  zerolog.Logger
	graylog *gelf.Writer
}

// Setup initializes the logging system. A Graylog sink that cannot be created
// is reported on the returned logger and skipped.
func Setup(opts Options) *Manager {
	zerolog.SetGlobalLevel(ParseLevel(opts.Level))
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	writers := []io.Writer{
		// console format with colors
		zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: time.RFC3339,
		},
	}
	if opts.File != nil {
		// console format without colors to file
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        opts.File,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}

	m := &Manager{}
	var gelfErr error
	if opts.GraylogAddress != "" {
		m.graylog, gelfErr = gelf.NewWriter(opts.GraylogAddress)
		if gelfErr == nil {
			m.graylog.Facility = "gzr"
			writers = append(writers, m.graylog)
		}
	}

	m.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	if gelfErr != nil {
		m.Logger.Error().Err(gelfErr).Str("address", opts.GraylogAddress).Msg("Failed to set up Graylog writer")
	}
	m.Logger.Debug().Str("loglevel", zerolog.GlobalLevel().String()).Msg("Logging set up")
	return m
}

// Close flushes and closes the Graylog sink if one was opened.
func (m *Manager) Close() error {
	if m.graylog == nil {
		return nil
	}
	return m.graylog.Close()
}
