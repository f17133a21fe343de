// Package logging sets up repokit's zerolog output.
//
// Commands log to stderr at a level picked by the -v count, and to an
// append-only file under the XDG state dir. REPOKIT_LOG_FILE moves the file,
// and "off" turns it off.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLogFile overrides the log file path.
const EnvLogFile = "REPOKIT_LOG_FILE"

// Options controls where log output goes.
type Options struct {
	Verbosity int
	// Console receives human-readable output. Nil means os.Stderr.
	Console io.Writer
	NoColor bool
	// File is the log file path. Empty means LogFilePath().
	File string
}

// LevelFor maps a -v count to a level: none is warn, -v info, -vv debug,
// anything more trace.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	}
	return zerolog.TraceLevel
}

// SetupLogger configures the global logger for a -v count, writing to
// stderr and the default log file.
func SetupLogger(verbosity int) {
	_ = Setup(Options{Verbosity: verbosity})
}

// Setup configures the global logger and returns a func that closes the log
// file. A log file that cannot be opened is reported and skipped.
func Setup(opts Options) (closeFile func() error) {
	zerolog.SetGlobalLevel(LevelFor(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}}

	closeFile = func() error { return nil }
	path := opts.File
	if path == "" {
		path = LogFilePath()
	}
	var fileErr error
	if path != "" {
		f, err := openLogFile(path)
		if err != nil {
			fileErr = err
		} else {
			writers = append(writers, f)
			closeFile = f.Close
		}
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	if opts.Verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Log file unavailable, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", path).Msg("Logger initialized")
	return closeFile
}

// LogFilePath is $REPOKIT_LOG_FILE, or repokit/repokit.log under the XDG
// state dir. It is empty when the variable is "off".
func LogFilePath() string {
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		if strings.EqualFold(v, "off") {
			return ""
		}
		return v
	}
	// xdg caches the environment at init; tests and wrappers change it later.
	xdg.Reload()
	return filepath.Join(xdg.StateHome, "repokit", "repokit.log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// GetLogger returns the global logger tagged with a component name.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// LogCommand records which command ran and with which arguments.
func LogCommand(path string, args []string) {
	log.Debug().
		Str("command", path).
		Strs("args", args).
		Msg("Command started")
}

// LogOperationStart logs the start of an operation and returns a func that
// logs its completion with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")
	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
