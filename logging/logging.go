/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package logging

import (
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Environment variables read once when the base logger is built.
const (
	EnvLevel  = "LABCONSENSUS_LOG_LEVEL"
	EnvFormat = "LABCONSENSUS_LOG_FORMAT"
)

var errUnknownFormat = errors.New("unknown log format")

// Log source tags used in structured logger contexts.
const (
	SourceApp        = "app"
	SourceWeb        = "web"
	SourceWebRequest = "web_request"
	SourceDB         = "db"
	SourceEngine     = "engine"
	SourceReasoning  = "reasoning"
)

var (
	initOnce   sync.Once
	baseLogger *log.Logger
)

// Options builds logger options from a level and format name. Empty names
// keep the defaults of debug level and logfmt output.
func Options(level, format string) (log.Options, error) {
	opts := log.Options{
		TimeFunction:    log.NowUTC,
		TimeFormat:      time.RFC3339Nano,
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
	}

	if level = strings.TrimSpace(level); level != "" {
		lvl, err := log.ParseLevel(level)
		if err != nil {
			return opts, fmt.Errorf("invalid %s: %w", EnvLevel, err)
		}

		opts.Level = lvl
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "logfmt":
	case "json":
		opts.Formatter = log.JSONFormatter
	case "text":
		opts.Formatter = log.TextFormatter
	default:
		return opts, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}

	return opts, nil
}

// Init configures the base logger and stdlib log output. Invalid settings in
// the environment fall back to the defaults with a warning.
func Init() {
	initOnce.Do(func() {
		opts, err := Options(os.Getenv(EnvLevel), os.Getenv(EnvFormat))
		if err != nil {
			opts, _ = Options("", "")
		}

		baseLogger = log.NewWithOptions(os.Stdout, opts)
		if err != nil {
			baseLogger.Warn("ignoring log settings", "source", SourceApp, "error", err)
		}

		stdLogger := baseLogger.With("source", SourceApp).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})

		stdlog.SetFlags(0)
		stdlog.SetOutput(stdLogger.Writer())
	})
}

// Logger returns a logfmt logger tagged with the provided source.
func Logger(source string) *log.Logger {
	Init()
	return baseLogger.With("source", source)
}

// StdLogger returns a stdlib logger that writes logfmt output with a source.
func StdLogger(source string) *stdlog.Logger {
	Init()
	return baseLogger.With("source", source).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})
}
