/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package logging

import (
	"fmt"
	stdlog "log"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Log source tags used in structured logger contexts.
const (
	SourceApp        = "app"
	SourceWeb        = "web"
	SourceWebRequest = "web_request"
	SourceDB         = "db"
	SourceNarrative  = "narrative"
	SourceReport     = "report"
)

var (
	initOnce   sync.Once
	baseLogger *log.Logger

	derivedMu sync.Mutex
	derived   []*log.Logger
)

// Init configures the base logger and redirects the stdlib log package into it.
func Init() {
	initOnce.Do(func() {
		baseLogger = log.NewWithOptions(os.Stdout, log.Options{
			TimeFunction:    log.NowUTC,
			TimeFormat:      time.RFC3339Nano,
			Level:           log.InfoLevel,
			ReportTimestamp: true,
			Formatter:       log.LogfmtFormatter,
		})

		stdLogger := baseLogger.With("source", SourceApp).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})

		stdlog.SetFlags(0)
		stdlog.SetOutput(stdLogger.Writer())
	})
}

// SetLevel changes the minimum level of every logger derived from the base logger.
func SetLevel(level string) error {
	Init()

	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	derivedMu.Lock()
	defer derivedMu.Unlock()

	baseLogger.SetLevel(parsed)
	for _, l := range derived {
		l.SetLevel(parsed)
	}

	return nil
}

// derive returns a child of the base logger. Children copy the level when
// created, so they are tracked for SetLevel.
func derive(source string) *log.Logger {
	Init()

	derivedMu.Lock()
	defer derivedMu.Unlock()

	l := baseLogger.With("source", source)
	derived = append(derived, l)

	return l
}

// Logger returns a logfmt logger tagged with the provided source.
func Logger(source string) *log.Logger {
	return derive(source)
}

// StdLogger returns a stdlib logger that writes logfmt output with a source.
func StdLogger(source string) *stdlog.Logger {
	return derive(source).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})
}
