// Package logging builds the logfmt loggers used across gravsim.
package logging

import (
	"io"
	"strings"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// New returns a synchronized logfmt logger writing to w, stamped with UTC
// time and filtered at the named level (debug, info, warn, error, none).
// Unknown names log at info.
func New(w io.Writer, levelName string) kitlog.Logger {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	return level.NewFilter(logger, Allow(levelName))
}

// Allow maps a level name to a filter option.
func Allow(levelName string) level.Option {
	switch strings.ToLower(strings.TrimSpace(levelName)) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	case "none", "off":
		return level.AllowNone()
	default:
		return level.AllowInfo()
	}
}

// Component tags every line from logger with the component name.
func Component(logger kitlog.Logger, name string) kitlog.Logger {
	return kitlog.With(logger, "component", name)
}
