// Package logging is a thin helper around "github.com/op/go-logging" that
// reduces every other package's boilerplate to a single GetLog call. It
// configures a stdout backend with a compact formatter and wires the
// level from internal/config, mirroring how the rest of the corpus keeps
// one global logger per subsystem.
package logging

import (
	"log"
	"os"

	"github.com/op/go-logging"

	"github.com/lmarchetti/pike/internal/config"
)

var (
	standardLog *logging.Logger
	searchLog   *logging.Logger
	testLog     *logging.Logger

	format = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortfile:-16.16s} %{level:-7.7s}:  %{message}`,
	)
)

func init() {
	standardLog = logging.MustGetLogger("pike")
	searchLog = logging.MustGetLogger("search")
	testLog = logging.MustGetLogger("test")
}

func backend(level logging.Level) logging.Backend {
	b := logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix)
	f := logging.NewBackendFormatter(b, format)
	leveled := logging.AddModuleLevel(f)
	leveled.SetLevel(level, "")
	return leveled
}

// GetLog returns the standard engine-wide logger, its level driven by
// config.LogLevel.
func GetLog() *logging.Logger {
	standardLog.SetBackend(backend(logging.Level(config.LogLevel)))
	return standardLog
}

// GetSearchLog returns the logger used by the search package to report
// per-iteration depth/nodes/best-move summaries without cluttering the
// standard log.
func GetSearchLog() *logging.Logger {
	searchLog.SetBackend(backend(logging.Level(config.SearchLogLevel)))
	return searchLog
}

// GetTestLog returns a logger for use from _test.go files.
func GetTestLog() *logging.Logger {
	testLog.SetBackend(backend(logging.Level(config.TestLogLevel)))
	return testLog
}
