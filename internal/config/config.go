// Package config holds globally available configuration values for the
// engine: search tuning, evaluation constants, and log levels. Values come
// from hardcoded defaults, optionally overridden by a TOML file, and
// finally by command-line flags applied by the caller after Setup runs.
package config

import (
	"log"

	"github.com/BurntSushi/toml"
)

// ConfFile is the path to the config file consulted by Setup. Callers may
// set this (e.g. from a -config flag) before calling Setup.
var ConfFile = "./config.toml"

// LogLevel, SearchLogLevel and TestLogLevel are op/go-logging levels
// (0=CRITICAL .. 5=DEBUG). They are not read from the config file; the
// caller may overwrite them (e.g. from command-line flags) before the
// first logger is constructed.
var (
	LogLevel       = 4
	SearchLogLevel = 4
	TestLogLevel   = 4
)

// Settings is the global, process-wide configuration.
var Settings conf

var initialized = false

type conf struct {
	Search searchConfiguration
	Eval   evalConfiguration
}

type searchConfiguration struct {
	// Opening book
	UseBook    bool
	BookPath   string
	BookFile   string

	// Transposition table size in number of entries, rounded down to the
	// nearest power of two by the tt package.
	TTEntries int

	// Search shape
	MaxExtensions   int
	QuiescenceDepth int

	// OpeningPlyWindow is how many full moves (from the start of the
	// game) the opening book is consulted for.
	OpeningPlyWindow int
}

type evalConfiguration struct {
	FullmovesEndgame int
	PawnRankBonus    int
}

func defaults() {
	Settings.Search.UseBook = true
	Settings.Search.BookPath = "./assets/books"
	Settings.Search.BookFile = "book.txt"
	Settings.Search.TTEntries = 1 << 22
	Settings.Search.MaxExtensions = 4
	Settings.Search.QuiescenceDepth = 5
	Settings.Search.OpeningPlyWindow = 5

	Settings.Eval.FullmovesEndgame = 30
	Settings.Eval.PawnRankBonus = 10
}

// Setup reads the configuration file (if present) over hardcoded defaults.
// A missing or malformed file is not fatal: it is logged to the standard
// library logger (loggers from internal/logging are not yet configured at
// this point in startup) and defaults are kept.
func Setup() {
	if initialized {
		return
	}
	defaults()
	if _, err := toml.DecodeFile(ConfFile, &Settings); err != nil {
		log.Println("config file not found or invalid, using defaults (", err, ")")
	}
	initialized = true
}
