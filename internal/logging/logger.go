// Package logging holds the process-wide slog logger used by the compiler,
// the front-ends and the CLI. SCHEMAC_DEBUG picks the starting level.
package logging

import (
	"log/slog"
	"os"
)

var (
	logLevel = new(slog.LevelVar)
	logger   *slog.Logger
)

func init() {
	logLevel.Set(levelFromEnv(os.Getenv("SCHEMAC_DEBUG")))
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// Logger returns the shared logger.
func Logger() *slog.Logger { return logger }

// SetLogLevel changes the level of the shared logger.
func SetLogLevel(level slog.Level) { logLevel.Set(level) }

// Level reports the current level.
func Level() slog.Level { return logLevel.Level() }

// levelFromEnv reads SCHEMAC_DEBUG. Digits count up in verbosity from 0
// (errors only) to 3 (debug); slog level names such as "info" or "DEBUG-2"
// are accepted too. Anything else leaves the logger at warn.
func levelFromEnv(v string) slog.Level {
	if lvl, ok := map[string]slog.Level{
		"0": slog.LevelError,
		"1": slog.LevelWarn,
		"2": slog.LevelInfo,
		"3": slog.LevelDebug,
	}[v]; ok {
		return lvl
	}
	var lvl slog.Level
	if v != "" && lvl.UnmarshalText([]byte(v)) == nil {
		return lvl
	}
	return slog.LevelWarn
}
