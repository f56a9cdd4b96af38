//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"log/slog"
	"os"
)

type Verbosity int

const (
	VerbosityWarning = Verbosity(iota)
	VerbosityNotice
	VerbosityInfo
	VerbosityDebug
)

var verbosity = VerbosityWarning

func SetVerbosity(level Verbosity) {
	verbosity = level
}

func TraceVerbosef(level Verbosity, format string, args ...interface{}) {
	if level <= verbosity {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// LogLevel is the slog level matching a verbosity
func (level Verbosity) LogLevel() slog.Level {
	switch {
	case level >= VerbosityDebug:
		return slog.LevelDebug
	case level >= VerbosityNotice:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}
