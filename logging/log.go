// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

// Package logging is a thin helper over "github.com/op/go-logging" so
// every package that needs a logger gets one preconfigured the same
// way, in one line.
package logging

import (
	"log"
	"os"

	"github.com/op/go-logging"

	"github.com/abulmo/mperft-go/config"
)

var (
	engineLog *logging.Logger
	cliLog    *logging.Logger

	format = logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`,
	)
)

func init() {
	engineLog = logging.MustGetLogger("engine")
	cliLog = logging.MustGetLogger("cli")
}

func backend(logger *logging.Logger) {
	b := logging.NewLogBackend(os.Stderr, "", log.Lmsgprefix)
	formatted := logging.NewBackendFormatter(b, format)
	leveled := logging.AddModuleLevel(formatted)
	level, err := logging.LogLevel(config.LogLevel)
	if err != nil {
		level = logging.NOTICE
	}
	leveled.SetLevel(level, "")
	logger.SetBackend(leveled)
}

// Engine returns the logger used by tt to report each table
// allocation.
func Engine() *logging.Logger {
	backend(engineLog)
	return engineLog
}

// CLI returns the logger used by cmd/mperft for startup and option
// diagnostics.
func CLI() *logging.Logger {
	backend(cliLog)
	return cliLog
}
