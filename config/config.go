// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

// Package config holds the small set of global defaults the CLI can
// fall back to when a flag is not given on the command line: the log
// level, the default search depth, and the default transposition table
// size in bits. CLI flags always win over these defaults.
package config

import "github.com/BurntSushi/toml"

// LogLevel is the go-logging level name used by the logging package's
// loggers ("CRITICAL", "ERROR", "WARNING", "NOTICE", "INFO", "DEBUG").
var LogLevel = "NOTICE"

// Settings is the global configuration, optionally overridden by an
// on-disk TOML file via Load.
var Settings = conf{
	DefaultDepth:   6,
	DefaultHashBit: 0,
}

type conf struct {
	LogLevel       string `toml:"log_level"`
	DefaultDepth   int    `toml:"default_depth"`
	DefaultHashBit int    `toml:"default_hash_bits"`
}

var loaded = false

// Load decodes path (if it exists and parses) into Settings, leaving
// the hardcoded defaults in place on any error. It is idempotent; only
// the first call has effect, matching the single-shot setup the
// command line performs at startup.
func Load(path string) error {
	if loaded {
		return nil
	}
	loaded = true

	prior := Settings
	if _, err := toml.DecodeFile(path, &Settings); err != nil {
		Settings = prior
		return err
	}
	if Settings.LogLevel != "" {
		LogLevel = Settings.LogLevel
	}
	return nil
}
