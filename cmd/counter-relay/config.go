// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"os"
)

type Config struct {
	HTTPHost string `json:"httpHost"`
	HTTPPort int    `json:"httpPort"`

	// LogLevel is a zap level name ("debug", "info", "warn", "error").
	LogLevel string `json:"logLevel"`

	// LogFile enables rotating file output when non-empty; logs always go
	// to stderr as well.
	LogFile       string `json:"logFile"`
	LogMaxSizeMB  int    `json:"logMaxSizeMB"`
	LogMaxBackups int    `json:"logMaxBackups"`

	// GenesisFile holds initial allocations and rules; empty means
	// defaults with no allocations.
	GenesisFile string `json:"genesisFile"`

	AllowedOrigins []string `json:"allowedOrigins"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTPHost:       "127.0.0.1",
		HTTPPort:       9650,
		LogLevel:       "info",
		LogMaxSizeMB:   64,
		LogMaxBackups:  3,
		AllowedOrigins: []string{"*"},
	}
}

// LoadConfig reads [path] over the defaults. An empty path returns the
// defaults untouched.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}
