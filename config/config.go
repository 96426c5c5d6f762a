// Copyright © 2025 Texwin contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: System configuration store for texwin.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/framegrace/texwin/dump"
)

const configName = "texwin.json"

// Config holds the tunables shared by the CLI and embedding applications.
type Config struct {
	// DumpDir is where bare dump files are written by default.
	DumpDir string `json:"dump_dir"`

	// StorePath is the dump archive database location.
	StorePath string `json:"store_path"`

	// MaxRows and MaxCols bound the window geometry accepted when reading
	// dumps. Zero means the package default.
	MaxRows int `json:"max_rows"`
	MaxCols int `json:"max_cols"`
}

var (
	mu      sync.RWMutex
	once    sync.Once
	system  Config
	loadErr error
)

// Default returns the built-in configuration rooted under ~/.texwin.
func Default() Config {
	base := Dir()
	return Config{
		DumpDir:   base,
		StorePath: filepath.Join(base, "dumps.db"),
		MaxRows:   dump.DefaultLimits.MaxRows,
		MaxCols:   dump.DefaultLimits.MaxCols,
	}
}

// Dir returns the texwin configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".texwin"
	}
	return filepath.Join(home, ".texwin")
}

// System returns the system configuration, loading it on first use.
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return system
}

// Err returns the most recent system config load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

func initStore() {
	cfg, err := Load(filepath.Join(Dir(), configName))
	mu.Lock()
	defer mu.Unlock()
	system = cfg
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Config: Failed to load system config: %v", err)
		loadErr = err
	}
}

// Load reads a config file, filling unset fields from Default. A missing file
// yields the defaults along with the os.IsNotExist error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	if cfg.DumpDir == "" {
		cfg.DumpDir = Default().DumpDir
	}
	if cfg.StorePath == "" {
		cfg.StorePath = Default().StorePath
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = dump.DefaultLimits.MaxRows
	}
	if cfg.MaxCols <= 0 {
		cfg.MaxCols = dump.DefaultLimits.MaxCols
	}
	return cfg, nil
}

// Limits converts the configured geometry bounds to dump limits.
func (c Config) Limits() dump.Limits {
	return dump.Limits{MaxRows: c.MaxRows, MaxCols: c.MaxCols}
}
