// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Reads, seeds and writes the config files behind the store.

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// configFile describes how one config file is loaded.
type configFile struct {
	label    string
	path     string
	fallback func() Config     // shipped defaults, may return nil
	seed     func(Config) bool // fills a missing file from elsewhere
	apply    func(Config)      // code defaults, never overwrite
}

// load reads f.path. A missing or empty file is built from seed or
// fallback and written back. The returned config is never nil.
func load(f configFile) (Config, error) {
	cfg, exists, err := readConfig(f.path)
	if err != nil {
		log.Printf("Config: Failed to read %s %s: %v", f.label, f.path, err)
	}
	if err == nil && len(cfg) > 0 {
		f.apply(cfg)
		log.Printf("Config: Loaded %s from %s", f.label, f.path)
		return cfg, nil
	}
	if err != nil {
		// Keep an unreadable file on disk for the user to fix.
		cfg = make(Config)
		f.apply(cfg)
		return cfg, err
	}

	cfg = make(Config)
	fill := f.seed != nil && f.seed(cfg)
	if fill {
		log.Printf("Config: Moved %s sections out of %s", f.label, systemConfigName)
	} else if def := f.fallback(); def != nil {
		cfg = def
		fill = true
	}
	f.apply(cfg)
	if !fill && exists {
		return cfg, nil
	}
	if werr := writeConfig(f.path, cfg); werr != nil {
		log.Printf("Config: Failed to write %s: %v", f.label, werr)
		return cfg, werr
	}
	return cfg, nil
}

func loadSystemLocked() error {
	path, err := systemConfigPath()
	if err != nil {
		log.Printf("Config: Failed to resolve system config path: %v", err)
		system = make(Config)
		applySystemDefaults(system)
		return err
	}
	system, err = load(configFile{
		label:    "system config",
		path:     path,
		fallback: defaultSystemConfig,
		apply:    applySystemDefaults,
	})
	return err
}

func loadAppLocked(name string) (Config, error) {
	apply := func(cfg Config) { applyAppDefaults(name, cfg) }
	path, err := appConfigPath(name)
	if err != nil {
		cfg := make(Config)
		apply(cfg)
		return cfg, err
	}
	return load(configFile{
		label:    fmt.Sprintf("app %q config", name),
		path:     path,
		fallback: func() Config { return defaultAppConfig(name) },
		seed:     func(cfg Config) bool { return migrateAppFromSystem(name, cfg) },
		apply:    apply,
	})
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
