// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Process-wide config store for texelcine.json and per-app files.
// Notes: Files are created from the embedded defaults on first use. Callers
// receive live maps; mutate them and call SaveSystem/SaveApp to persist.

package config

import (
	"log"
	"sync"
)

const systemConfigName = "texelcine.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu      sync.RWMutex
	once    sync.Once
	system  Config
	apps    map[string]Config
	loadErr error
)

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	apps = make(map[string]Config)
	loadErr = loadSystemLocked()
}

// Err reports the last failure to load texelcine.json. Defaults are in
// effect when it is non-nil.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the system configuration.
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return system
}

// App returns the config of the named app, loading it on first access.
func App(name string) Config {
	if name == "" {
		return nil
	}
	once.Do(initStore)

	mu.RLock()
	cfg, ok := apps[name]
	mu.RUnlock()
	if ok {
		return cfg
	}

	mu.Lock()
	defer mu.Unlock()
	if cfg, ok := apps[name]; ok {
		return cfg
	}
	cfg, err := loadAppLocked(name)
	if err != nil {
		log.Printf("Config: Failed to load app %q config: %v", name, err)
	}
	apps[name] = cfg
	return cfg
}

// Reload rereads texelcine.json and every app config loaded so far. An app
// that fails to reload keeps its previous values.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()

	loadErr = loadSystemLocked()
	for name, prev := range apps {
		cfg, err := loadAppLocked(name)
		if err != nil {
			log.Printf("Config: Failed to reload app %q config: %v", name, err)
			cfg = prev
		}
		apps[name] = cfg
	}
	return loadErr
}

// SaveSystem writes the in-memory system config to disk.
func SaveSystem() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	path, err := systemConfigPath()
	if err != nil {
		return err
	}
	return writeConfig(path, system)
}

// SaveApp writes the named app config to disk, creating it from defaults
// when it was never loaded.
func SaveApp(name string) error {
	if name == "" {
		return nil
	}
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	cfg, ok := apps[name]
	if !ok {
		cfg = make(Config)
		applyAppDefaults(name, cfg)
		apps[name] = cfg
	}
	path, err := appConfigPath(name)
	if err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

// SetSystem replaces the in-memory system config with a copy of cfg.
func SetSystem(cfg Config) {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	system = Clone(cfg)
}

// SetApp replaces the in-memory config of an app with a copy of cfg.
func SetApp(name string, cfg Config) {
	if name == "" {
		return
	}
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	apps[name] = Clone(cfg)
}
