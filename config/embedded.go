// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Parsed copies of the JSON files shipped in defaults/.

package config

import (
	"encoding/json"
	"sync"

	"github.com/framegrace/texelcine/defaults"
)

// embedded caches parsed defaults. The key "" holds the system file.
var (
	embeddedMu sync.Mutex
	embedded   = make(map[string]Config)
)

func parseEmbedded(app string) (Config, error) {
	embeddedMu.Lock()
	defer embeddedMu.Unlock()
	if cfg, ok := embedded[app]; ok {
		return cfg, nil
	}

	var (
		data []byte
		err  error
	)
	if app == "" {
		data, err = defaults.SystemConfig()
	} else {
		data, err = defaults.AppConfig(app)
		if err != nil {
			// Apps without shipped defaults rely on applyAppDefaults.
			embedded[app] = nil
			return nil, nil
		}
	}
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	embedded[app] = cfg
	return cfg, nil
}

// defaultSystemConfig returns a private copy of the shipped texelcine.json.
func defaultSystemConfig() Config {
	cfg, err := parseEmbedded("")
	if err != nil {
		return nil
	}
	return Clone(cfg)
}

// defaultAppConfig returns a private copy of apps/<app>/config.json, or nil.
func defaultAppConfig(app string) Config {
	if app == "" {
		return nil
	}
	cfg, err := parseEmbedded(app)
	if err != nil {
		return nil
	}
	return Clone(cfg)
}
