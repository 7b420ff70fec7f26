// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/migrate.go
// Summary: Moves app sections that older releases kept in texelcine.json.

package config

// appSections lists the sections an app config owns.
var appSections = map[string][]string{
	"titledetail": {"detail", "theme_overrides"},
}

// migrateAppFromSystem copies sections owned by app out of the system
// config. Callers hold mu.
func migrateAppFromSystem(app string, cfg Config) bool {
	if cfg == nil || system == nil {
		return false
	}
	migrated := false
	for _, name := range appSections[app] {
		if copySection(cfg, system, name) {
			migrated = true
		}
	}
	return migrated
}

func copySection(dst Config, src Config, name string) bool {
	if dst == nil || src == nil || name == "" {
		return false
	}
	if _, ok := dst[name]; ok {
		return false
	}
	if section, ok := src[name]; ok {
		dst[name] = Clone(Config{name: section})[name]
		return true
	}
	return false
}
