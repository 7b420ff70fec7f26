// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for system and app configuration files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"defaultApp":   "titledetail",
		"defaultTitle": "harbor-lights",
	})
	cfg.RegisterDefaults("catalog", Section{
		"db_path":   "",
		"seed_demo": true,
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "titledetail":
		cfg.RegisterDefaults("detail", Section{
			"header_rows":           8,
			"overlay_rows":          1,
			"tab_bar_rows":          1,
			"backdrop_fade_divisor": 0.8,
			"title_fade_divisor":    2.0,
			"min_scale":             0.98,
			"max_stretch_scale":     3.0,
			"overscroll_rows":       3,
			"bounce_ms":             220,
			"easing":                "smoothstep",
			"wheel_rows":            3,
		})
		cfg.RegisterDefaults("theme_overrides", Section{})
	}
}
