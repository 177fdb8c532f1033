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
		"activeTheme": "default",
	})
	cfg.RegisterDefaults("button", Section{
		"flash_ms":          150,
		"repeat_initial_ms": 400,
		"repeat_ms":         100,
		"repeat_min_ms":     0,
	})
	cfg.RegisterDefaults("input", Section{
		"query_terminal_colors": true,
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "buttonpad":
		cfg.RegisterDefaults("buttonpad", Section{
			"pad_file":      "pad.yaml",
			"watch_pad":     true,
			"persist_state": true,
		})
	}
}
