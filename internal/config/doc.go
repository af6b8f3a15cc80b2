// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for jarvis.
//
// # Key Types
//
//   - Config: main configuration structure
//   - APIConfig: backend URL, search depth and chat context limit
//   - UIConfig: theme, markdown rendering, source count, start tab
//   - Watcher: reloads the configuration when the file changes on disk
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (JARVIS_*), including values from .env files
//   - ~/.jarvis/config.toml
//   - ~/.jarvis/config.json
//   - Built-in defaults
//
// # Usage
//
//	_ = config.LoadDotEnv()
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := api.NewClient(cfg.API.BaseURL)
package config
