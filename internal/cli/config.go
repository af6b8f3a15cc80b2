// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - configuration command.
//
// Examples:
//   jarvis config show
//   jarvis config get api.base_url
//   jarvis config set api.search_top_k 8
//   jarvis config init --force

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/jeranaias/jarvis-tui/internal/config"
)

const configUsage = "jarvis config show|get|set|keys|path|init"

// RunConfig dispatches a config subcommand. It reads and writes the
// config file directly rather than the process-wide config.
func RunConfig(env *Env, raw []string) error {
	p := NewArgParser(raw, "force")

	switch p.Subcommand() {
	case "", "show":
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return env.emit("config show", cfg, func() {
			fmt.Fprintln(env.Out, cfg.String())
		})

	case "get":
		key := p.Positional(1)
		if key == "" {
			return &UsageError{Message: "get requires a key", Usage: "jarvis config get <key>"}
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		val, err := cfg.Get(key)
		if err != nil {
			return &NotFoundError{Resource: "config key", ID: key}
		}
		return env.emit("config get", map[string]any{"key": key, "value": val}, func() {
			fmt.Fprintln(env.Out, val)
		})

	case "set":
		key, value := p.Positional(1), p.Positional(2)
		if key == "" || p.PositionalCount() < 3 {
			return &UsageError{Message: "set requires a key and a value", Usage: "jarvis config set <key> <value>"}
		}
		return configSet(env, key, value)

	case "keys":
		keys := config.GetAllKeys()
		return env.emit("config keys", keys, func() {
			for _, k := range keys {
				fmt.Fprintln(env.Out, k)
			}
		})

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return NewCommandError("config", "path", "no config directory", err)
		}
		return env.emit("config path", map[string]string{"path": path}, func() {
			fmt.Fprintln(env.Out, path)
		})

	case "init":
		return configInit(env, p.BoolFlag("force"))

	default:
		return &UsageError{Message: fmt.Sprintf("unknown config subcommand %q", p.Subcommand()), Usage: configUsage}
	}
}

// loadConfig loads the file config, surfacing parse and validation errors.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func configSet(env *Env, key, value string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := cfg.Get(key); err != nil {
		return &NotFoundError{Resource: "config key", ID: key}
	}
	if err := cfg.Set(key, value); err != nil {
		return &ValidationError{Field: key, Value: value, Reason: err.Error()}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return NewCommandError("config", "set", "could not write config file", err)
	}
	config.SetGlobal(cfg)

	return env.emit("config set", map[string]string{"key": key, "value": value}, func() {
		fmt.Fprintln(env.Out, SuccessStyle.Render(fmt.Sprintf("Set %s = %s", key, value)))
	})
}

func configInit(env *Env, force bool) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return NewCommandError("config", "init", "no config directory", err)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return &UsageError{Message: "config file already exists: " + path, Usage: "jarvis config init --force"}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return NewCommandError("config", "init", "cannot inspect config file", err)
	}

	if err := config.SaveTOML(config.Default(), path); err != nil {
		return NewCommandError("config", "init", "could not write config file", err)
	}
	return env.emit("config init", map[string]string{"path": path}, func() {
		fmt.Fprintln(env.Out, SuccessStyle.Render("Wrote "+path))
	})
}
