// jarvis - terminal client for the Jarvis knowledge assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/jarvis-tui/internal/api"
	"github.com/jeranaias/jarvis-tui/internal/cli"
	"github.com/jeranaias/jarvis-tui/internal/config"
	"github.com/jeranaias/jarvis-tui/internal/ui/app"
	"github.com/jeranaias/jarvis-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// configDebounce coalesces the burst of events an editor save produces.
const configDebounce = 250 * time.Millisecond

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdStatus:
		cli.HandleStatus(args)
	case cli.CmdKB:
		cli.HandleKB(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		cli.HandleUnknown(args)
	}
}

// runTUI starts the full-screen interface.
func runTUI(args cli.Args) {
	cfg := config.Global().Clone()
	if args.APIURL != "" {
		if err := config.ValidateBaseURL(args.APIURL); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --api-url: %v\n", err)
			os.Exit(cli.ExitUsageError)
		}
		cfg.API.BaseURL = args.APIURL
	}

	closeLog := setupLogging(args.Verbose)
	defer closeLog()

	styles.ApplyMode(cfg.UI.Theme)
	theme := styles.NewTheme()

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:      cfg.API.BaseURL,
		ContextLimit: cfg.API.ContextLimit,
		Verbose:      args.Verbose,
	})

	opts := app.Options{
		StartTab: app.ParseTab(cfg.UI.StartTab),
		Chat:     app.ChatOptions(cfg),
		TopK:     cfg.API.SearchTopK,
	}
	if args.KB {
		opts.StartTab = app.TabKnowledge
	}

	if watcher := watchConfig(); watcher != nil {
		defer watcher.Close()
		opts.Reloads = watcher.Reloads()
	}

	log.Printf("STARTUP: jarvis %s, backend %s", Version, cfg.API.BaseURL)

	p := tea.NewProgram(app.New(client, theme, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running jarvis: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}
}

// setupLogging sends the standard logger to ~/.jarvis/debug.log when
// JARVIS_DEBUG is set or --verbose is given, and discards it otherwise
// so log lines never land on the alternate screen.
func setupLogging(verbose bool) func() {
	if !verbose && os.Getenv("JARVIS_DEBUG") == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}

	dir, err := config.ConfigDir()
	if err == nil {
		err = config.EnsureConfigDir()
	}
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}

	f, err := tea.LogToFile(filepath.Join(dir, "debug.log"), "jarvis")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open debug log: %v\n", err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	return func() { f.Close() }
}

// watchConfig starts the config file watcher, or returns nil when the
// config directory cannot be watched.
func watchConfig() *config.Watcher {
	if err := config.EnsureConfigDir(); err != nil {
		log.Printf("CONFIG: not watching: %v", err)
		return nil
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return nil
	}
	w, err := config.NewWatcher(dir, configDebounce)
	if err != nil {
		log.Printf("CONFIG: not watching %s: %v", dir, err)
		return nil
	}
	return w
}
