// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the jarvis TUI.
//
// Colors are lipgloss.AdaptiveColor values so the same palette works on
// dark and light terminals. Theme bundles the derived styles used by the
// chat and knowledge views; ApplyMode pins the background mode when the
// user configures "dark" or "light" instead of "auto".
package styles
