// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jarvis-tui/internal/ui/styles"
	"github.com/jeranaias/jarvis-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar shows a short status message on the left and key hints on the
// right. Hints are dropped from the end when the terminal is too narrow.
type StatusBar struct {
	Width   int
	Message string
	Hints   []key.Binding

	theme *styles.Theme
}

// NewStatusBar creates an empty status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetHints replaces the displayed key hints.
func (s *StatusBar) SetHints(hints ...key.Binding) {
	s.Hints = hints
}

// View renders the status bar.
func (s *StatusBar) View() string {
	width := max(s.Width, 20)
	inner := width - 2

	msg := s.theme.Muted.Render(util.TruncateWidth(s.Message, inner/2))
	room := inner - lipgloss.Width(msg) - 2

	hints := renderHints(s.theme, s.Hints, room)

	gap := inner - lipgloss.Width(msg) - lipgloss.Width(hints)
	if gap < 1 {
		gap = 1
	}
	return s.theme.StatusBar.Width(width).Render(msg + strings.Repeat(" ", gap) + hints)
}

// renderHints joins enabled bindings as "key desc" pairs that fit in width.
func renderHints(theme *styles.Theme, bindings []key.Binding, width int) string {
	var parts []string
	used := 0
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if h.Key == "" {
			continue
		}
		part := theme.HelpKey.Render(h.Key) + " " + theme.HelpDesc.Render(h.Desc)
		w := lipgloss.Width(part)
		if len(parts) > 0 {
			w += 2
		}
		if used+w > width {
			break
		}
		parts = append(parts, part)
		used += w
	}
	return strings.Join(parts, "  ")
}
