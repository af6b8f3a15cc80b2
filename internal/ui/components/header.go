// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the shared UI components for the jarvis TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jarvis-tui/internal/model"
	"github.com/jeranaias/jarvis-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// HealthState is what the header knows about the backend.
type HealthState int

const (
	HealthChecking HealthState = iota
	HealthKnown
	HealthUnreachable
)

// Header is the chat title bar with the backend health badge.
type Header struct {
	Title    string
	Subtitle string
	Width    int

	state  HealthState
	health model.HealthStatus
	theme  *styles.Theme
}

// NewHeader creates a header with the default titles.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:    "Jarvis Assistant",
		Subtitle: "Your Personal AI Assistant",
		Width:    80,
		theme:    theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetHealth records a successful health check.
func (h *Header) SetHealth(status model.HealthStatus) {
	h.state = HealthKnown
	h.health = status
}

// SetUnreachable records a failed health check.
func (h *Header) SetUnreachable() {
	h.state = HealthUnreachable
}

// State returns the current health state.
func (h *Header) State() HealthState {
	return h.state
}

// Badge renders the health indicator: a check and the mode label when the
// backend is healthy, a warning sign otherwise.
func (h *Header) Badge() string {
	switch h.state {
	case HealthKnown:
		if h.health.IsHealthy() {
			return h.theme.BadgeHealthy.Render(styles.StatusIndicators.Success + " " + h.health.ModeLabel())
		}
		return h.theme.BadgeDegraded.Render(styles.StatusIndicators.Warning + " " + h.health.ModeLabel())
	case HealthUnreachable:
		return h.theme.BadgeDegraded.Render(styles.StatusIndicators.Warning + " Offline")
	default:
		return h.theme.BadgeUnknown.Render("checking...")
	}
}

// View renders the header.
func (h *Header) View() string {
	width := max(h.Width, 20)

	left := lipgloss.JoinVertical(lipgloss.Left,
		h.theme.HeaderTitle.Render(h.Title),
		h.theme.HeaderSubtitle.Render(h.Subtitle),
	)
	badge := h.Badge()

	gap := width - lipgloss.Width(left) - lipgloss.Width(badge) - 2
	if gap < 1 {
		gap = 1
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), badge)

	return h.theme.Header.Width(width).Render(row)
}
