// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jarvis-tui/internal/ui/styles"
)

// =============================================================================
// CONFIRM DIALOG
// =============================================================================

// ConfirmResultMsg is sent when the user answers a ConfirmDialog.
type ConfirmResultMsg struct {
	// ID identifies which question was answered.
	ID        string
	Confirmed bool
	// Payload is whatever was passed to Show, e.g. the entry to delete.
	Payload any
}

// ConfirmDialog is a modal yes/no question.
type ConfirmDialog struct {
	id      string
	title   string
	message string
	payload any

	visible  bool
	selected int // 0=Yes, 1=No
	width    int
	height   int

	theme *styles.Theme
}

// Button options
const (
	ButtonConfirm = 0
	ButtonCancel  = 1
	buttonCount   = 2
)

// NewConfirmDialog creates a hidden confirm dialog.
func NewConfirmDialog(theme *styles.Theme) *ConfirmDialog {
	return &ConfirmDialog{theme: theme, selected: ButtonCancel}
}

// =============================================================================
// CONFIRM DIALOG METHODS
// =============================================================================

// Show displays the dialog. Cancel is preselected so a stray Enter is safe.
func (d *ConfirmDialog) Show(id, title, message string, payload any) {
	d.id = id
	d.title = title
	d.message = message
	d.payload = payload
	d.visible = true
	d.selected = ButtonCancel
}

// Hide hides the dialog without answering.
func (d *ConfirmDialog) Hide() {
	d.visible = false
	d.payload = nil
}

// IsVisible returns whether the dialog is visible.
func (d *ConfirmDialog) IsVisible() bool {
	return d.visible
}

// SetSize updates the dialog dimensions.
func (d *ConfirmDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// =============================================================================
// BUBBLE TEA METHODS
// =============================================================================

// Update handles key events. The bool reports whether the key was consumed.
func (d *ConfirmDialog) Update(msg tea.Msg) (tea.Cmd, bool) {
	if !d.visible {
		return nil, false
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}

	switch keyMsg.String() {
	case "left", "h", "right", "l", "tab", "shift+tab":
		d.selected = (d.selected + 1) % buttonCount
		return nil, true

	case "enter", " ":
		return d.answer(d.selected == ButtonConfirm), true

	case "y", "Y":
		return d.answer(true), true

	case "n", "N", "esc":
		return d.answer(false), true
	}

	// Modal: swallow everything else.
	return nil, true
}

func (d *ConfirmDialog) answer(confirmed bool) tea.Cmd {
	result := ConfirmResultMsg{ID: d.id, Confirmed: confirmed, Payload: d.payload}
	d.Hide()
	return func() tea.Msg {
		return result
	}
}

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the dialog centered in the available area.
func (d *ConfirmDialog) View() string {
	if !d.visible {
		return ""
	}

	boxWidth := 56
	if d.width > 0 && d.width < 66 {
		boxWidth = d.width - 10
	}
	if boxWidth < 30 {
		boxWidth = 30
	}

	var content strings.Builder
	content.WriteString(lipgloss.NewStyle().Foreground(styles.Amber).Bold(true).Render(d.title))
	content.WriteString("\n\n")
	content.WriteString(lipgloss.NewStyle().Width(boxWidth - 6).Render(d.message))
	content.WriteString("\n\n")
	content.WriteString(d.renderButtons())
	content.WriteString("\n\n")
	content.WriteString(d.theme.Muted.Italic(true).Render("y=Yes  n=No  Tab=Switch"))

	box := d.theme.Dialog.Width(boxWidth).Render(content.String())

	if d.width > 0 && d.height > 0 {
		return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (d *ConfirmDialog) renderButtons() string {
	inactive := d.theme.ButtonSecondary.MarginRight(1)

	yes := inactive.Render("Yes")
	if d.selected == ButtonConfirm {
		yes = d.theme.ButtonDanger.Bold(true).MarginRight(1).Render("Yes")
	}
	no := inactive.Render("No")
	if d.selected == ButtonCancel {
		no = d.theme.ButtonPrimary.Bold(true).MarginRight(1).Render("No")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, yes, no)
}
