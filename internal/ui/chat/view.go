// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jarvis-tui/internal/model"
	"github.com/jeranaias/jarvis-tui/internal/ui/components"
)

// inputHeight is the rendered height of the bordered input box.
const inputHeight = 3

// =============================================================================
// MAIN VIEW
// =============================================================================

// View renders the transcript, any banner or notice, and the input box.
func (m Model) View() string {
	parts := []string{m.viewport.View()}

	if m.notice != "" {
		parts = append(parts, m.theme.Muted.Render(m.notice))
	}
	if m.errText != "" {
		parts = append(parts, components.ErrorBanner(m.theme, m.errText, m.width))
	}
	parts = append(parts, m.renderInput())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) bannerHeight() int {
	h := 0
	if m.notice != "" {
		h++
	}
	if m.errText != "" {
		h += lipgloss.Height(components.ErrorBanner(m.theme, m.errText, m.width))
	}
	return h
}

func (m Model) renderInput() string {
	style := m.theme.InputContainer
	if m.state == StateSending {
		style = m.theme.InputDisabled
	}
	return style.Width(max(m.width-2, 10)).Render(m.input.View())
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// renderTranscript renders every message plus the thinking indicator.
func (m Model) renderTranscript() string {
	if m.conversation.IsEmpty() && m.state != StateSending {
		return m.renderEmpty()
	}

	var b strings.Builder
	for i, msg := range m.conversation.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.renderMessage(msg))
	}

	if m.state == StateSending {
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View() + " " + m.theme.Thinking.Render("Thinking..."))
	}
	return b.String()
}

func (m Model) renderEmpty() string {
	block := lipgloss.JoinVertical(lipgloss.Center,
		m.theme.EmptyTitle.Render("Welcome to Jarvis"),
		"",
		m.theme.EmptySubtitle.Render("Ask me anything. I'm here to help!"),
	)
	if m.width <= 0 || m.viewport.Height <= 0 {
		return block
	}
	return lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, block)
}

func (m Model) renderMessage(msg model.Message) string {
	bubbleWidth := m.theme.BubbleWidth()
	if m.width > 0 && bubbleWidth > m.width-2 {
		bubbleWidth = max(m.width-2, 10)
	}

	label := m.theme.RoleLabel.Render(msg.Role.DisplayName()) + " " +
		m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))

	if msg.IsUser() {
		bubble := m.theme.UserBubble.Width(bubbleWidth).Render(msg.Content)
		block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
		if m.width > 0 {
			return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, block)
		}
		return block
	}

	// Border and padding take four columns.
	body := msg.Content
	if m.opts.RenderMarkdown {
		body = m.markdown.Render(msg.Content, bubbleWidth-4)
	}
	parts := []string{label, m.theme.AssistantBubble.Width(bubbleWidth).Render(body)}

	if sources := m.renderSources(msg); sources != "" {
		parts = append(parts, sources)
	}
	if msg.HasConfidence() {
		parts = append(parts, m.theme.Confidence.Render(
			fmt.Sprintf("Confidence: %d%%", msg.ConfidencePercent())))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderSources lists the first MaxSources cited sources.
func (m Model) renderSources(msg model.Message) string {
	sources := msg.TopSources(m.opts.MaxSources)
	if len(sources) == 0 {
		return ""
	}
	lines := []string{m.theme.SourceLabel.Render("Sources:")}
	for i, src := range sources {
		lines = append(lines, m.theme.SourceItem.Render("  - "+src.DisplayTitle(i)))
	}
	return strings.Join(lines, "\n")
}
