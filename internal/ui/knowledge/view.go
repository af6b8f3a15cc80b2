// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package knowledge

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jarvis-tui/internal/model"
	"github.com/jeranaias/jarvis-tui/internal/ui/components"
	"github.com/jeranaias/jarvis-tui/internal/util"
)

// Empty-list texts.
const (
	EmptyNoMatches = "No entries found matching your search"
	EmptyNoEntries = "No knowledge entries yet. Add one to get started!"
)

// =============================================================================
// MAIN VIEW
// =============================================================================

// View renders the toolbar, search box, form, feedback and entry list.
func (m Model) View() string {
	if m.confirm.IsVisible() {
		return m.confirm.View()
	}

	top := m.renderTop()
	listHeight := m.height - lipgloss.Height(top)
	if m.height <= 0 {
		listHeight = 0
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, m.renderList(listHeight))
}

// renderTop renders everything above the entry list.
func (m Model) renderTop() string {
	parts := []string{m.renderToolbar(), m.search.View()}
	if m.formOpen {
		parts = append(parts, m.form.View(m.theme))
	}
	if m.errText != "" {
		parts = append(parts, components.ErrorBanner(m.theme, m.errText, m.width))
	}
	if m.notice != "" {
		parts = append(parts, m.theme.Muted.Render(m.notice))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderToolbar() string {
	title := m.theme.FormTitle.Render("Knowledge Base")

	count := len(m.entries)
	visible := len(m.Visible())
	info := fmt.Sprintf("%d entries", count)
	if visible != count {
		info = fmt.Sprintf("%d of %d entries", visible, count)
	}
	if m.loading {
		info = m.spinner.View() + " Loading..."
	}

	button := m.theme.ButtonPrimary.Render("Add Entry")
	left := title + "  " + m.theme.Muted.Render(info)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(button)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + button
}

// =============================================================================
// ENTRY LIST
// =============================================================================

// renderList renders the visible window of entries starting at offset.
// A non-positive height renders every entry.
func (m Model) renderList(height int) string {
	visible := m.Visible()
	if len(visible) == 0 {
		if m.loading {
			return m.theme.Muted.Render("Loading...")
		}
		if strings.TrimSpace(m.search.Value()) != "" {
			return m.theme.EmptySubtitle.Render(EmptyNoMatches)
		}
		return m.theme.EmptySubtitle.Render(EmptyNoEntries)
	}

	var blocks []string
	used := 0
	for i := m.offset; i < len(visible); i++ {
		block := m.renderEntry(visible[i], i == m.cursor)
		h := lipgloss.Height(block) + 1
		if height > 0 && used+h > height && len(blocks) > 0 {
			break
		}
		blocks = append(blocks, block)
		used += h
	}
	return strings.Join(blocks, "\n\n")
}

// renderEntry renders one entry. The selected entry shows its full
// content; others are clamped to two lines.
func (m Model) renderEntry(e model.KnowledgeEntry, selected bool) string {
	width := max(m.width-4, 20)

	meta := []string{m.theme.CategoryBadge.Render(e.Category.Label())}
	for _, tag := range e.Tags {
		meta = append(meta, m.theme.Tag.Render("#"+tag))
	}
	if e.Source != "" {
		meta = append(meta, m.theme.EntryMeta.Render("from "+util.TruncateWidth(e.Source, 40)))
	}
	if !e.UpdatedAt.IsZero() {
		meta = append(meta, m.theme.EntryMeta.Render("updated "+e.UpdatedAt.Format("2006-01-02 15:04")))
	}

	content := e.Content
	if !selected {
		content = util.ClampLines(content, 2)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.EntryTitle.Render(util.TruncateWidth(e.Title, width)),
		m.theme.EntryContent.Width(width).Render(content),
		strings.Join(meta, "  "),
	)
	if selected {
		return m.theme.EntrySelected.Render(body)
	}
	return lipgloss.NewStyle().PaddingLeft(2).Render(body)
}

// ensureVisible adjusts offset so the cursor entry is on screen.
func (m *Model) ensureVisible() {
	visible := m.Visible()
	if m.cursor >= len(visible) {
		m.cursor = max(len(visible)-1, 0)
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.height <= 0 {
		return
	}

	avail := m.height - lipgloss.Height(m.renderTop())
	for m.offset < m.cursor {
		used := 0
		for i := m.offset; i <= m.cursor; i++ {
			used += lipgloss.Height(m.renderEntry(visible[i], i == m.cursor)) + 1
		}
		if used <= avail {
			break
		}
		m.offset++
	}
}
