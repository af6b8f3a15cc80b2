// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package knowledge

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jarvis-tui/internal/model"
	"github.com/jeranaias/jarvis-tui/internal/ui/styles"
)

// =============================================================================
// FORM FIELDS
// =============================================================================

// Field identifies one input of the entry form.
type Field int

const (
	FieldTitle Field = iota
	FieldContent
	FieldCategory
	FieldTags
	FieldSource
	fieldCount
)

// =============================================================================
// ENTRY FORM
// =============================================================================

// Form is the add/edit entry form. A zero editingID means "add".
type Form struct {
	title    textinput.Model
	content  textarea.Model
	tags     textinput.Model
	source   textinput.Model
	category model.Category

	focus     Field
	editingID int
	width     int
}

// NewForm creates an empty form focused on the title field.
func NewForm() Form {
	title := textinput.New()
	title.Placeholder = "Entry title"
	title.CharLimit = 200

	content := textarea.New()
	content.Placeholder = "Entry content"
	content.ShowLineNumbers = false
	content.CharLimit = 0
	content.SetHeight(5)

	tags := textinput.New()
	tags.Placeholder = "comma, separated, tags"

	source := textinput.New()
	source.Placeholder = "Optional source"

	f := Form{
		title:    title,
		content:  content,
		tags:     tags,
		source:   source,
		category: model.CategoryGeneral,
	}
	f.SetWidth(60)
	f.setFocus(FieldTitle)
	return f
}

// Reset clears every field and leaves edit mode.
func (f *Form) Reset() {
	f.title.Reset()
	f.content.Reset()
	f.tags.Reset()
	f.source.Reset()
	f.category = model.CategoryGeneral
	f.editingID = 0
	f.setFocus(FieldTitle)
}

// Load fills the form from an existing entry and switches to edit mode.
func (f *Form) Load(entry model.KnowledgeEntry) {
	f.Reset()
	f.title.SetValue(entry.Title)
	f.content.SetValue(entry.Content)
	f.tags.SetValue(model.JoinTags(entry.Tags))
	f.source.SetValue(entry.Source)
	if entry.Category != "" {
		f.category = entry.Category
	}
	f.editingID = entry.ID
}

// Editing reports whether the form updates an existing entry.
func (f Form) Editing() bool { return f.editingID != 0 }

// EditingID returns the id of the entry being edited, or zero.
func (f Form) EditingID() int { return f.editingID }

// Focused returns the focused field.
func (f Form) Focused() Field { return f.focus }

// Category returns the selected category.
func (f Form) Category() model.Category { return f.category }

// Input builds the request body from the current field values.
func (f Form) Input() model.EntryInput {
	return model.EntryInput{
		Title:    strings.TrimSpace(f.title.Value()),
		Content:  strings.TrimSpace(f.content.Value()),
		Category: f.category,
		Tags:     model.ParseTags(f.tags.Value()),
		Source:   strings.TrimSpace(f.source.Value()),
	}
}

// SetWidth resizes the inputs to fit width columns.
func (f *Form) SetWidth(width int) {
	f.width = width
	inner := max(width-6, 20)
	f.title.Width = inner
	f.tags.Width = inner
	f.source.Width = inner
	f.content.SetWidth(inner)
}

// NextField moves focus forward, wrapping around.
func (f *Form) NextField() tea.Cmd {
	return f.setFocus((f.focus + 1) % fieldCount)
}

// PrevField moves focus backward, wrapping around.
func (f *Form) PrevField() tea.Cmd {
	return f.setFocus((f.focus - 1 + fieldCount) % fieldCount)
}

// CycleCategory moves the category selection by delta.
func (f *Form) CycleCategory(delta int) {
	if delta < 0 {
		f.category = f.category.Prev()
	} else {
		f.category = f.category.Next()
	}
}

func (f *Form) setFocus(field Field) tea.Cmd {
	f.focus = field
	f.title.Blur()
	f.content.Blur()
	f.tags.Blur()
	f.source.Blur()

	switch field {
	case FieldTitle:
		return f.title.Focus()
	case FieldContent:
		return f.content.Focus()
	case FieldTags:
		return f.tags.Focus()
	case FieldSource:
		return f.source.Focus()
	}
	return nil
}

// Update forwards a message to the focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case FieldTitle:
		f.title, cmd = f.title.Update(msg)
	case FieldContent:
		f.content, cmd = f.content.Update(msg)
	case FieldTags:
		f.tags, cmd = f.tags.Update(msg)
	case FieldSource:
		f.source, cmd = f.source.Update(msg)
	}
	return cmd
}

// =============================================================================
// FORM VIEW
// =============================================================================

// View renders the form inside its container.
func (f Form) View(theme *styles.Theme) string {
	heading := "Add New Entry"
	action := "Add"
	if f.Editing() {
		heading = "Edit Entry"
		action = "Update"
	}

	label := func(field Field, text string) string {
		if f.focus == field {
			return theme.FieldFocused.Render("> " + text)
		}
		return theme.FieldLabel.Render("  " + text)
	}

	category := theme.CategoryBadge.Render(f.category.Label())
	if f.focus == FieldCategory {
		category = theme.FieldFocused.Render("< ") + category + theme.FieldFocused.Render(" >")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		theme.ButtonPrimary.Render(action),
		" ",
		theme.ButtonSecondary.Render("Cancel"),
		"  ",
		theme.Muted.Render(fmt.Sprintf("ctrl+s %s / esc cancel", strings.ToLower(action))),
	)

	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.FormTitle.Render(heading),
		"",
		label(FieldTitle, "Title"),
		"  "+f.title.View(),
		label(FieldContent, "Content"),
		f.content.View(),
		label(FieldCategory, "Category"),
		"  "+category,
		label(FieldTags, "Tags"),
		"  "+f.tags.View(),
		label(FieldSource, "Source"),
		"  "+f.source.View(),
		"",
		buttons,
	)
	return theme.FormContainer.Width(max(f.width-2, 24)).Render(body)
}
