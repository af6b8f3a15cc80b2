// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package knowledge

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keyboard bindings for the knowledge view.
type KeyMap struct {
	// List
	Up      key.Binding
	Down    key.Binding
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Search  key.Binding
	Copy    key.Binding

	// Search box and form
	Submit    key.Binding
	Save      key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
	PrevCat   key.Binding
	NextCat   key.Binding
}

// DefaultKeyMap returns the default key bindings for the knowledge view.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "add entry"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev field"),
		),
		PrevCat: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "prev category"),
		),
		NextCat: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "next category"),
		),
	}
}

// ListHelp returns the hints shown while the list has focus.
func (k KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.New, k.Edit, k.Delete, k.Search, k.Refresh, k.Copy}
}

// FormHelp returns the hints shown while the form has focus.
func (k KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel, k.NextField, k.NextCat}
}

// SearchHelp returns the hints shown while the search box has focus.
func (k KeyMap) SearchHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}
