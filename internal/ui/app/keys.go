// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global bindings handled before the active view.
type KeyMap struct {
	Quit         key.Binding
	ChatTab      key.Binding
	KnowledgeTab key.Binding
	Toggle       key.Binding
}

// DefaultKeyMap returns the default global bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		ChatTab: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "chat"),
		),
		KnowledgeTab: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "knowledge"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "switch tab"),
		),
	}
}
