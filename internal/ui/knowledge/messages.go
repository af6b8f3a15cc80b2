// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package knowledge

import (
	"github.com/jeranaias/jarvis-tui/internal/model"
)

// EntriesMsg carries the result of a fetch-all or a search.
type EntriesMsg struct {
	Entries []model.KnowledgeEntry
	// Query is the search text, empty for a fetch-all.
	Query string
	Err   error
}

// IsSearch reports whether the message answers a search.
func (m EntriesMsg) IsSearch() bool { return m.Query != "" }

// SavedMsg reports a create or update.
type SavedMsg struct {
	Entry   *model.KnowledgeEntry
	Updated bool
	Err     error
}

// DeletedMsg reports a delete.
type DeletedMsg struct {
	ID      int
	Message string
	Err     error
}

// CopiedMsg reports a clipboard copy of an entry.
type CopiedMsg struct {
	Title string
	Err   error
}
