// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package knowledge

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jeranaias/jarvis-tui/internal/model"
)

// FilterEntries returns the entries whose title or content contains query,
// compared with Unicode case folding. A blank query returns entries as is.
func FilterEntries(entries []model.KnowledgeEntry, query string) []model.KnowledgeEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}

	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]model.KnowledgeEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(fold.String(e.Title), needle) || strings.Contains(fold.String(e.Content), needle) {
			out = append(out, e)
		}
	}
	return out
}
