// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package knowledge

import (
	"context"
	"log"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/jarvis-tui/internal/model"
)

// Backend is the part of the API client the knowledge view needs.
type Backend interface {
	GetAllEntries(ctx context.Context) ([]model.KnowledgeEntry, error)
	Search(ctx context.Context, query string, topK int) ([]model.KnowledgeEntry, error)
	AddEntry(ctx context.Context, input model.EntryInput) (*model.KnowledgeEntry, error)
	UpdateEntry(ctx context.Context, id int, update model.EntryUpdate) (*model.KnowledgeEntry, error)
	DeleteEntry(ctx context.Context, id int) (string, error)
}

var writeClipboard = clipboard.WriteAll

// FetchCmd loads every entry.
func FetchCmd(backend Backend) tea.Cmd {
	return func() tea.Msg {
		entries, err := backend.GetAllEntries(context.Background())
		if err != nil {
			log.Printf("knowledge: fetch failed: %v", err)
		}
		return EntriesMsg{Entries: entries, Err: err}
	}
}

// SearchCmd runs a semantic search. query must not be blank.
func SearchCmd(backend Backend, query string, topK int) tea.Cmd {
	return func() tea.Msg {
		entries, err := backend.Search(context.Background(), query, topK)
		if err != nil {
			log.Printf("knowledge: search %q failed: %v", query, err)
		}
		return EntriesMsg{Entries: entries, Query: query, Err: err}
	}
}

// SaveCmd creates input, or updates entry id when id is non-zero.
func SaveCmd(backend Backend, id int, input model.EntryInput) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var (
			entry *model.KnowledgeEntry
			err   error
		)
		if id != 0 {
			entry, err = backend.UpdateEntry(ctx, id, input.Update())
		} else {
			entry, err = backend.AddEntry(ctx, input)
		}
		if err != nil {
			log.Printf("knowledge: save failed: %v", err)
		}
		return SavedMsg{Entry: entry, Updated: id != 0, Err: err}
	}
}

// DeleteCmd removes entry id.
func DeleteCmd(backend Backend, id int) tea.Cmd {
	return func() tea.Msg {
		message, err := backend.DeleteEntry(context.Background(), id)
		if err != nil {
			log.Printf("knowledge: delete %d failed: %v", id, err)
		}
		return DeletedMsg{ID: id, Message: message, Err: err}
	}
}

// CopyCmd copies an entry's content to the clipboard.
func CopyCmd(entry model.KnowledgeEntry) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Title: entry.Title, Err: writeClipboard(entry.Content)}
	}
}
