// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"log"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/jarvis-tui/internal/api"
	"github.com/jeranaias/jarvis-tui/internal/export"
	"github.com/jeranaias/jarvis-tui/internal/model"
)

// Backend is the part of the API client the chat view needs.
type Backend interface {
	SendMessage(ctx context.Context, query string, history []model.Message) (*api.ChatResponse, error)
	GetHealth(ctx context.Context) (*model.HealthStatus, error)
}

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// =============================================================================
// BACKEND COMMANDS
// =============================================================================

// CheckHealthCmd queries the backend health endpoint.
func CheckHealthCmd(backend Backend) tea.Cmd {
	return func() tea.Msg {
		status, err := backend.GetHealth(context.Background())
		if err != nil {
			log.Printf("chat: health check failed: %v", err)
		}
		return HealthMsg{Status: status, Err: err}
	}
}

// SendMessageCmd sends one question with the history that preceded it.
// history must not contain the question itself.
func SendMessageCmd(backend Backend, query string, history []model.Message) tea.Cmd {
	return func() tea.Msg {
		resp, err := backend.SendMessage(context.Background(), query, history)
		if err != nil {
			log.Printf("chat: send failed: %v", err)
		}
		return ResponseMsg{Response: resp, Err: err}
	}
}

// =============================================================================
// LOCAL COMMANDS
// =============================================================================

// ExportCmd writes a snapshot of the conversation to dir in the given format.
func ExportCmd(conv *model.Conversation, format, dir string) tea.Cmd {
	return func() tea.Msg {
		opts := export.DefaultOptions()
		opts.OutputDir = dir

		exporter, err := export.ForFormat(format, opts)
		if err != nil {
			return ExportedMsg{Err: err}
		}
		path, err := export.ExportToFile(conv, exporter, opts)
		return ExportedMsg{Path: path, Err: err}
	}
}

// CopyCmd copies text to the system clipboard.
func CopyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Chars: len([]rune(text)), Err: writeClipboard(text)}
	}
}
