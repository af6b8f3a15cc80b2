// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"time"

	"github.com/jeranaias/jarvis-tui/internal/model"
)

// DefaultTopK is the number of search results requested when none is given.
const DefaultTopK = 5

// DefaultContextLimit is the number of prior messages the backend is asked
// to consider.
const DefaultContextLimit = 5

// =============================================================================
// CHAT
// =============================================================================

// HistoryMessage is a prior conversation turn as sent to the backend.
type HistoryMessage struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Query               string           `json:"query"`
	ConversationHistory []HistoryMessage `json:"conversation_history"`
	ContextLimit        int              `json:"context_limit,omitempty"`
}

// ChatResponse is the body returned by POST /chat.
type ChatResponse struct {
	Response   string         `json:"response"`
	Sources    []model.Source `json:"sources"`
	Confidence *float64       `json:"confidence"`
}

// Message converts the response into an assistant message.
func (r *ChatResponse) Message() model.Message {
	return model.NewAssistantMessage(r.Response, r.Sources, r.Confidence)
}

// toHistory converts conversation messages to their wire form.
func toHistory(messages []model.Message) []HistoryMessage {
	out := make([]HistoryMessage, 0, len(messages))
	for _, m := range messages {
		h := HistoryMessage{Role: m.Role.String(), Content: m.Content}
		if !m.Timestamp.IsZero() {
			ts := m.Timestamp
			h.Timestamp = &ts
		}
		out = append(out, h)
	}
	return out
}

// =============================================================================
// SEARCH
// =============================================================================

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query    string `json:"query"`
	Category string `json:"category,omitempty"`
	TopK     int    `json:"top_k"`
}

// deleteResponse is the acknowledgement returned by DELETE /knowledge/{id}.
type deleteResponse struct {
	Message string `json:"message"`
}

// errorBody is the error envelope the backend uses for non-2xx responses.
type errorBody struct {
	Detail any `json:"detail"`
}
