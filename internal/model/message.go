// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared by the chat and
// knowledge base views.
package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Jarvis"
	default:
		return string(r)
	}
}

// =============================================================================
// SOURCE TYPE
// =============================================================================

// Source is a knowledge base passage the backend cited for a response.
type Source struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// UnmarshalJSON accepts the source id as either a string or a number.
func (s *Source) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       json.RawMessage `json:"id"`
		Score    float64         `json:"score"`
		Metadata map[string]any  `json:"metadata"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Score = raw.Score
	s.Metadata = raw.Metadata
	s.ID = ""
	if len(raw.ID) == 0 || string(raw.ID) == "null" {
		return nil
	}
	var id string
	if err := json.Unmarshal(raw.ID, &id); err == nil {
		s.ID = id
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw.ID, &n); err != nil {
		return fmt.Errorf("source id: %w", err)
	}
	s.ID = n.String()
	return nil
}

// EntryID returns the knowledge entry id recorded in the metadata, if any.
func (s Source) EntryID() (int, bool) {
	if s.Metadata == nil {
		return 0, false
	}
	switch v := s.Metadata["id"].(type) {
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	}
	return 0, false
}

// Title returns the title stored in the source metadata, or "".
func (s Source) Title() string {
	if s.Metadata == nil {
		return ""
	}
	if t, ok := s.Metadata["title"].(string); ok {
		return t
	}
	return ""
}

// Category returns the category stored in the source metadata, or "".
func (s Source) Category() string {
	if s.Metadata == nil {
		return ""
	}
	if c, ok := s.Metadata["category"].(string); ok {
		return c
	}
	return ""
}

// DisplayTitle returns the title or a positional fallback ("Source 1").
// index is zero-based.
func (s Source) DisplayTitle(index int) string {
	if t := s.Title(); t != "" {
		return t
	}
	return fmt.Sprintf("Source %d", index+1)
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single turn in a conversation.
// Messages are immutable once appended to a Conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Assistant messages only.
	Sources    []Source `json:"sources,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates an assistant message carrying the cited
// sources and confidence returned by the backend.
func NewAssistantMessage(content string, sources []Source, confidence *float64) Message {
	msg := NewMessage(RoleAssistant, content)
	if len(sources) > 0 {
		msg.Sources = append([]Source(nil), sources...)
	}
	msg.Confidence = confidence
	return msg
}

// IsUser reports whether the message was typed by the user.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// TopSources returns at most n sources in backend order.
func (m Message) TopSources(n int) []Source {
	if n < 0 {
		n = 0
	}
	if len(m.Sources) <= n {
		return m.Sources
	}
	return m.Sources[:n]
}

// HasConfidence reports whether a confidence should be displayed.
// A zero confidence is treated as absent.
func (m Message) HasConfidence() bool {
	return m.Confidence != nil && *m.Confidence != 0
}

// ConfidencePercent returns the confidence as a rounded percentage.
func (m Message) ConfidencePercent() int {
	if m.Confidence == nil {
		return 0
	}
	return int(math.Round(*m.Confidence * 100))
}

// Preview returns a truncated preview of the message content.
func (m Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
