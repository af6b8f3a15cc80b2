// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// CATEGORY
// =============================================================================

// Category classifies a knowledge entry.
type Category string

const (
	CategoryGeneral   Category = "general"
	CategoryTechnical Category = "technical"
	CategoryBusiness  Category = "business"
	CategoryPersonal  Category = "personal"

	// CategoryImported is assigned by bulk imports when no category is given.
	CategoryImported Category = "imported"
)

// Categories lists the categories offered by the entry form, in display order.
var Categories = []Category{
	CategoryGeneral,
	CategoryTechnical,
	CategoryBusiness,
	CategoryPersonal,
}

// String returns the wire value of the category.
func (c Category) String() string {
	return string(c)
}

// Label returns the capitalized display label.
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Next returns the following form category, wrapping around.
// Unknown categories move to the first entry.
func (c Category) Next() Category {
	for i, cat := range Categories {
		if cat == c {
			return Categories[(i+1)%len(Categories)]
		}
	}
	return Categories[0]
}

// Prev returns the preceding form category, wrapping around.
func (c Category) Prev() Category {
	for i, cat := range Categories {
		if cat == c {
			return Categories[(i-1+len(Categories))%len(Categories)]
		}
	}
	return Categories[len(Categories)-1]
}

// ParseCategory normalizes s and checks it against the known categories.
// An empty string yields CategoryGeneral.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryGeneral, nil
	}
	for _, cat := range Categories {
		if string(cat) == s {
			return cat, nil
		}
	}
	if Category(s) == CategoryImported {
		return CategoryImported, nil
	}
	return "", fmt.Errorf("unknown category %q (valid: general, technical, business, personal, imported)", s)
}

// =============================================================================
// TIMESTAMP
// =============================================================================

// Timestamp is a time that also decodes the zone-less ISO-8601 values
// the knowledge backend writes.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON parses RFC 3339 and naive ISO-8601 timestamps.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// MarshalJSON writes RFC 3339, or null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339Nano) + `"`), nil
}

// =============================================================================
// KNOWLEDGE ENTRY
// =============================================================================

// KnowledgeEntry is a record stored by the knowledge backend.
type KnowledgeEntry struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  Category  `json:"category"`
	Tags      []string  `json:"tags"`
	Source    string    `json:"source,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// Input returns the create body equivalent of the entry.
func (e KnowledgeEntry) Input() EntryInput {
	return EntryInput{
		Title:    e.Title,
		Content:  e.Content,
		Category: e.Category,
		Tags:     append([]string(nil), e.Tags...),
		Source:   e.Source,
	}
}

// EntryInput is the body for creating an entry.
type EntryInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category Category `json:"category"`
	Tags     []string `json:"tags"`
	Source   string   `json:"source,omitempty"`
}

// Validate checks the fields the backend requires.
func (in EntryInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return ErrTitleContentRequired
	}
	return nil
}

// Normalize fills the default category and a non-nil tag list.
func (in EntryInput) Normalize() EntryInput {
	if in.Category == "" {
		in.Category = CategoryGeneral
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	return in
}

// Update returns a full-field partial update carrying every input field.
func (in EntryInput) Update() EntryUpdate {
	title, content, category, src := in.Title, in.Content, in.Category, in.Source
	tags := append([]string{}, in.Tags...)
	return EntryUpdate{
		Title:    &title,
		Content:  &content,
		Category: &category,
		Tags:     &tags,
		Source:   &src,
	}
}

// EntryUpdate is a partial update body. Nil fields are left unchanged.
type EntryUpdate struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Category *Category `json:"category,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	Source   *string   `json:"source,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u EntryUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Category == nil && u.Tags == nil && u.Source == nil
}

// ErrTitleContentRequired is returned when a create or update lacks a
// title or content.
var ErrTitleContentRequired = fmt.Errorf("title and content are required")

// =============================================================================
// TAGS
// =============================================================================

// ParseTags splits comma-separated tag text, trims each piece, drops empty
// pieces and duplicates, and keeps first-occurrence order.
func ParseTags(text string) []string {
	tags := make([]string, 0)
	seen := make(map[string]struct{})
	for _, piece := range strings.Split(text, ",") {
		tag := strings.TrimSpace(piece)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// JoinTags renders tags for editing.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// =============================================================================
// HEALTH
// =============================================================================

// HealthStatus is the backend's component availability report.
type HealthStatus struct {
	Status                  string `json:"status"`
	LLMAvailable            bool   `json:"llm_available"`
	VectorDBAvailable       bool   `json:"vector_db_available"`
	EmbeddingModelAvailable bool   `json:"embedding_model_available"`
}

// IsHealthy reports whether the backend declared itself healthy.
func (h HealthStatus) IsHealthy() bool {
	return h.Status == "healthy"
}

// Ready reports whether both the language model and the embedding model
// are available.
func (h HealthStatus) Ready() bool {
	return h.LLMAvailable && h.EmbeddingModelAvailable
}

// ModeLabel returns "Ready" or "Limited Mode".
func (h HealthStatus) ModeLabel() string {
	if h.Ready() {
		return "Ready"
	}
	return "Limited Mode"
}
