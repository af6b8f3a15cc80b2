// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kbimport

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/jeranaias/jarvis-tui/internal/model"
)

// =============================================================================
// FORMATS
// =============================================================================

// Format is an import file format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat maps a user supplied name to a Format. An empty name
// yields "" so the caller can fall back to DetectFormat.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return "", nil
	case "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown import format %q (valid: text, markdown, json)", name)
	}
}

// DetectFormat guesses the format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".json":
		return FormatJSON
	default:
		return FormatText
	}
}

// DefaultCategory returns the category used when none is given:
// imported for markdown, general otherwise.
func DefaultCategory(format Format) model.Category {
	if format == FormatMarkdown {
		return model.CategoryImported
	}
	return model.CategoryGeneral
}

// ParseFile reads path and parses it. An empty format is detected from
// the extension and an empty category uses DefaultCategory.
func ParseFile(path string, format Format, category model.Category) ([]model.EntryInput, error) {
	if format == "" {
		format = DetectFormat(path)
	}
	if category == "" {
		category = DefaultCategory(format)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch format {
	case FormatMarkdown:
		return ParseMarkdown(data, path, category), nil
	case FormatJSON:
		return ParseJSON(data, category)
	default:
		return ParseText(bytes.NewReader(data), category)
	}
}

// =============================================================================
// TEXT
// =============================================================================

// ParseText reads TITLE:/CONTENT:/TAGS: blocks. Each TITLE: line starts a
// new entry; lines with other prefixes are ignored.
func ParseText(r io.Reader, category model.Category) ([]model.EntryInput, error) {
	var (
		entries []model.EntryInput
		current *model.EntryInput
	)
	flush := func() {
		if current != nil {
			entries = append(entries, current.Normalize())
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "TITLE:"):
			flush()
			current = &model.EntryInput{
				Title:    strings.TrimSpace(strings.TrimPrefix(line, "TITLE:")),
				Category: category,
			}
		case current == nil:
			continue
		case strings.HasPrefix(line, "CONTENT:"):
			current.Content = strings.TrimSpace(strings.TrimPrefix(line, "CONTENT:"))
		case strings.HasPrefix(line, "TAGS:"):
			current.Tags = model.ParseTags(strings.TrimPrefix(line, "TAGS:"))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	flush()
	return entries, nil
}

// =============================================================================
// MARKDOWN
// =============================================================================

// ParseMarkdown turns every top-level level-2 heading into an entry.
// The body runs up to the next level-2 heading; text before the first one
// is skipped. source is recorded on each entry.
func ParseMarkdown(data []byte, source string, category model.Category) []model.EntryInput {
	doc := goldmark.New().Parser().Parse(text.NewReader(data))

	type section struct {
		title      string
		start, end int
	}
	var sections []section

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 2 || h.Lines().Len() == 0 {
			continue
		}
		first := h.Lines().At(0)
		last := h.Lines().At(h.Lines().Len() - 1)

		if len(sections) > 0 {
			sections[len(sections)-1].end = lineStart(data, first.Start)
		}
		sections = append(sections, section{
			title: headingText(h, data),
			start: headingEnd(data, last.Stop),
			end:   len(data),
		})
	}

	entries := make([]model.EntryInput, 0, len(sections))
	for _, s := range sections {
		body := ""
		if s.start < s.end {
			body = strings.TrimSpace(string(data[s.start:s.end]))
		}
		entries = append(entries, model.EntryInput{
			Title:    s.title,
			Content:  body,
			Category: category,
			Tags:     []string{},
			Source:   source,
		})
	}
	return entries
}

func headingText(h *ast.Heading, data []byte) string {
	var parts []string
	for i := 0; i < h.Lines().Len(); i++ {
		seg := h.Lines().At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(data))))
	}
	return strings.Join(parts, " ")
}

// lineStart returns the offset of the first byte of the line holding pos.
func lineStart(data []byte, pos int) int {
	if i := bytes.LastIndexByte(data[:pos], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// headingEnd returns the offset just past the heading that ends at pos,
// including a setext underline when there is one.
func headingEnd(data []byte, pos int) int {
	end := nextLine(data, pos)
	if end >= len(data) {
		return len(data)
	}
	under := nextLine(data, end)
	line := strings.TrimSpace(string(data[end:under]))
	if line != "" && strings.Trim(line, "-") == "" {
		return under
	}
	return end
}

func nextLine(data []byte, pos int) int {
	if pos >= len(data) {
		return len(data)
	}
	if i := bytes.IndexByte(data[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(data)
}

// =============================================================================
// JSON
// =============================================================================

// ParseJSON decodes an array of entry objects. Entries without a category
// get category.
func ParseJSON(data []byte, category model.Category) ([]model.EntryInput, error) {
	var entries []model.EntryInput
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	for i := range entries {
		if entries[i].Category == "" {
			entries[i].Category = category
		}
		entries[i] = entries[i].Normalize()
	}
	return entries, nil
}
