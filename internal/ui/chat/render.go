// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"log"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// markdownRenderer caches a glamour renderer for the current wrap width,
// plus the output for each message body rendered at that width.
type markdownRenderer struct {
	dark     bool
	width    int
	renderer *glamour.TermRenderer
	failed   bool
	cache    map[string]string
	renders  int
}

func newMarkdownRenderer(dark bool) *markdownRenderer {
	return &markdownRenderer{dark: dark, cache: make(map[string]string)}
}

// Render returns content as styled terminal markdown wrapped to width.
// If glamour cannot be initialized the content is wrapped as plain text.
func (r *markdownRenderer) Render(content string, width int) string {
	if width < 10 {
		width = 10
	}
	if r.width != width || (r.renderer == nil && !r.failed) {
		r.build(width)
	}
	if r.failed {
		return plainWrap(content, width)
	}
	if out, ok := r.cache[content]; ok {
		return out
	}

	r.renders++
	out, err := r.renderer.Render(content)
	if err != nil {
		log.Printf("chat: markdown render failed: %v", err)
		return plainWrap(content, width)
	}
	out = strings.Trim(out, "\n")
	r.cache[content] = out
	return out
}

func (r *markdownRenderer) build(width int) {
	style := "light"
	if r.dark {
		style = "dark"
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	r.width = width
	r.cache = make(map[string]string)
	if err != nil {
		log.Printf("chat: markdown renderer unavailable: %v", err)
		r.renderer = nil
		r.failed = true
		return
	}
	r.renderer = tr
	r.failed = false
}

func plainWrap(content string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(content)
}
