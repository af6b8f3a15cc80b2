// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/jarvis-tui/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports conversations to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a conversation to Markdown format.
func (e *MarkdownExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil || conv.IsEmpty() {
		return nil, ErrEmptyConversation
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(conv.Title())))
	sb.WriteString(fmt.Sprintf("- **Started**: %s\n", formatTimestamp(conv.CreatedAt)))
	sb.WriteString(fmt.Sprintf("- **Messages**: %d\n\n", conv.Len()))
	sb.WriteString("---\n\n")

	for i, msg := range conv.Messages {
		label := msg.Role.DisplayName()
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n", label, formatShortTimestamp(msg.Timestamp)))
		} else {
			sb.WriteString(fmt.Sprintf("### %s\n\n", label))
		}

		sb.WriteString(strings.TrimSpace(msg.Content))
		sb.WriteString("\n\n")

		if msg.Role == model.RoleAssistant {
			if e.options.IncludeSources && len(msg.Sources) > 0 {
				sb.WriteString("**Sources:**\n\n")
				for j, src := range msg.Sources {
					sb.WriteString(fmt.Sprintf("%d. %s (score %.2f)\n", j+1, escapeMarkdown(src.DisplayTitle(j)), src.Score))
				}
				sb.WriteString("\n")
			}
			if msg.HasConfidence() {
				sb.WriteString(fmt.Sprintf("*Confidence: %d%%*\n\n", msg.ConfidencePercent()))
			}
		}

		if i < conv.Len()-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("*Exported from Jarvis on %s*\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// escapeMarkdown escapes characters that would start Markdown syntax in a
// heading or list item.
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		"*", `\*`,
		"_", `\_`,
		"`", "\\`",
		"#", `\#`,
		"[", `\[`,
		"]", `\]`,
	)
	return replacer.Replace(s)
}
