// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - one-shot question command.
//
// Examples:
//   jarvis ask "How do I create a Python virtual environment?"
//   jarvis ask --json "What are REST best practices?"
//   jarvis --api-url http://kb.internal:8000 ask "What is our git workflow?"

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/jarvis-tui/internal/api"
	"github.com/jeranaias/jarvis-tui/internal/model"
)

// ErrTextResponse is shown when the backend cannot answer.
const ErrTextResponse = "Failed to get response from the assistant"

// AskData is the payload of "jarvis ask --json".
type AskData struct {
	Query      string         `json:"query"`
	Response   string         `json:"response"`
	Sources    []model.Source `json:"sources"`
	Confidence *float64       `json:"confidence"`
}

// RunAsk sends query with no history and prints the answer.
func RunAsk(ctx context.Context, env *Env, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return &UsageError{Message: "ask requires a question", Usage: `jarvis ask "What is a vector database?"`}
	}

	resp, err := env.Client.SendMessage(ctx, query, nil)
	if err != nil {
		return NewCommandError("ask", "send", ErrTextResponse, err)
	}

	sources := resp.Sources
	if sources == nil {
		sources = []model.Source{}
	}
	data := AskData{Query: query, Response: resp.Response, Sources: sources, Confidence: resp.Confidence}
	return env.emit("ask", data, func() {
		printAnswer(env, resp)
	})
}

// printAnswer writes the answer followed by its sources and confidence.
func printAnswer(env *Env, resp *api.ChatResponse) {
	msg := resp.Message()
	if env.Markdown {
		fmt.Fprint(env.Out, renderMarkdown(msg.Content, env.Width))
	} else {
		fmt.Fprintln(env.Out, msg.Content)
	}
	if env.Quiet {
		return
	}
	writeCitations(env.Out, msg, maxSources(env))
}

func maxSources(env *Env) int {
	if env.Config != nil && env.Config.UI.MaxSources > 0 {
		return env.Config.UI.MaxSources
	}
	return 2
}

// writeCitations lists the top sources and the confidence, if any.
func writeCitations(w io.Writer, msg model.Message, limit int) {
	top := msg.TopSources(limit)
	if len(top) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, SectionStyle.Render("Sources:"))
		for i, src := range top {
			fmt.Fprintf(w, "  - %s\n", src.DisplayTitle(i))
		}
	}
	if msg.HasConfidence() {
		fmt.Fprintln(w, DimStyle.Render(fmt.Sprintf("Confidence: %d%%", msg.ConfidencePercent())))
	}
}

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders content with glamour, returning it unchanged when
// the renderer fails.
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = DefaultTerminalWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return content + "\n"
	}
	out, err := r.Render(content)
	if err != nil {
		return content + "\n"
	}
	return out
}
