// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - line-mode conversation command.
//
// Interactive commands:
//   /help, /h           Show available commands
//   /clear, /c          Start a new conversation
//   /history            Show the conversation so far
//   /export [md|json]   Write the transcript to the export directory
//   /quit, /q           Exit
//   Ctrl+C              Cancel the pending request (at the prompt: exit)
//   Ctrl+D              Exit

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/jarvis-tui/internal/config"
	"github.com/jeranaias/jarvis-tui/internal/export"
	"github.com/jeranaias/jarvis-tui/internal/model"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI wraps liner with a history file in the config directory.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates the line editor and loads saved history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	c := &ChatCLI{line: line, historyFile: filepath.Join(dir, "chat_history")}
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
	return c
}

// ReadInput prompts for a line and records non-blank input in history.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = c.line.WriteHistory(f)
			f.Close()
		}
	}
	c.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// ChatSession is the state of one line-mode conversation.
type ChatSession struct {
	env  *Env
	conv *model.Conversation
}

// NewChatSession creates an empty session.
func NewChatSession(env *Env) *ChatSession {
	return &ChatSession{env: env, conv: model.NewConversation()}
}

// Conversation returns the transcript.
func (s *ChatSession) Conversation() *model.Conversation {
	return s.conv
}

// HandleLine processes one line of input. It returns false when the
// session should end.
func (s *ChatSession) HandleLine(ctx context.Context, input string) (bool, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return true, nil
	}
	if strings.HasPrefix(input, "/") {
		return s.handleSlash(input)
	}
	if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
		return false, nil
	}
	return true, s.Send(ctx, input)
}

// Send posts query with the prior turns. The user turn stays in the
// transcript when the request fails.
func (s *ChatSession) Send(ctx context.Context, query string) error {
	history := s.conv.History()
	s.conv.Append(model.NewUserMessage(query))

	resp, err := s.env.Client.SendMessage(ctx, query, history)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("request canceled")
		}
		return NewCommandError("chat", "send", ErrTextResponse, err)
	}

	s.conv.Append(resp.Message())
	fmt.Fprintln(s.env.Out)
	printAnswer(s.env, resp)
	fmt.Fprintln(s.env.Out)
	return nil
}

func (s *ChatSession) handleSlash(input string) (bool, error) {
	fields := strings.Fields(input)
	switch strings.ToLower(fields[0]) {
	case "/quit", "/q", "/exit":
		return false, nil
	case "/help", "/h":
		s.printHelp()
	case "/clear", "/c":
		s.conv.Clear()
		fmt.Fprintln(s.env.Out, DimStyle.Render("Conversation cleared."))
	case "/history":
		s.printHistory()
	case "/export":
		format := ""
		if len(fields) > 1 {
			format = fields[1]
		}
		return true, s.export(format)
	default:
		return true, &UsageError{Message: fmt.Sprintf("unknown command %s", fields[0]), Usage: "/help"}
	}
	return true, nil
}

func (s *ChatSession) printHelp() {
	w := s.env.Out
	fmt.Fprintln(w, SectionStyle.Render("Commands:"))
	for _, row := range [][2]string{
		{"/help", "Show this help"},
		{"/clear", "Start a new conversation"},
		{"/history", "Show the conversation so far"},
		{"/export [md|json]", "Write the transcript to a file"},
		{"/quit", "Exit (also Ctrl+D)"},
	} {
		fmt.Fprintf(w, "  %s %s\n", LabelStyle.Width(20).Render(row[0]), row[1])
	}
}

func (s *ChatSession) printHistory() {
	w := s.env.Out
	if s.conv.IsEmpty() {
		fmt.Fprintln(w, DimStyle.Render("No messages yet."))
		return
	}
	for _, msg := range s.conv.History() {
		fmt.Fprintf(w, "%s %s\n", SectionStyle.Render(msg.Role.DisplayName()+":"), msg.Preview(200))
	}
}

func (s *ChatSession) export(format string) error {
	if format == "" && s.env.Config != nil {
		format = s.env.Config.Export.Format
	}
	opts := export.DefaultOptions()
	if s.env.Config != nil {
		dir, err := s.env.Config.ExportDir()
		if err != nil {
			return NewCommandError("chat", "export", "no export directory", err)
		}
		opts.OutputDir = dir
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return NewCommandError("chat", "export", "cannot create export directory", err)
	}

	exporter, err := export.ForFormat(format, opts)
	if err != nil {
		return &ValidationError{Field: "format", Value: format, Reason: "must be markdown or json"}
	}
	path, err := export.ExportToFile(s.conv, exporter, opts)
	if err != nil {
		return NewCommandError("chat", "export", "transcript not written", err)
	}
	fmt.Fprintln(s.env.Out, SuccessStyle.Render("Exported to "+path))
	return nil
}

// =============================================================================
// REPL
// =============================================================================

// RunChat runs the interactive loop until /quit, Ctrl+D or Ctrl+C at the
// prompt.
func RunChat(ctx context.Context, env *Env) error {
	if env.JSON {
		return &UsageError{Message: "chat is interactive and does not support --json", Usage: `jarvis ask --json "question"`}
	}

	session := NewChatSession(env)
	if health, err := env.Client.GetHealth(ctx); err != nil {
		fmt.Fprintln(env.Err, WarningStyle.Render("Warning: Failed to connect to the server"))
	} else if !env.Quiet {
		fmt.Fprintf(env.Out, "%s %s\n", TitleStyle.UnsetMarginBottom().Render("Jarvis"), DimStyle.Render(health.ModeLabel()))
	}
	env.info("%s", DimStyle.Render("Type a question, /help for commands, Ctrl+D to exit."))

	input := NewChatCLI()
	defer input.Close()

	for {
		line, err := input.ReadInput(PromptStyle.Render("you> "))
		if err != nil {
			fmt.Fprintln(env.Out)
			return nil
		}

		reqCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		keepGoing, err := session.HandleLine(reqCtx, line)
		stop()
		if err != nil {
			DisplayError(env.Err, err, false)
		}
		if !keepGoing {
			return nil
		}
	}
}
