// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/jarvis-tui/internal/model"
	"github.com/jeranaias/jarvis-tui/internal/ui/styles"
)

// User-facing error texts.
const (
	ErrTextConnect  = "Failed to connect to the server"
	ErrTextResponse = "Failed to get response from the assistant"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateIdle    State = iota // Waiting for input
	StateSending              // One request in flight
	StateError                // Last operation failed
)

// String returns a short name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Options configures the chat view.
type Options struct {
	// MaxSources caps how many cited sources are listed under an answer.
	MaxSources int

	// RenderMarkdown renders answers through glamour when true.
	RenderMarkdown bool

	// ExportFormat is "markdown" or "json".
	ExportFormat string

	// ExportDir is where Ctrl+E writes transcripts.
	ExportDir string
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		MaxSources:     2,
		RenderMarkdown: true,
		ExportFormat:   "markdown",
		ExportDir:      ".",
	}
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	state   State
	backend Backend
	opts    Options

	theme    *styles.Theme
	keyMap   KeyMap
	markdown *markdownRenderer

	width  int
	height int

	conversation *model.Conversation
	health       *model.HealthStatus

	// errText is shown in the error banner; empty means no banner.
	errText string
	// notice is a transient one-line confirmation (copy, export).
	notice string

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	focused  bool
}

// New creates a chat view bound to backend.
func New(backend Backend, theme *styles.Theme, opts Options) Model {
	if opts.MaxSources < 0 {
		opts.MaxSources = 0
	}

	ti := textinput.New()
	ti.Placeholder = "Ask Jarvis anything..."
	ti.Prompt = "> "
	ti.CharLimit = 4000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Thinking

	vp := viewport.New(80, 20)

	return Model{
		state:        StateIdle,
		backend:      backend,
		opts:         opts,
		theme:        theme,
		keyMap:       DefaultKeyMap(),
		markdown:     newMarkdownRenderer(theme.IsDark),
		conversation: model.NewConversation(),
		viewport:     vp,
		input:        ti,
		spinner:      sp,
		focused:      true,
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the current state.
func (m Model) State() State { return m.state }

// Conversation returns the live conversation.
func (m Model) Conversation() *model.Conversation { return m.conversation }

// ErrorText returns the banner text, or "" when no banner is shown.
func (m Model) ErrorText() string { return m.errText }

// Notice returns the last transient notice.
func (m Model) Notice() string { return m.notice }

// Health returns the last successful health report, if any.
func (m Model) Health() *model.HealthStatus { return m.health }

// InputValue returns the current text in the input box.
func (m Model) InputValue() string { return m.input.Value() }

// KeyMap returns the view's key bindings.
func (m Model) KeyMap() KeyMap { return m.keyMap }

// Focus gives the input keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	if m.state == StateSending {
		return nil
	}
	return m.input.Focus()
}

// Blur removes keyboard focus from the input.
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

// SetOptions replaces the view options, e.g. after a config reload.
func (m *Model) SetOptions(opts Options) {
	if opts.MaxSources < 0 {
		opts.MaxSources = 0
	}
	m.opts = opts
	m.refresh()
}

// SetDark switches the markdown style between dark and light.
func (m *Model) SetDark(dark bool) {
	if m.markdown.dark == dark {
		return
	}
	m.markdown = newMarkdownRenderer(dark)
	m.refresh()
}

// MarkdownDark reports whether assistant markdown uses the dark style.
func (m Model) MarkdownDark() bool { return m.markdown.dark }

// SetSize sets the area available to the view.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	const promptLen = 2
	inputWidth := width - 4 - promptLen
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth
	m.refresh()
}

// =============================================================================
// BUBBLE TEA METHODS
// =============================================================================

// Init checks backend health once when the view is mounted.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, CheckHealthCmd(m.backend))
}

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case HealthMsg:
		return m.handleHealth(msg)

	case ResponseMsg:
		return m.handleResponse(msg)

	case ExportedMsg:
		if msg.Err != nil {
			log.Printf("chat: export failed: %v", msg.Err)
			m.notice = "Export failed: " + msg.Err.Error()
		} else {
			m.notice = "Exported to " + msg.Path
		}
		return m, nil

	case CopiedMsg:
		if msg.Err != nil {
			m.notice = "Failed to copy to clipboard"
		} else {
			m.notice = fmt.Sprintf("Copied answer to clipboard (%d chars)", msg.Chars)
		}
		return m, nil

	case spinner.TickMsg:
		if m.state != StateSending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keyMap.Bottom):
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keyMap.Copy):
		last, ok := m.conversation.LastAssistant()
		if !ok || last.Content == "" {
			m.notice = "No answer to copy yet"
			return m, nil
		}
		return m, CopyCmd(last.Content)

	case key.Matches(msg, m.keyMap.Export):
		if m.conversation.IsEmpty() {
			m.notice = "Nothing to export yet"
			return m, nil
		}
		return m, ExportCmd(m.snapshot(), m.opts.ExportFormat, m.opts.ExportDir)

	case key.Matches(msg, m.keyMap.Clear):
		if m.state == StateSending {
			return m, nil
		}
		m.conversation.Clear()
		m.errText = ""
		m.notice = ""
		m.state = StateIdle
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keyMap.Dismiss):
		if m.errText != "" {
			m.errText = ""
			if m.state == StateError {
				m.state = StateIdle
			}
			m.refresh()
		}
		return m, nil
	}

	if m.state == StateSending {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the input as a question. Blank input and input typed while
// a request is in flight are ignored.
func (m Model) submit() (Model, tea.Cmd) {
	if m.state == StateSending {
		return m, nil
	}
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return m, nil
	}

	// History is captured before the question is appended.
	history := m.conversation.History()
	m.conversation.Append(model.NewUserMessage(query))

	m.input.Reset()
	m.input.Blur()
	m.errText = ""
	m.notice = ""
	m.state = StateSending
	m.refresh()

	return m, tea.Batch(
		SendMessageCmd(m.backend, query, history),
		m.spinner.Tick,
	)
}

// =============================================================================
// RESULT HANDLERS
// =============================================================================

func (m Model) handleHealth(msg HealthMsg) (Model, tea.Cmd) {
	if msg.Err != nil || msg.Status == nil {
		m.errText = ErrTextConnect
		if m.state != StateSending {
			m.state = StateError
		}
		m.refresh()
		return m, nil
	}
	m.health = msg.Status
	return m, nil
}

func (m Model) handleResponse(msg ResponseMsg) (Model, tea.Cmd) {
	if msg.Err != nil || msg.Response == nil {
		m.errText = ErrTextResponse
		m.state = StateError
	} else {
		m.conversation.Append(msg.Response.Message())
		m.state = StateIdle
	}
	m.refresh()

	if !m.focused {
		return m, nil
	}
	return m, m.input.Focus()
}

// snapshot copies the conversation so a background export never races
// with later appends.
func (m Model) snapshot() *model.Conversation {
	return &model.Conversation{
		ID:        m.conversation.ID,
		CreatedAt: m.conversation.CreatedAt,
		UpdatedAt: m.conversation.UpdatedAt,
		Messages:  m.conversation.History(),
	}
}

// refresh re-renders the transcript into the viewport and scrolls to the
// newest content.
func (m *Model) refresh() {
	vpHeight := m.height - inputHeight - m.bannerHeight()
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = max(m.width, 1)
	m.viewport.Height = vpHeight
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}
