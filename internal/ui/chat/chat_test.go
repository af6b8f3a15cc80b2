// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/jarvis-tui/internal/api"
	"github.com/jeranaias/jarvis-tui/internal/model"
	"github.com/jeranaias/jarvis-tui/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type sendCall struct {
	query   string
	history []model.Message
}

type fakeBackend struct {
	mu    sync.Mutex
	calls []sendCall

	reply   *api.ChatResponse
	sendErr error

	health    *model.HealthStatus
	healthErr error
}

func (f *fakeBackend) SendMessage(_ context.Context, query string, history []model.Message) (*api.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sendCall{query: query, history: history})
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return f.reply, nil
}

func (f *fakeBackend) GetHealth(context.Context) (*model.HealthStatus, error) {
	return f.health, f.healthErr
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestModel(b Backend) Model {
	theme := styles.NewTheme()
	theme.SetSize(100, 40)
	opts := DefaultOptions()
	opts.RenderMarkdown = false
	m := New(b, theme, opts)
	m.SetSize(100, 40)
	return m
}

// collect runs cmd and any batched commands, returning every message.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func find[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v
		}
	}
	var zero T
	t.Fatalf("no %T among %d messages", zero, len(msgs))
	return zero
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

// ask types query, submits it and feeds the backend result back in.
func ask(t *testing.T, m Model, query string) Model {
	t.Helper()
	m.input.SetValue(query)
	m, cmd := m.Update(enter())
	require.NotNil(t, cmd)
	m, _ = m.Update(find[ResponseMsg](t, collect(cmd)))
	return m
}

// =============================================================================
// SUBMIT TESTS
// =============================================================================

func TestSubmit_BlankInputIgnored(t *testing.T) {
	b := &fakeBackend{}
	m := newTestModel(b)

	for _, input := range []string{"", "   ", "\t"} {
		m.input.SetValue(input)
		var cmd tea.Cmd
		m, cmd = m.Update(enter())
		assert.Nil(t, cmd, "input %q", input)
	}
	assert.Equal(t, 0, b.callCount())
	assert.True(t, m.Conversation().IsEmpty())
	assert.Equal(t, StateIdle, m.State())
}

func TestSubmit_AppendsInOrderAndSendsPriorHistory(t *testing.T) {
	b := &fakeBackend{reply: &api.ChatResponse{Response: "Hello there."}}
	m := newTestModel(b)

	m = ask(t, m, "hi")
	m = ask(t, m, "second question")

	msgs := m.Conversation().History()
	require.Len(t, msgs, 4)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "hi", msgs[0].Content)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "Hello there.", msgs[1].Content)
	assert.Equal(t, "second question", msgs[2].Content)
	assert.Equal(t, model.RoleAssistant, msgs[3].Role)

	require.Equal(t, 2, b.callCount())
	assert.Empty(t, b.calls[0].history)
	assert.Equal(t, "second question", b.calls[1].query)
	require.Len(t, b.calls[1].history, 2, "history must exclude the question being sent")
	assert.Equal(t, "hi", b.calls[1].history[0].Content)
	assert.Equal(t, "Hello there.", b.calls[1].history[1].Content)

	assert.Equal(t, StateIdle, m.State())
	assert.Empty(t, m.InputValue())
}

func TestSubmit_IgnoredWhileSending(t *testing.T) {
	b := &fakeBackend{reply: &api.ChatResponse{Response: "ok"}}
	m := newTestModel(b)

	m.input.SetValue("first")
	m, cmd := m.Update(enter())
	require.NotNil(t, cmd)
	assert.Equal(t, StateSending, m.State())

	m.input.SetValue("second")
	m, again := m.Update(enter())
	assert.Nil(t, again)
	assert.Equal(t, 1, m.Conversation().Len())

	collect(cmd)
	assert.Equal(t, 1, b.callCount())
}

func TestSubmit_FailureKeepsUserMessage(t *testing.T) {
	b := &fakeBackend{sendErr: errors.New("boom")}
	m := newTestModel(b)

	m = ask(t, m, "will this fail?")

	assert.Equal(t, StateError, m.State())
	assert.Equal(t, ErrTextResponse, m.ErrorText())
	require.Equal(t, 1, m.Conversation().Len())
	assert.True(t, m.Conversation().Messages[0].IsUser())
	assert.Contains(t, m.View(), ErrTextResponse)
}

func TestSubmit_ClearsPreviousBanner(t *testing.T) {
	b := &fakeBackend{sendErr: errors.New("boom")}
	m := newTestModel(b)
	m = ask(t, m, "one")
	require.NotEmpty(t, m.ErrorText())

	b.sendErr = nil
	b.reply = &api.ChatResponse{Response: "fine now"}
	m = ask(t, m, "two")

	assert.Empty(t, m.ErrorText())
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, 3, m.Conversation().Len())
}

// =============================================================================
// HEALTH TESTS
// =============================================================================

func TestInit_HealthFailureShowsBanner(t *testing.T) {
	b := &fakeBackend{healthErr: errors.New("connection refused")}
	m := newTestModel(b)

	m, _ = m.Update(find[HealthMsg](t, collect(m.Init())))

	assert.Equal(t, ErrTextConnect, m.ErrorText())
	assert.Equal(t, StateError, m.State())
}

func TestInit_HealthSuccess(t *testing.T) {
	b := &fakeBackend{health: &model.HealthStatus{Status: "healthy", LLMAvailable: true}}
	m := newTestModel(b)

	m, _ = m.Update(find[HealthMsg](t, collect(m.Init())))

	assert.Empty(t, m.ErrorText())
	require.NotNil(t, m.Health())
	assert.True(t, m.Health().LLMAvailable)
}

func TestDismissBanner(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m, _ = m.Update(HealthMsg{Err: errors.New("down")})
	require.NotEmpty(t, m.ErrorText())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.ErrorText())
	assert.Equal(t, StateIdle, m.State())
}

// =============================================================================
// RENDERING TESTS
// =============================================================================

func TestView_EmptyState(t *testing.T) {
	view := newTestModel(&fakeBackend{}).View()
	assert.Contains(t, view, "Welcome to Jarvis")
	assert.Contains(t, view, "Ask me anything. I'm here to help!")
}

func TestView_ThinkingWhileSending(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m.input.SetValue("hello")
	m, _ = m.Update(enter())
	assert.Contains(t, m.View(), "Thinking...")
}

func TestView_SourcesAndConfidence(t *testing.T) {
	conf := 0.87
	b := &fakeBackend{reply: &api.ChatResponse{
		Response: "Use an index.",
		Sources: []model.Source{
			{ID: "1", Score: 0.9, Metadata: map[string]any{"title": "Database Indexing"}},
			{ID: "2", Score: 0.7},
			{ID: "3", Score: 0.5, Metadata: map[string]any{"title": "Third Source Hidden"}},
		},
		Confidence: &conf,
	}}
	m := ask(t, newTestModel(b), "how do indexes work?")

	view := m.View()
	assert.Contains(t, view, "Database Indexing")
	assert.Contains(t, view, "Source 2")
	assert.NotContains(t, view, "Third Source Hidden")
	assert.Contains(t, view, "Confidence: 87%")
}

func TestView_ZeroConfidenceHidden(t *testing.T) {
	zero := 0.0
	b := &fakeBackend{reply: &api.ChatResponse{Response: "Unsure.", Confidence: &zero}}
	m := ask(t, newTestModel(b), "anything?")
	assert.NotContains(t, m.View(), "Confidence:")
}

// =============================================================================
// ACTION TESTS
// =============================================================================

func TestClearConversation(t *testing.T) {
	b := &fakeBackend{reply: &api.ChatResponse{Response: "ok"}}
	m := ask(t, newTestModel(b), "hello")
	require.Equal(t, 2, m.Conversation().Len())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.True(t, m.Conversation().IsEmpty())
	assert.Contains(t, m.View(), "Welcome to Jarvis")
}

func TestCopyLastAnswer(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	b := &fakeBackend{reply: &api.ChatResponse{Response: "copy me"}}
	m := ask(t, newTestModel(b), "hello")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	m, _ = m.Update(find[CopiedMsg](t, collect(cmd)))

	assert.Equal(t, "copy me", copied)
	assert.True(t, strings.HasPrefix(m.Notice(), "Copied"))
}

func TestCopyWithoutAnswer(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.Notice())
}

func TestExportConversation(t *testing.T) {
	b := &fakeBackend{reply: &api.ChatResponse{Response: "exported answer"}}
	m := newTestModel(b)
	opts := DefaultOptions()
	opts.RenderMarkdown = false
	opts.ExportDir = t.TempDir()
	m.SetOptions(opts)
	m = ask(t, m, "export this")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	require.NotNil(t, cmd)
	res := find[ExportedMsg](t, collect(cmd))
	require.NoError(t, res.Err)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "exported answer")

	m, _ = m.Update(res)
	assert.Contains(t, m.Notice(), res.Path)
}

func TestMarkdownRenderer_CachesPerWidth(t *testing.T) {
	r := newMarkdownRenderer(true)

	first := r.Render("**Indexes** speed up reads.", 40)
	require.False(t, r.failed)
	again := r.Render("**Indexes** speed up reads.", 40)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, r.renders)

	r.Render("**Indexes** speed up reads.", 60)
	assert.Equal(t, 2, r.renders, "a new width renders again")
}
