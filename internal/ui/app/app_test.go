// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/jarvis-tui/internal/api"
	"github.com/jeranaias/jarvis-tui/internal/config"
	"github.com/jeranaias/jarvis-tui/internal/model"
	"github.com/jeranaias/jarvis-tui/internal/ui/chat"
	"github.com/jeranaias/jarvis-tui/internal/ui/components"
	"github.com/jeranaias/jarvis-tui/internal/ui/knowledge"
	"github.com/jeranaias/jarvis-tui/internal/ui/styles"
)

type fakeBackend struct {
	mu      sync.Mutex
	fetches int
	topKs   []int
}

func (f *fakeBackend) SendMessage(context.Context, string, []model.Message) (*api.ChatResponse, error) {
	return &api.ChatResponse{Response: "ok"}, nil
}

func (f *fakeBackend) GetHealth(context.Context) (*model.HealthStatus, error) {
	return &model.HealthStatus{Status: "healthy", LLMAvailable: true, VectorDBAvailable: true, EmbeddingModelAvailable: true}, nil
}

func (f *fakeBackend) GetAllEntries(context.Context) ([]model.KnowledgeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return []model.KnowledgeEntry{{ID: 1, Title: "Alpha", Content: "first"}}, nil
}

func (f *fakeBackend) Search(_ context.Context, _ string, topK int) ([]model.KnowledgeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topKs = append(f.topKs, topK)
	return nil, nil
}

func (f *fakeBackend) AddEntry(context.Context, model.EntryInput) (*model.KnowledgeEntry, error) {
	return &model.KnowledgeEntry{}, nil
}

func (f *fakeBackend) UpdateEntry(context.Context, int, model.EntryUpdate) (*model.KnowledgeEntry, error) {
	return &model.KnowledgeEntry{}, nil
}

func (f *fakeBackend) DeleteEntry(context.Context, int) (string, error) {
	return "deleted", nil
}

func newTestApp(b Backend, opts Options) *Model {
	if opts.TopK == 0 {
		opts.TopK = 5
	}
	m := New(b, styles.NewTheme(), opts)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// deliver runs cmd and feeds backend results back into m.
func deliver(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			deliver(m, c)
		}
	case knowledge.EntriesMsg, chat.HealthMsg, chat.ResponseMsg:
		_, next := m.Update(msg)
		deliver(m, next)
	}
}

func fkey(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func TestParseTab(t *testing.T) {
	assert.Equal(t, TabChat, ParseTab("chat"))
	assert.Equal(t, TabChat, ParseTab(""))
	assert.Equal(t, TabKnowledge, ParseTab("Knowledge"))
	assert.Equal(t, TabKnowledge, ParseTab("kb"))
}

func TestSwitchToKnowledgeFetchesEveryTime(t *testing.T) {
	b := &fakeBackend{}
	m := newTestApp(b, Options{})
	require.Equal(t, TabChat, m.Active())

	_, cmd := m.Update(fkey(tea.KeyF2))
	assert.Equal(t, TabKnowledge, m.Active())
	deliver(m, cmd)
	assert.Equal(t, 1, b.fetches)
	assert.Len(t, m.Knowledge().Entries(), 1)

	// Switching back to chat does not fetch.
	m.Update(fkey(tea.KeyF1))
	assert.Equal(t, TabChat, m.Active())
	assert.Equal(t, 1, b.fetches)

	_, cmd = m.Update(fkey(tea.KeyCtrlT))
	deliver(m, cmd)
	assert.Equal(t, TabKnowledge, m.Active())
	assert.Equal(t, 2, b.fetches)
}

func TestSwitchToActiveTabIsNoop(t *testing.T) {
	m := newTestApp(&fakeBackend{}, Options{})
	assert.Nil(t, m.SwitchTo(TabChat))
}

func TestStartOnKnowledgeTab(t *testing.T) {
	b := &fakeBackend{}
	m := newTestApp(b, Options{StartTab: TabKnowledge})
	deliver(m, m.Init())

	assert.Equal(t, TabKnowledge, m.Active())
	assert.Equal(t, 1, b.fetches)
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestApp(&fakeBackend{}, Options{})
	_, cmd := m.Update(fkey(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestHealthUpdatesHeader(t *testing.T) {
	m := newTestApp(&fakeBackend{}, Options{})
	deliver(m, m.Init())
	assert.Equal(t, components.HealthKnown, m.Header().State())
	assert.Contains(t, m.View(), "Ready")

	m.Update(chat.HealthMsg{Err: errors.New("refused")})
	assert.Equal(t, components.HealthUnreachable, m.Header().State())
	assert.Equal(t, chat.ErrTextConnect, m.Chat().ErrorText())
}

func TestChatHistorySurvivesTabSwitch(t *testing.T) {
	m := newTestApp(&fakeBackend{}, Options{})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hello")})
	_, cmd := m.Update(fkey(tea.KeyEnter))
	deliver(m, cmd)
	require.Equal(t, 2, m.Chat().Conversation().Len())

	m.Update(fkey(tea.KeyF2))
	m.Update(fkey(tea.KeyF1))
	assert.Equal(t, 2, m.Chat().Conversation().Len())
}

func TestReloadAppliesSearchTopK(t *testing.T) {
	b := &fakeBackend{}
	m := newTestApp(b, Options{StartTab: TabKnowledge})

	cfg := config.Default()
	cfg.API.SearchTopK = 9
	m.Update(ReloadMsg{config.Reload{Config: cfg}})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("vectors")})
	_, cmd := m.Update(fkey(tea.KeyEnter))
	deliver(m, cmd)

	assert.Equal(t, []int{9}, b.topKs)
}

func TestReloadAppliesTheme(t *testing.T) {
	prev := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(prev) })

	m := newTestApp(&fakeBackend{}, Options{})
	cfg := config.Default()

	cfg.UI.Theme = "light"
	m.Update(ReloadMsg{config.Reload{Config: cfg}})
	assert.False(t, m.Chat().MarkdownDark())

	cfg.UI.Theme = "dark"
	m.Update(ReloadMsg{config.Reload{Config: cfg}})
	assert.True(t, m.Chat().MarkdownDark())
}

func TestReloadFromChannel(t *testing.T) {
	ch := make(chan config.Reload, 1)
	m := newTestApp(&fakeBackend{}, Options{Reloads: ch})

	ch <- config.Reload{Err: errors.New("bad toml")}
	msg := waitForReload(ch)()
	reload, ok := msg.(ReloadMsg)
	require.True(t, ok)

	_, next := m.Update(reload)
	assert.NotNil(t, next, "the watcher loop continues after a failed reload")

	close(ch)
	assert.Nil(t, next())
}

func TestChatOptions(t *testing.T) {
	cfg := config.Default()
	cfg.UI.MaxSources = 4
	cfg.UI.RenderMarkdown = false
	cfg.Export.Dir = "/tmp/jarvis-exports"
	cfg.Export.Format = "json"

	opts := ChatOptions(cfg)
	assert.Equal(t, 4, opts.MaxSources)
	assert.False(t, opts.RenderMarkdown)
	assert.Equal(t, "/tmp/jarvis-exports", opts.ExportDir)
	assert.Equal(t, "json", opts.ExportFormat)
}

func TestViewShowsTabsAndHeader(t *testing.T) {
	m := newTestApp(&fakeBackend{}, Options{})
	view := m.View()
	for _, want := range []string{"Jarvis Assistant", "Chat [F1]", "Knowledge Base [F2]", "Welcome to Jarvis"} {
		assert.Contains(t, view, want)
	}
}
