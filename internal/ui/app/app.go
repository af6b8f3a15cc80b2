// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app composes the chat and knowledge views into the tabbed
// jarvis TUI.
package app

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/jarvis-tui/internal/config"
	"github.com/jeranaias/jarvis-tui/internal/ui/chat"
	"github.com/jeranaias/jarvis-tui/internal/ui/components"
	"github.com/jeranaias/jarvis-tui/internal/ui/knowledge"
	"github.com/jeranaias/jarvis-tui/internal/ui/styles"
)

// =============================================================================
// TABS
// =============================================================================

// Tab identifies a top-level view.
type Tab int

const (
	TabChat Tab = iota
	TabKnowledge
)

// Title returns the tab label.
func (t Tab) Title() string {
	if t == TabKnowledge {
		return "Knowledge Base"
	}
	return "Chat"
}

// ParseTab maps a config value ("chat", "knowledge") to a Tab.
func ParseTab(s string) Tab {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "knowledge", "kb":
		return TabKnowledge
	default:
		return TabChat
	}
}

// Backend is everything the TUI calls on the API client.
type Backend interface {
	chat.Backend
	knowledge.Backend
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// Options configures the application model.
type Options struct {
	StartTab Tab
	Chat     chat.Options
	TopK     int
	// Reloads, when set, delivers config file reloads.
	Reloads <-chan config.Reload
}

// Model is the root Bubble Tea model.
type Model struct {
	theme  *styles.Theme
	keyMap KeyMap

	header *components.Header
	status *components.StatusBar

	chat chat.Model
	kb   knowledge.Model

	active  Tab
	reloads <-chan config.Reload

	width  int
	height int
}

// New creates the application model.
func New(backend Backend, theme *styles.Theme, opts Options) *Model {
	m := &Model{
		theme:   theme,
		keyMap:  DefaultKeyMap(),
		header:  components.NewHeader(theme),
		status:  components.NewStatusBar(theme),
		chat:    chat.New(backend, theme, opts.Chat),
		kb:      knowledge.New(backend, theme, opts.TopK),
		active:  opts.StartTab,
		reloads: opts.Reloads,
	}
	if m.active == TabKnowledge {
		m.chat.Blur()
	}
	return m
}

// Active returns the visible tab.
func (m *Model) Active() Tab { return m.active }

// Chat returns the chat view.
func (m *Model) Chat() chat.Model { return m.chat }

// Knowledge returns the knowledge view.
func (m *Model) Knowledge() knowledge.Model { return m.kb }

// Header returns the header component.
func (m *Model) Header() *components.Header { return m.header }

// =============================================================================
// BUBBLE TEA METHODS
// =============================================================================

// Init starts the health check and, when the knowledge tab is shown
// first, the initial fetch.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.chat.Init(), waitForReload(m.reloads)}
	if m.active == TabKnowledge {
		cmds = append(cmds, m.kb.Refresh())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case chat.HealthMsg:
		if msg.Err != nil || msg.Status == nil {
			m.header.SetUnreachable()
		} else {
			m.header.SetHealth(*msg.Status)
		}
		return m, m.updateChat(msg)

	case chat.ResponseMsg, chat.ExportedMsg, chat.CopiedMsg:
		return m, m.updateChat(msg)

	case knowledge.EntriesMsg, knowledge.SavedMsg, knowledge.DeletedMsg,
		knowledge.CopiedMsg, components.ConfirmResultMsg:
		return m, m.updateKnowledge(msg)

	case spinner.TickMsg:
		// Each spinner ignores ticks carrying another spinner's ID.
		return m, tea.Batch(m.updateChat(msg), m.updateKnowledge(msg))

	case ReloadMsg:
		return m, m.applyReload(msg)
	}

	if m.active == TabKnowledge {
		return m, m.updateKnowledge(msg)
	}
	return m, m.updateChat(msg)
}

// handleKeyPress processes global shortcuts before the active view.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.ChatTab):
		return m, m.SwitchTo(TabChat)

	case key.Matches(msg, m.keyMap.KnowledgeTab):
		return m, m.SwitchTo(TabKnowledge)

	case key.Matches(msg, m.keyMap.Toggle):
		if m.active == TabChat {
			return m, m.SwitchTo(TabKnowledge)
		}
		return m, m.SwitchTo(TabChat)
	}

	if m.active == TabKnowledge {
		return m, m.updateKnowledge(msg)
	}
	return m, m.updateChat(msg)
}

// SwitchTo activates tab. Activating the knowledge tab always re-fetches
// the entry list; both views keep their state across switches.
func (m *Model) SwitchTo(tab Tab) tea.Cmd {
	if tab == m.active {
		return nil
	}
	m.active = tab

	if tab == TabKnowledge {
		m.chat.Blur()
		return m.kb.Refresh()
	}
	return m.chat.Focus()
}

func (m *Model) updateChat(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return cmd
}

func (m *Model) updateKnowledge(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.kb, cmd = m.kb.Update(msg)
	return cmd
}

// resize lays out the header, tab bar and status bar and gives the
// remaining rows to the views.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.header.SetWidth(width)
	m.status.SetWidth(width)

	chrome := lipgloss.Height(m.header.View()) + 1 + 1
	body := max(height-chrome, 3)

	m.chat.SetSize(width, body)
	m.kb.SetSize(width, body)
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the header, tabs, active view and status bar.
func (m *Model) View() string {
	var body string
	var hints []key.Binding
	var message string

	if m.active == TabKnowledge {
		body = m.kb.View()
		hints = m.kb.Hints()
		message = m.kb.Notice()
	} else {
		body = m.chat.View()
		hints = m.chat.KeyMap().ShortHelp()
		message = m.chat.Notice()
	}
	m.status.Message = message
	m.status.SetHints(append(hints, m.keyMap.Toggle, m.keyMap.Quit)...)

	if m.height > 0 {
		chrome := lipgloss.Height(m.header.View()) + 2
		body = lipgloss.NewStyle().Height(max(m.height-chrome, 1)).MaxHeight(max(m.height-chrome, 1)).Render(body)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.renderTabs(),
		body,
		m.status.View(),
	)
}

func (m *Model) renderTabs() string {
	var tabs []string
	for i, tab := range []Tab{TabChat, TabKnowledge} {
		label := tab.Title() + " [F" + string(rune('1'+i)) + "]"
		if tab == m.active {
			tabs = append(tabs, m.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

// ReloadMsg wraps a config file reload.
type ReloadMsg struct {
	config.Reload
}

// waitForReload blocks until the next config reload. A nil or closed
// channel ends the loop.
func waitForReload(ch <-chan config.Reload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return ReloadMsg{r}
	}
}

// applyReload pushes display settings from a reloaded config into the
// views. The backend URL is fixed for the life of the process.
func (m *Model) applyReload(msg ReloadMsg) tea.Cmd {
	next := waitForReload(m.reloads)
	if msg.Err != nil {
		log.Printf("CONFIG: reload failed: %v", msg.Err)
		m.status.Message = "Config reload failed"
		return next
	}

	config.SetGlobal(msg.Config)
	styles.ApplyMode(msg.Config.UI.Theme)
	m.theme.IsDark = lipgloss.HasDarkBackground()
	m.chat.SetDark(m.theme.IsDark)
	m.chat.SetOptions(ChatOptions(msg.Config))
	m.kb.SetTopK(msg.Config.API.SearchTopK)
	log.Printf("CONFIG: reloaded")
	return next
}

// ChatOptions derives chat view options from cfg.
func ChatOptions(cfg *config.Config) chat.Options {
	opts := chat.DefaultOptions()
	opts.MaxSources = cfg.UI.MaxSources
	opts.RenderMarkdown = cfg.UI.RenderMarkdown
	if cfg.Export.Format != "" {
		opts.ExportFormat = cfg.Export.Format
	}
	if dir, err := cfg.ExportDir(); err == nil {
		opts.ExportDir = dir
	}
	return opts
}
