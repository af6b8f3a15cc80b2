// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package knowledge

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/jarvis-tui/internal/api"
	"github.com/jeranaias/jarvis-tui/internal/model"
	"github.com/jeranaias/jarvis-tui/internal/ui/components"
	"github.com/jeranaias/jarvis-tui/internal/ui/styles"
)

// User-facing error texts.
const (
	ErrTextFetch    = "Failed to fetch knowledge entries"
	ErrTextSearch   = "Failed to search knowledge entries"
	ErrTextRequired = "Title and content are required"
	ErrTextSave     = "Failed to save knowledge entry"
	ErrTextDelete   = "Failed to delete knowledge entry"
)

const confirmDeleteID = "delete-entry"

// =============================================================================
// FOCUS
// =============================================================================

// Focus identifies which part of the view receives keys.
type Focus int

const (
	FocusList Focus = iota
	FocusSearch
	FocusForm
)

// =============================================================================
// KNOWLEDGE MODEL
// =============================================================================

// Model is the Bubble Tea model for the knowledge base view.
type Model struct {
	backend Backend
	topK    int

	theme  *styles.Theme
	keyMap KeyMap

	width  int
	height int

	entries []model.KnowledgeEntry
	loading bool
	errText string
	notice  string

	search   textinput.Model
	form     Form
	formOpen bool
	focus    Focus

	// cursor indexes the filtered list; offset is the first visible entry.
	cursor int
	offset int

	confirm *components.ConfirmDialog
	spinner spinner.Model
}

// New creates a knowledge view bound to backend. topK is the result limit
// for searches; zero uses the backend default.
func New(backend Backend, theme *styles.Theme, topK int) Model {
	if topK <= 0 {
		topK = api.DefaultTopK
	}

	search := textinput.New()
	search.Placeholder = "Search knowledge base..."
	search.Prompt = "/ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Thinking

	return Model{
		backend: backend,
		topK:    topK,
		theme:   theme,
		keyMap:  DefaultKeyMap(),
		search:  search,
		form:    NewForm(),
		focus:   FocusList,
		confirm: components.NewConfirmDialog(theme),
		spinner: sp,
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Entries returns the entries currently held, before filtering.
func (m Model) Entries() []model.KnowledgeEntry { return m.entries }

// Visible returns the entries after the client-side filter.
func (m Model) Visible() []model.KnowledgeEntry {
	return FilterEntries(m.entries, m.search.Value())
}

// Loading reports whether a request is in flight.
func (m Model) Loading() bool { return m.loading }

// ErrorText returns the banner text, or "" when no banner is shown.
func (m Model) ErrorText() string { return m.errText }

// Notice returns the last transient notice.
func (m Model) Notice() string { return m.notice }

// FormOpen reports whether the add/edit form is shown.
func (m Model) FormOpen() bool { return m.formOpen }

// Form returns the entry form.
func (m Model) Form() Form { return m.form }

// Focus returns the focused area.
func (m Model) Focus() Focus { return m.focus }

// Selected returns the entry under the cursor.
func (m Model) Selected() (model.KnowledgeEntry, bool) {
	visible := m.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return model.KnowledgeEntry{}, false
	}
	return visible[m.cursor], true
}

// CapturesText reports whether printable keys go to a text field, so the
// app shell should not treat them as shortcuts.
func (m Model) CapturesText() bool {
	return m.focus != FocusList || m.confirm.IsVisible()
}

// Hints returns the key hints for the current focus.
func (m Model) Hints() []key.Binding {
	switch m.focus {
	case FocusForm:
		return m.keyMap.FormHelp()
	case FocusSearch:
		return m.keyMap.SearchHelp()
	default:
		return m.keyMap.ListHelp()
	}
}

// SetTopK changes the search result limit.
func (m *Model) SetTopK(topK int) {
	if topK > 0 {
		m.topK = topK
	}
}

// SetSize sets the area available to the view.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = max(width-6, 10)
	m.form.SetWidth(width)
	m.confirm.SetSize(width, height)
	m.ensureVisible()
}

// =============================================================================
// BUBBLE TEA METHODS
// =============================================================================

// Init does nothing; the app shell calls Refresh when the tab is shown.
func (m Model) Init() tea.Cmd {
	return nil
}

// Refresh starts a fetch-all, e.g. when the tab becomes active.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	m.errText = ""
	return tea.Batch(FetchCmd(m.backend), m.spinner.Tick)
}

// Update handles messages and returns the updated model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.confirm.IsVisible() {
			cmd, _ := m.confirm.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)

	case components.ConfirmResultMsg:
		return m.handleConfirm(msg)

	case EntriesMsg:
		return m.handleEntries(msg)

	case SavedMsg:
		return m.handleSaved(msg)

	case DeletedMsg:
		return m.handleDeleted(msg)

	case CopiedMsg:
		if msg.Err != nil {
			m.notice = "Failed to copy to clipboard"
		} else {
			m.notice = "Copied \"" + msg.Title + "\" to clipboard"
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.focus {
	case FocusSearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	case FocusForm:
		return m, m.form.Update(msg)
	}
	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.focus {
	case FocusSearch:
		return m.handleSearchKey(msg)
	case FocusForm:
		return m.handleFormKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureVisible()

	case key.Matches(msg, m.keyMap.Down):
		if m.cursor < len(m.Visible())-1 {
			m.cursor++
		}
		m.ensureVisible()

	case key.Matches(msg, m.keyMap.New):
		return m.toggleForm()

	case key.Matches(msg, m.keyMap.Edit):
		entry, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.form.Load(entry)
		m.form.SetWidth(m.width)
		m.formOpen = true
		m.focus = FocusForm
		m.errText = ""
		return m, m.form.setFocus(FieldTitle)

	case key.Matches(msg, m.keyMap.Delete):
		entry, ok := m.Selected()
		if !ok || m.loading {
			return m, nil
		}
		m.confirm.Show(confirmDeleteID, "Delete entry",
			"Are you sure you want to delete this entry?\n\n"+entry.Title, entry.ID)

	case key.Matches(msg, m.keyMap.Refresh):
		return m, m.Refresh()

	case key.Matches(msg, m.keyMap.Search):
		m.focus = FocusSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keyMap.Copy):
		entry, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, CopyCmd(entry)

	case key.Matches(msg, m.keyMap.Cancel):
		m.errText = ""
		m.notice = ""
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		m.focus = FocusList
		m.search.Blur()
		return m.runSearch()

	case key.Matches(msg, m.keyMap.Cancel), msg.Type == tea.KeyDown, msg.Type == tea.KeyTab:
		m.focus = FocusList
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	m.offset = 0
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Save):
		return m.submit()

	case key.Matches(msg, m.keyMap.Cancel):
		m.closeForm()
		return m, nil

	case key.Matches(msg, m.keyMap.NextField):
		return m, m.form.NextField()

	case key.Matches(msg, m.keyMap.PrevField):
		return m, m.form.PrevField()
	}

	if m.form.Focused() == FieldCategory {
		switch {
		case key.Matches(msg, m.keyMap.PrevCat):
			m.form.CycleCategory(-1)
		case key.Matches(msg, m.keyMap.NextCat), msg.Type == tea.KeyEnter, msg.Type == tea.KeySpace:
			m.form.CycleCategory(1)
		}
		return m, nil
	}

	// Enter inserts a newline in the content area and advances elsewhere.
	if msg.Type == tea.KeyEnter && m.form.Focused() != FieldContent {
		return m, m.form.NextField()
	}

	return m, m.form.Update(msg)
}

// =============================================================================
// ACTIONS
// =============================================================================

// runSearch searches the backend, or fetches everything for a blank query.
func (m Model) runSearch() (Model, tea.Cmd) {
	query := strings.TrimSpace(m.search.Value())
	if query == "" {
		return m, m.Refresh()
	}
	m.loading = true
	m.errText = ""
	return m, tea.Batch(SearchCmd(m.backend, query, m.topK), m.spinner.Tick)
}

func (m Model) toggleForm() (Model, tea.Cmd) {
	if m.formOpen {
		m.closeForm()
		return m, nil
	}
	m.form.Reset()
	m.form.SetWidth(m.width)
	m.formOpen = true
	m.focus = FocusForm
	return m, m.form.setFocus(FieldTitle)
}

func (m *Model) closeForm() {
	m.form.Reset()
	m.formOpen = false
	m.focus = FocusList
}

// submit validates the form and sends a create or update.
func (m Model) submit() (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	input := m.form.Input()
	if err := input.Validate(); err != nil {
		m.errText = ErrTextRequired
		return m, nil
	}
	m.loading = true
	m.errText = ""
	return m, SaveCmd(m.backend, m.form.EditingID(), input.Normalize())
}

// =============================================================================
// RESULT HANDLERS
// =============================================================================

func (m Model) handleEntries(msg EntriesMsg) (Model, tea.Cmd) {
	m.loading = false
	if msg.Err != nil {
		if msg.IsSearch() {
			m.errText = ErrTextSearch
		} else {
			m.errText = ErrTextFetch
		}
		return m, nil
	}

	m.entries = msg.Entries
	if m.entries == nil {
		m.entries = []model.KnowledgeEntry{}
	}
	if n := len(m.Visible()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	m.ensureVisible()
	return m, nil
}

func (m Model) handleSaved(msg SavedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.loading = false
		m.errText = ErrTextSave
		return m, nil
	}

	if msg.Updated {
		m.notice = "Entry updated"
	} else {
		m.notice = "Entry added"
	}
	m.closeForm()
	return m, m.Refresh()
}

func (m Model) handleConfirm(msg components.ConfirmResultMsg) (Model, tea.Cmd) {
	if msg.ID != confirmDeleteID || !msg.Confirmed {
		return m, nil
	}
	id, ok := msg.Payload.(int)
	if !ok || m.loading {
		return m, nil
	}
	m.loading = true
	m.errText = ""
	return m, DeleteCmd(m.backend, id)
}

func (m Model) handleDeleted(msg DeletedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.loading = false
		m.errText = ErrTextDelete
		return m, nil
	}
	log.Printf("knowledge: deleted entry %d: %s", msg.ID, msg.Message)
	m.notice = "Entry deleted"
	return m, m.Refresh()
}
