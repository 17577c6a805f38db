package model

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veilbrowser/veil/internal/cli/styles"
	"github.com/veilbrowser/veil/internal/domain/entity"
	"github.com/veilbrowser/veil/internal/store"
)

// NotesModel is the notes panel with a sync status column and an explicit
// sync-to-ledger action.
type NotesModel struct {
	ctx   context.Context
	notes *store.NotesStore
	theme *styles.Theme
	keys  styles.NoteKeyMap
	help  help.Model

	list     list.Model
	editing  bool
	inputs   []textinput.Model
	focus    int
	syncing  map[entity.NoteID]bool
	showHelp bool
	errText  string
	width    int
	height   int
}

// NewNotesModel creates the notes panel.
func NewNotesModel(ctx context.Context, theme *styles.Theme, notes *store.NotesStore) NotesModel {
	return NotesModel{
		ctx:     ctx,
		notes:   notes,
		theme:   theme,
		keys:    styles.DefaultNoteKeyMap(),
		help:    styles.NewStyledHelp(theme),
		syncing: make(map[entity.NoteID]bool),
		width:   80,
		height:  24,
	}
}

// notesReloadedMsg signals the store finished a load or mutation.
type notesReloadedMsg struct{}

// noteSyncedMsg reports a finished sync attempt.
type noteSyncedMsg struct {
	id entity.NoteID
}

// Init implements tea.Model.
func (m NotesModel) Init() tea.Cmd {
	return func() tea.Msg {
		m.notes.Load(m.ctx)
		return notesReloadedMsg{}
	}
}

// Update implements tea.Model.
func (m NotesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuildList()
		return m, nil

	case notesReloadedMsg:
		m.errText = m.notes.Err()
		m.rebuildList()
		return m, nil

	case noteSyncedMsg:
		delete(m.syncing, msg.id)
		m.errText = m.notes.Err()
		m.rebuildList()
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditorKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m NotesModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.enterEditor()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Sync):
		if id, ok := m.selectedID(); ok && !m.syncing[id] {
			m.syncing[id] = true
			m.rebuildList()
			return m, func() tea.Msg {
				m.notes.Sync(m.ctx, id)
				return noteSyncedMsg{id: id}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if id, ok := m.selectedID(); ok {
			return m, func() tea.Msg {
				m.notes.Delete(m.ctx, id)
				return notesReloadedMsg{}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *NotesModel) enterEditor() {
	m.editing = true
	m.errText = ""
	m.inputs = []textinput.Model{
		styles.NewStyledInput(m.theme, "Title"),
		styles.NewStyledInput(m.theme, "Content"),
		styles.NewStyledInput(m.theme, "Tags (comma separated)"),
	}
	m.focus = 0
	m.inputs[0].Focus()
}

func (m NotesModel) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.inputs = nil
		return m, nil

	case "tab", "down":
		m.focus = (m.focus + 1) % len(m.inputs)
		m.refocus()
		return m, textinput.Blink

	case "shift+tab", "up":
		m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
		m.refocus()
		return m, textinput.Blink

	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.focus++
			m.refocus()
			return m, textinput.Blink
		}
		title := m.inputs[0].Value()
		content := m.inputs[1].Value()
		var tags []string
		for _, tag := range strings.Split(m.inputs[2].Value(), ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		m.editing = false
		m.inputs = nil
		return m, func() tea.Msg {
			m.notes.Create(m.ctx, title, content, tags)
			return notesReloadedMsg{}
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *NotesModel) refocus() {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m NotesModel) selectedID() (entity.NoteID, bool) {
	if item := m.list.SelectedItem(); item != nil {
		if ni, ok := item.(styles.NoteItem); ok {
			return entity.NoteID(ni.ID), true
		}
	}
	return "", false
}

func (m *NotesModel) rebuildList() {
	notes := m.notes.Notes()
	items := make([]styles.NoteItem, len(notes))
	for i, n := range notes {
		status := string(n.SyncStatus)
		if m.syncing[n.ID] {
			status = string(entity.NoteSyncing)
		}
		items[i] = styles.NoteItem{
			ID:         string(n.ID),
			Title:      n.Title,
			Preview:    n.Content,
			SyncStatus: status,
			UpdatedAt:  n.UpdatedAt,
		}
	}

	height := m.height - 8
	if height < 5 {
		height = 5
	}
	m.list = styles.NewNoteList(m.theme, items, m.width, height)
}

// View implements tea.Model.
func (m NotesModel) View() string {
	t := m.theme

	if m.editing {
		parts := []string{t.Title.Render("New note"), ""}
		for i, in := range m.inputs {
			parts = append(parts, t.InputBox(in.View(), i == m.focus))
		}
		parts = append(parts, "", t.Subtle.Render("enter to save • esc to cancel"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	listView := m.list.View()
	if m.errText != "" {
		listView = lipgloss.JoinVertical(lipgloss.Left,
			t.ErrorStyle.Render(m.errText),
			"",
			listView,
		)
	}

	var helpView string
	if m.showHelp {
		helpView = m.help.View(m.keys)
	} else {
		helpView = t.Subtle.Render("? for help • q to quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		t.BoxHeader.Render("Notes"),
		listView,
		"",
		helpView,
	)
}

var _ tea.Model = (*NotesModel)(nil)
