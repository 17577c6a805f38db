package model

import (
	"context"
	"time"

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

// HistoryModel is the day-grouped history browser panel.
type HistoryModel struct {
	ctx     context.Context
	history *store.HistoryStore
	theme   *styles.Theme
	keys    styles.ListKeyMap
	help    help.Model

	groups     []store.DayGroup
	activeDay  int
	list       list.Model
	search     textinput.Model
	searchMode bool
	showHelp   bool
	errText    string
	width      int
	height     int
}

// NewHistoryModel creates the history browser.
func NewHistoryModel(ctx context.Context, theme *styles.Theme, history *store.HistoryStore) HistoryModel {
	return HistoryModel{
		ctx:     ctx,
		history: history,
		theme:   theme,
		keys:    styles.DefaultListKeyMap(),
		help:    styles.NewStyledHelp(theme),
		search:  styles.NewSearchInput(theme),
		width:   80,
		height:  24,
	}
}

// historyReloadedMsg signals the store finished a load or mutation.
type historyReloadedMsg struct{}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return func() tea.Msg {
		m.history.Load(m.ctx, 0)
		return historyReloadedMsg{}
	}
}

// Update implements tea.Model.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuild()
		return m, nil

	case historyReloadedMsg:
		m.errText = m.history.Err()
		m.rebuild()
		return m, nil

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m HistoryModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searchMode = false
		m.search.Blur()
		if msg.String() == "esc" {
			m.search.SetValue("")
		}
		m.rebuild()
		return m, nil
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
}

func (m HistoryModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Delete):
		if item := m.list.SelectedItem(); item != nil {
			if hi, ok := item.(styles.HistoryItem); ok {
				url := hi.URL
				return m, func() tea.Msg {
					m.history.Delete(m.ctx, url)
					return historyReloadedMsg{}
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "tab":
		if len(m.groups) > 0 {
			m.activeDay = (m.activeDay + 1) % len(m.groups)
			m.rebuildList()
		}
		return m, nil
	case "shift+tab":
		if len(m.groups) > 0 {
			m.activeDay = (m.activeDay + len(m.groups) - 1) % len(m.groups)
			m.rebuildList()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *HistoryModel) rebuild() {
	query := m.search.Value()
	if query != "" {
		entries := m.history.Search(query)
		m.groups = []store.DayGroup{{Label: "Results", Entries: entries}}
		m.activeDay = 0
	} else {
		m.groups = m.history.GroupedByDay(time.Now())
		if m.activeDay >= len(m.groups) {
			m.activeDay = 0
		}
	}
	m.rebuildList()
}

func (m *HistoryModel) rebuildList() {
	var entries []*entity.HistoryEntry
	if m.activeDay < len(m.groups) {
		entries = m.groups[m.activeDay].Entries
	}

	items := make([]styles.HistoryItem, len(entries))
	for i, e := range entries {
		items[i] = styles.HistoryItem{
			URL:         e.URL,
			Title:       e.Title,
			VisitCount:  e.VisitCount,
			LastVisited: e.LastVisited,
		}
	}

	height := m.height - 8
	if height < 5 {
		height = 5
	}
	m.list = styles.NewHistoryList(m.theme, items, m.width, height)
}

// View implements tea.Model.
func (m HistoryModel) View() string {
	t := m.theme

	// Day tabs
	var tabs []string
	for i, g := range m.groups {
		style := t.InactiveTab
		if i == m.activeDay {
			style = t.ActiveTab
		}
		tabs = append(tabs, style.Render(g.Label))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Left, tabs...)

	var searchBar string
	if m.searchMode {
		searchBar = t.InputFocused.Render(m.search.View())
	} else {
		searchBar = t.Subtle.Render("Press / to search, Tab to switch days")
	}

	listView := m.list.View()
	if m.errText != "" {
		listView = t.ErrorStyle.Render(m.errText)
	}

	var helpView string
	if m.showHelp {
		helpView = m.help.View(m.keys)
	} else {
		helpView = t.Subtle.Render("? for help • q to quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		searchBar,
		"",
		listView,
		"",
		helpView,
	)
}

var _ tea.Model = (*HistoryModel)(nil)
