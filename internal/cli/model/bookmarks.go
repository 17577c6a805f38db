package model

import (
	"context"

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

// BookmarksModel is the bookmark manager panel.
type BookmarksModel struct {
	ctx       context.Context
	bookmarks *store.BookmarksStore
	theme     *styles.Theme
	keys      styles.BookmarkKeyMap
	help      help.Model

	list       list.Model
	search     textinput.Model
	searchMode bool
	query      string
	showHelp   bool
	errText    string
	width      int
	height     int
}

// NewBookmarksModel creates the bookmark manager.
func NewBookmarksModel(ctx context.Context, theme *styles.Theme, bookmarks *store.BookmarksStore) BookmarksModel {
	return BookmarksModel{
		ctx:       ctx,
		bookmarks: bookmarks,
		theme:     theme,
		keys:      styles.DefaultBookmarkKeyMap(),
		help:      styles.NewStyledHelp(theme),
		search:    styles.NewSearchInput(theme),
		width:     80,
		height:    24,
	}
}

// bookmarksReloadedMsg signals the store finished a load or mutation.
type bookmarksReloadedMsg struct{}

// Init implements tea.Model.
func (m BookmarksModel) Init() tea.Cmd {
	return func() tea.Msg {
		m.bookmarks.Load(m.ctx)
		return bookmarksReloadedMsg{}
	}
}

// Update implements tea.Model.
func (m BookmarksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuildList()
		return m, nil

	case bookmarksReloadedMsg:
		m.errText = m.bookmarks.Err()
		m.rebuildList()
		return m, nil

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m BookmarksModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchMode = false
		m.search.Blur()
		m.query = ""
		m.rebuildList()
		return m, nil
	case "enter":
		m.searchMode = false
		m.search.Blur()
		m.query = m.search.Value()
		m.rebuildList()
		return m, nil
	default:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
}

func (m BookmarksModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

	case key.Matches(msg, m.keys.Favorite):
		if id, ok := m.selectedID(); ok {
			return m, func() tea.Msg {
				m.bookmarks.ToggleFavorite(m.ctx, id)
				return bookmarksReloadedMsg{}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if id, ok := m.selectedID(); ok {
			return m, func() tea.Msg {
				m.bookmarks.Delete(m.ctx, id)
				return bookmarksReloadedMsg{}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BookmarksModel) selectedID() (entity.BookmarkID, bool) {
	if item := m.list.SelectedItem(); item != nil {
		if bi, ok := item.(styles.BookmarkItem); ok {
			return entity.BookmarkID(bi.ID), true
		}
	}
	return "", false
}

func (m *BookmarksModel) rebuildList() {
	var source []*entity.Bookmark
	if m.query != "" {
		source = m.bookmarks.Search(m.query)
	} else {
		source = m.bookmarks.Bookmarks()
	}

	folders := make(map[entity.FolderID]string)
	for _, f := range m.bookmarks.Folders() {
		folders[f.ID] = f.Name
	}

	items := make([]styles.BookmarkItem, len(source))
	for i, b := range source {
		var syncStatus string
		if task := m.bookmarks.SyncStatus(b.ID); task != nil {
			syncStatus = string(task.Status)
		}
		items[i] = styles.BookmarkItem{
			ID:         string(b.ID),
			URL:        b.URL,
			Title:      b.Title,
			Folder:     folders[b.FolderID],
			Tags:       b.Tags,
			IsFavorite: b.IsFavorite,
			SyncStatus: syncStatus,
		}
	}

	height := m.height - 8
	if height < 5 {
		height = 5
	}
	m.list = styles.NewBookmarkList(m.theme, items, m.width, height)
}

// View implements tea.Model.
func (m BookmarksModel) View() string {
	t := m.theme

	var searchBar string
	switch {
	case m.searchMode:
		searchBar = t.InputFocused.Render(m.search.View())
	case m.query != "":
		searchBar = t.Subtle.Render("Filter: ") + t.Badge.Render(m.query) + t.Subtle.Render(" (esc in search to clear)")
	default:
		searchBar = t.Subtle.Render("Press / to search")
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
		t.BoxHeader.Render("Bookmarks"),
		searchBar,
		"",
		listView,
		"",
		helpView,
	)
}

var _ tea.Model = (*BookmarksModel)(nil)
