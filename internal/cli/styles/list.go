package styles

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	cursorSelected = "▸ "
	cursorEmpty    = "  "
)

// HistoryItem represents one aggregated history entry for the list.
type HistoryItem struct {
	URL         string
	Title       string
	VisitCount  int64
	LastVisited time.Time
	DayLabel    string
}

// FilterValue implements list.Item.
func (i HistoryItem) FilterValue() string {
	return i.Title + " " + i.URL
}

func (i HistoryItem) titleLine() string {
	if i.Title != "" {
		return i.Title
	}
	return i.URL
}

// HistoryDelegate renders history items with theme styling.
type HistoryDelegate struct {
	Theme *Theme
}

func (d HistoryDelegate) Height() int                             { return 2 }
func (d HistoryDelegate) Spacing() int                            { return 0 }
func (d HistoryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders a single history item: title line, then URL with badges.
func (d HistoryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	hi, ok := item.(HistoryItem)
	if !ok {
		return
	}

	t := d.Theme
	selected := index == m.Index()
	const maxTitle, maxURL = 60, 50

	title := truncate(hi.titleLine(), maxTitle)
	url := truncate(hi.URL, maxURL)

	cursor := cursorEmpty
	titleStyle := t.ListItemTitle
	urlStyle := t.ListItemDesc
	if selected {
		cursor = cursorSelected
		titleStyle = titleStyle.Foreground(t.Accent).Bold(true)
		urlStyle = urlStyle.Foreground(t.Text)
	}

	line1 := lipgloss.JoinHorizontal(lipgloss.Left,
		t.Highlight.Render(cursor),
		titleStyle.Render(title),
	)
	line2 := lipgloss.JoinHorizontal(lipgloss.Left,
		strings.Repeat(" ", 2),
		urlStyle.Render(url),
		" ",
		t.MutedBadge(fmt.Sprintf("%d", hi.VisitCount)),
		" ",
		t.MutedBadge(RelativeTime(hi.LastVisited)),
	)

	_, _ = fmt.Fprintf(w, "%s\n%s", line1, line2)
}

// NewHistoryList creates a themed list for history items.
func NewHistoryList(theme *Theme, items []HistoryItem, width, height int) list.Model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}
	return newList(theme, listItems, HistoryDelegate{Theme: theme}, width, height)
}

// BookmarkItem represents one bookmark for the manager list.
type BookmarkItem struct {
	ID         string
	URL        string
	Title      string
	Folder     string
	Tags       []string
	IsFavorite bool
	SyncStatus string
}

// FilterValue implements list.Item.
func (i BookmarkItem) FilterValue() string {
	return i.Title + " " + i.URL + " " + strings.Join(i.Tags, " ")
}

// BookmarkDelegate renders bookmark items.
type BookmarkDelegate struct {
	Theme *Theme
}

func (d BookmarkDelegate) Height() int                             { return 2 }
func (d BookmarkDelegate) Spacing() int                            { return 0 }
func (d BookmarkDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders title + favorite marker, then URL with folder and sync
// status badges.
func (d BookmarkDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	bi, ok := item.(BookmarkItem)
	if !ok {
		return
	}

	t := d.Theme
	selected := index == m.Index()

	title := truncate(bi.Title, 60)
	if title == "" {
		title = truncate(bi.URL, 60)
	}
	if bi.IsFavorite {
		title = "★ " + title
	}

	cursor := cursorEmpty
	titleStyle := t.ListItemTitle
	if selected {
		cursor = cursorSelected
		titleStyle = titleStyle.Foreground(t.Accent).Bold(true)
	}

	meta := t.MutedBadge(bi.Folder)
	if bi.SyncStatus != "" {
		meta = lipgloss.JoinHorizontal(lipgloss.Left, meta, " ", t.StatusBadge(bi.SyncStatus))
	}

	line1 := lipgloss.JoinHorizontal(lipgloss.Left,
		t.Highlight.Render(cursor),
		titleStyle.Render(title),
	)
	line2 := lipgloss.JoinHorizontal(lipgloss.Left,
		strings.Repeat(" ", 2),
		t.ListItemDesc.Render(truncate(bi.URL, 50)),
		" ",
		meta,
	)

	_, _ = fmt.Fprintf(w, "%s\n%s", line1, line2)
}

// NewBookmarkList creates a themed list for bookmarks.
func NewBookmarkList(theme *Theme, items []BookmarkItem, width, height int) list.Model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}
	return newList(theme, listItems, BookmarkDelegate{Theme: theme}, width, height)
}

// NoteItem represents one note with its sync status.
type NoteItem struct {
	ID         string
	Title      string
	Preview    string
	SyncStatus string
	UpdatedAt  time.Time
}

// FilterValue implements list.Item.
func (i NoteItem) FilterValue() string {
	return i.Title + " " + i.Preview
}

// NoteDelegate renders note items with a sync status column.
type NoteDelegate struct {
	Theme *Theme
}

func (d NoteDelegate) Height() int                             { return 2 }
func (d NoteDelegate) Spacing() int                            { return 0 }
func (d NoteDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render renders title + status badge, then a content preview.
func (d NoteDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ni, ok := item.(NoteItem)
	if !ok {
		return
	}

	t := d.Theme
	selected := index == m.Index()

	cursor := cursorEmpty
	titleStyle := t.ListItemTitle
	if selected {
		cursor = cursorSelected
		titleStyle = titleStyle.Foreground(t.Accent).Bold(true)
	}

	line1 := lipgloss.JoinHorizontal(lipgloss.Left,
		t.Highlight.Render(cursor),
		titleStyle.Render(truncate(ni.Title, 50)),
		" ",
		t.StatusBadge(ni.SyncStatus),
		" ",
		t.MutedBadge(RelativeTime(ni.UpdatedAt)),
	)
	line2 := lipgloss.JoinHorizontal(lipgloss.Left,
		strings.Repeat(" ", 2),
		t.ListItemDesc.Render(truncate(ni.Preview, 70)),
	)

	_, _ = fmt.Fprintf(w, "%s\n%s", line1, line2)
}

// NewNoteList creates a themed list for notes.
func NewNoteList(theme *Theme, items []NoteItem, width, height int) list.Model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}
	return newList(theme, listItems, NoteDelegate{Theme: theme}, width, height)
}

func newList(theme *Theme, items []list.Item, delegate list.ItemDelegate, width, height int) list.Model {
	l := list.New(items, delegate, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)

	l.Styles.PaginationStyle = lipgloss.NewStyle().Foreground(theme.Muted)
	l.Styles.ActivePaginationDot = lipgloss.NewStyle().Foreground(theme.Accent)
	l.Styles.InactivePaginationDot = lipgloss.NewStyle().Foreground(theme.Muted)
	return l
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
