package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// ListKeyMap is the shared keybinding set for browsing panels.
type ListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Search key.Binding
	Select key.Binding
	Delete key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultListKeyMap returns the standard panel bindings.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k ListKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Select, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ListKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Search},
		{k.Select, k.Delete},
		{k.Help, k.Quit},
	}
}

// BookmarkKeyMap extends the list bindings with bookmark actions.
type BookmarkKeyMap struct {
	ListKeyMap
	Favorite key.Binding
	Sync     key.Binding
}

// DefaultBookmarkKeyMap returns the bookmark manager bindings.
func DefaultBookmarkKeyMap() BookmarkKeyMap {
	return BookmarkKeyMap{
		ListKeyMap: DefaultListKeyMap(),
		Favorite:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Sync:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync status")),
	}
}

// ShortHelp implements help.KeyMap.
func (k BookmarkKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Favorite, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k BookmarkKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Search},
		{k.Favorite, k.Sync, k.Delete},
		{k.Help, k.Quit},
	}
}

// NoteKeyMap extends the list bindings with the explicit sync action.
type NoteKeyMap struct {
	ListKeyMap
	Sync key.Binding
	New  key.Binding
}

// DefaultNoteKeyMap returns the notes panel bindings.
func DefaultNoteKeyMap() NoteKeyMap {
	return NoteKeyMap{
		ListKeyMap: DefaultListKeyMap(),
		Sync:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync to ledger")),
		New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note")),
	}
}

// ShortHelp implements help.KeyMap.
func (k NoteKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Sync, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k NoteKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Search},
		{k.New, k.Sync, k.Delete},
		{k.Help, k.Quit},
	}
}

// WalletKeyMap holds the wallet panel bindings.
type WalletKeyMap struct {
	Unlock  key.Binding
	LockKey key.Binding
	Send    key.Binding
	Refresh key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultWalletKeyMap returns the wallet panel bindings.
func DefaultWalletKeyMap() WalletKeyMap {
	return WalletKeyMap{
		Unlock:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unlock")),
		LockKey: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "lock")),
		Send:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "send")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh balance")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k WalletKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Unlock, k.Send, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k WalletKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Unlock, k.LockKey},
		{k.Send, k.Refresh},
		{k.Back, k.Help, k.Quit},
	}
}

// NewStyledHelp creates a themed help component.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	return h
}
