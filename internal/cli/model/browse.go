package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veilbrowser/veil/internal/cli/styles"
	"github.com/veilbrowser/veil/internal/store"
)

// RefreshMsg asks the browse model to re-render from fresh store snapshots.
// The event dispatcher sends it through Program.Send whenever a host event
// mutates a store.
type RefreshMsg struct{}

// BrowseModel is the main browsing surface: tab strip, address bar, and the
// state of the active tab. Rendering happens host-side; this panel is the
// control deck.
type BrowseModel struct {
	ctx       context.Context
	tabs      *store.TabsStore
	downloads *store.DownloadsStore
	theme     *styles.Theme

	address     textinput.Model
	addressMode bool
	errText     string
	width       int
}

// NewBrowseModel creates the browsing panel.
func NewBrowseModel(ctx context.Context, theme *styles.Theme, tabs *store.TabsStore, downloads *store.DownloadsStore) BrowseModel {
	address := styles.NewStyledInput(theme, "Enter URL...")
	address.Prompt = "→ "
	address.CharLimit = 2048
	return BrowseModel{
		ctx:       ctx,
		tabs:      tabs,
		downloads: downloads,
		theme:     theme,
		address:   address,
		width:     100,
	}
}

// Init implements tea.Model.
func (m BrowseModel) Init() tea.Cmd {
	return func() tea.Msg {
		if m.tabs.Count() == 0 {
			m.tabs.Init(m.ctx)
		}
		return RefreshMsg{}
	}
}

// Update implements tea.Model.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case RefreshMsg:
		m.errText = m.tabs.Err()
		return m, nil

	case tea.KeyMsg:
		if m.addressMode {
			return m.handleAddressKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m BrowseModel) handleAddressKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.addressMode = false
		m.address.Blur()
		return m, nil
	case "enter":
		m.addressMode = false
		m.address.Blur()
		url := normalizeURL(m.address.Value())
		return m, func() tea.Msg {
			m.tabs.Navigate(m.ctx, url)
			return RefreshMsg{}
		}
	default:
		var cmd tea.Cmd
		m.address, cmd = m.address.Update(msg)
		return m, cmd
	}
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "o", "ctrl+l":
		m.addressMode = true
		m.errText = ""
		if tab, ok := m.tabs.ActiveTab(); ok {
			m.address.SetValue(tab.URL)
		}
		m.address.Focus()
		return m, textinput.Blink

	case "ctrl+t":
		return m, func() tea.Msg {
			m.tabs.NewTab(m.ctx, "")
			return RefreshMsg{}
		}

	case "ctrl+w":
		if tab, ok := m.tabs.ActiveTab(); ok {
			id := tab.ID
			return m, func() tea.Msg {
				m.tabs.Close(m.ctx, id)
				return RefreshMsg{}
			}
		}
		return m, nil

	case "tab":
		return m.cycleTab(1)

	case "shift+tab":
		return m.cycleTab(-1)

	case "backspace":
		return m, func() tea.Msg {
			m.tabs.GoBack(m.ctx)
			return RefreshMsg{}
		}

	case "f":
		return m, func() tea.Msg {
			m.tabs.GoForward(m.ctx)
			return RefreshMsg{}
		}

	case "r":
		return m, func() tea.Msg {
			m.tabs.Reload(m.ctx)
			return RefreshMsg{}
		}
	}
	return m, nil
}

func (m BrowseModel) cycleTab(dir int) (tea.Model, tea.Cmd) {
	tabs := m.tabs.Tabs()
	active, ok := m.tabs.ActiveTab()
	if !ok || len(tabs) < 2 {
		return m, nil
	}
	idx := 0
	for i, t := range tabs {
		if t.ID == active.ID {
			idx = i
			break
		}
	}
	next := (idx + dir + len(tabs)) % len(tabs)
	id := tabs[next].ID
	return m, func() tea.Msg {
		m.tabs.Switch(m.ctx, id)
		return RefreshMsg{}
	}
}

// View implements tea.Model.
func (m BrowseModel) View() string {
	t := m.theme
	active, _ := m.tabs.ActiveTab()

	// Tab strip
	var strip []string
	for _, tab := range m.tabs.Tabs() {
		label := tab.DisplayTitle()
		if len(label) > 20 {
			label = label[:17] + "..."
		}
		if tab.IsLoading {
			label = "… " + label
		}
		style := t.InactiveTab
		if tab.ID == active.ID {
			style = t.ActiveTab
		}
		strip = append(strip, style.Render(label))
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Left, strip...)

	// Address bar
	var addressBar string
	if m.addressMode {
		addressBar = t.InputFocused.Render(m.address.View())
	} else {
		addressBar = t.Input.Render(t.Normal.Render(active.URL))
	}

	// Status line
	var status []string
	if active.CanGoBack {
		status = append(status, t.Subtle.Render("←"))
	}
	if active.CanGoForward {
		status = append(status, t.Subtle.Render("→"))
	}
	if dls := m.downloads.Active(); len(dls) > 0 {
		status = append(status, t.WarningStyle.Render(fmt.Sprintf("%d download(s)", len(dls))))
	}
	if m.errText != "" {
		status = append(status, t.ErrorStyle.Render(m.errText))
	}
	statusLine := strings.Join(status, "  ")

	return lipgloss.JoinVertical(lipgloss.Left,
		tabBar,
		"",
		addressBar,
		"",
		statusLine,
		"",
		t.Subtle.Render("o address • ctrl+t new tab • ctrl+w close • tab switch • r reload • q quit"),
	)
}

// normalizeURL turns bare input into a navigable URL.
func normalizeURL(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return input
	}
	if strings.Contains(input, "://") || strings.HasPrefix(input, "about:") {
		return input
	}
	if strings.Contains(input, ".") && !strings.Contains(input, " ") {
		return "https://" + input
	}
	return "https://duckduckgo.com/?q=" + strings.ReplaceAll(input, " ", "+")
}

var _ tea.Model = (*BrowseModel)(nil)
