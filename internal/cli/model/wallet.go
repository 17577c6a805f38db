// Package model provides Bubble Tea models for the veil panels.
package model

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veilbrowser/veil/internal/cli/styles"
	"github.com/veilbrowser/veil/internal/domain/entity"
	"github.com/veilbrowser/veil/internal/store"
)

type walletMode int

const (
	walletModeStatus walletMode = iota
	walletModeUnlock
	walletModeCreate
	walletModeSend
	walletModePhrase
)

// WalletModel is the wallet panel: status view, unlock and create forms,
// and the send form. Form state lives here; wallet state lives in the store.
type WalletModel struct {
	ctx    context.Context
	wallet *store.WalletStore
	theme  *styles.Theme
	keys   styles.WalletKeyMap
	help   help.Model

	mode     walletMode
	inputs   []textinput.Model
	focus    int
	errText  string
	phrase   string
	lastTxID string
	showHelp bool
	width    int
}

// NewWalletModel creates the wallet panel.
func NewWalletModel(ctx context.Context, theme *styles.Theme, wallet *store.WalletStore) WalletModel {
	return WalletModel{
		ctx:    ctx,
		wallet: wallet,
		theme:  theme,
		keys:   styles.DefaultWalletKeyMap(),
		help:   styles.NewStyledHelp(theme),
		width:  80,
	}
}

// walletRefreshedMsg signals that a store action finished; the model
// re-reads the store snapshot on render.
type walletRefreshedMsg struct{}

// walletSentMsg carries a successful send's transaction id.
type walletSentMsg struct {
	txID string
}

// walletCreatedMsg carries the one-time recovery phrase.
type walletCreatedMsg struct {
	phrase string
}

// Init implements tea.Model.
func (m WalletModel) Init() tea.Cmd {
	return func() tea.Msg {
		m.wallet.CheckStatus(m.ctx)
		return walletRefreshedMsg{}
	}
}

// Update implements tea.Model.
func (m WalletModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case walletRefreshedMsg:
		m.errText = m.wallet.Err()
		if m.errText == "" && m.mode == walletModeUnlock {
			m.mode = walletModeStatus
		}
		return m, nil

	case walletSentMsg:
		m.errText = ""
		m.lastTxID = msg.txID
		m.mode = walletModeStatus
		return m, nil

	case walletCreatedMsg:
		m.errText = ""
		m.phrase = msg.phrase
		m.mode = walletModePhrase
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m WalletModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == walletModeUnlock || m.mode == walletModeCreate || m.mode == walletModeSend {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.mode == walletModePhrase {
		// Any other key dismisses the one-time phrase display.
		m.phrase = ""
		m.mode = walletModeStatus
		return m, nil
	}

	snapshot := m.wallet.Snapshot()
	switch {
	case key.Matches(msg, m.keys.Unlock):
		switch snapshot.Status {
		case entity.WalletLocked:
			m.enterUnlockForm()
		case entity.WalletNone:
			m.enterCreateForm()
		}
		return m, nil

	case key.Matches(msg, m.keys.LockKey):
		if snapshot.Status == entity.WalletUnlocked {
			m.wallet.Lock(m.ctx)
			m.errText = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.Send):
		if snapshot.Status == entity.WalletUnlocked {
			m.enterSendForm()
		} else {
			m.errText = store.ErrWalletLocked
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, func() tea.Msg {
			m.wallet.RefreshBalance(m.ctx)
			return walletRefreshedMsg{}
		}
	}
	return m, nil
}

func (m *WalletModel) enterUnlockForm() {
	m.mode = walletModeUnlock
	m.errText = ""
	m.inputs = []textinput.Model{
		styles.NewPasswordInput(m.theme, "Password"),
	}
	m.focus = 0
	m.inputs[0].Focus()
}

func (m *WalletModel) enterCreateForm() {
	m.mode = walletModeCreate
	m.errText = ""
	m.inputs = []textinput.Model{
		styles.NewPasswordInput(m.theme, "Password (min 8 characters)"),
		styles.NewPasswordInput(m.theme, "Confirm password"),
	}
	m.focus = 0
	m.inputs[0].Focus()
}

func (m *WalletModel) enterSendForm() {
	m.mode = walletModeSend
	m.errText = ""
	m.inputs = []textinput.Model{
		styles.NewStyledInput(m.theme, "Recipient address (aleo1...)"),
		styles.NewStyledInput(m.theme, "Amount"),
		styles.NewStyledInput(m.theme, "Fee (optional)"),
		styles.NewStyledInput(m.theme, "Memo (optional)"),
	}
	m.focus = 0
	m.inputs[0].Focus()
}

func (m WalletModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = walletModeStatus
		m.inputs = nil
		m.errText = ""
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
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *WalletModel) refocus() {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m WalletModel) submitForm() (tea.Model, tea.Cmd) {
	switch m.mode {
	case walletModeUnlock:
		password := m.inputs[0].Value()
		return m, func() tea.Msg {
			m.wallet.Unlock(m.ctx, password)
			return walletRefreshedMsg{}
		}

	case walletModeCreate:
		password, confirm := m.inputs[0].Value(), m.inputs[1].Value()
		return m, func() tea.Msg {
			phrase, ok := m.wallet.Create(m.ctx, password, confirm)
			if !ok {
				return walletRefreshedMsg{}
			}
			return walletCreatedMsg{phrase: phrase}
		}

	case walletModeSend:
		to := m.inputs[0].Value()
		var amount, fee float64
		_, _ = fmt.Sscanf(m.inputs[1].Value(), "%g", &amount)
		_, _ = fmt.Sscanf(m.inputs[2].Value(), "%g", &fee)
		memo := m.inputs[3].Value()
		return m, func() tea.Msg {
			txID, ok := m.wallet.Send(m.ctx, to, amount, fee, memo)
			if !ok {
				return walletRefreshedMsg{}
			}
			return walletSentMsg{txID: txID}
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m WalletModel) View() string {
	t := m.theme

	var body string
	switch m.mode {
	case walletModeUnlock:
		body = m.formView("Unlock wallet")
	case walletModeCreate:
		body = m.formView("Create wallet")
	case walletModeSend:
		body = m.formView("Send credits")
	case walletModePhrase:
		body = lipgloss.JoinVertical(lipgloss.Left,
			t.Title.Render("Recovery phrase"),
			"",
			t.WarningStyle.Render("Write this down. It is shown exactly once."),
			"",
			t.Box.Render(m.phrase),
			"",
			t.Subtle.Render("Press any key to continue"),
		)
	default:
		body = m.statusView()
	}

	var helpView string
	if m.showHelp {
		helpView = m.help.View(m.keys)
	} else {
		helpView = t.Subtle.Render("? for help • q to quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		t.BoxHeader.Render("Wallet"),
		body,
		"",
		helpView,
	)
}

func (m WalletModel) statusView() string {
	t := m.theme
	w := m.wallet.Snapshot()

	var lines []string
	switch w.Status {
	case entity.WalletNone:
		lines = append(lines,
			t.Normal.Render("No wallet configured."),
			"",
			t.Subtle.Render("Press u to create one."),
		)
	case entity.WalletLocked:
		lines = append(lines,
			lipgloss.JoinHorizontal(lipgloss.Left, t.Normal.Render("Status  "), t.StatusBadge("locked")),
			"",
			t.Subtle.Render("Press u to unlock."),
		)
	case entity.WalletUnlocked:
		lines = append(lines,
			lipgloss.JoinHorizontal(lipgloss.Left, t.Normal.Render("Status   "), t.StatusBadge("unlocked")),
			t.Normal.Render("Address  ")+t.Highlight.Render(w.Address),
			t.Normal.Render("Balance  ")+t.Normal.Render(fmt.Sprintf("%.6f credits", w.Balance)),
		)
		if m.lastTxID != "" {
			lines = append(lines, "", t.Subtle.Render("Last transaction: ")+t.MutedBadge(m.lastTxID))
		}
	}

	if m.errText != "" {
		lines = append(lines, "", t.ErrorStyle.Render(m.errText))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m WalletModel) formView(title string) string {
	t := m.theme

	parts := []string{t.Title.Render(title), ""}
	for i, in := range m.inputs {
		parts = append(parts, t.InputBox(in.View(), i == m.focus))
	}
	if m.errText != "" {
		parts = append(parts, "", t.ErrorStyle.Render(m.errText))
	}
	parts = append(parts, "", t.Subtle.Render("enter to submit • esc to cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

var _ tea.Model = (*WalletModel)(nil)
