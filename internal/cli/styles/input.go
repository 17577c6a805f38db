package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// NewStyledInput creates a themed text input.
func NewStyledInput(theme *Theme, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.Muted)
	ti.TextStyle = lipgloss.NewStyle().Foreground(theme.Text)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	ti.PromptStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	ti.Prompt = "> "
	return ti
}

// NewSearchInput creates a search-specific input.
func NewSearchInput(theme *Theme) textinput.Model {
	ti := NewStyledInput(theme, "Search...")
	ti.Prompt = "/ "
	ti.CharLimit = 256
	return ti
}

// NewPasswordInput creates a masked input for wallet passwords.
func NewPasswordInput(theme *Theme, placeholder string) textinput.Model {
	ti := NewStyledInput(theme, placeholder)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 128
	return ti
}

// InputBox wraps a rendered input in a styled box.
func (t *Theme) InputBox(input string, focused bool) string {
	style := t.Input
	if focused {
		style = t.InputFocused
	}
	return style.Render(input)
}

// RelativeTime formats ts for badges: "now", "12m", "3h", "5d", or a date.
func RelativeTime(ts time.Time) string {
	d := time.Since(ts)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return ts.Format("Jan 2")
	}
}
