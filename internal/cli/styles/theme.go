// Package styles provides reusable lipgloss-based TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette holds the base colors the theme is derived from.
type Palette struct {
	Background     string
	Surface        string
	SurfaceVariant string
	Text           string
	Muted          string
	Accent         string
	Border         string
}

// DefaultDarkPalette returns the built-in dark palette.
func DefaultDarkPalette() Palette {
	return Palette{
		Background:     "#0b0b0d",
		Surface:        "#1a1a1d",
		SurfaceVariant: "#2b2b2f",
		Text:           "#f2f2f2",
		Muted:          "#8a8a92",
		Accent:         "#7c6cf0",
		Border:         "#34343a",
	}
}

// Theme holds lipgloss colors and pre-built styles shared by all panels.
type Theme struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Variant    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color

	Error   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color

	Title        lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListItemTitle    lipgloss.Style
	ListItemDesc     lipgloss.Style

	Badge      lipgloss.Style
	BadgeMuted lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	Box       lipgloss.Style
	BoxHeader lipgloss.Style
}

// NewTheme creates a Theme from a palette.
func NewTheme(p Palette) *Theme {
	t := &Theme{
		Background: lipgloss.Color(p.Background),
		Surface:    lipgloss.Color(p.Surface),
		Variant:    lipgloss.Color(p.SurfaceVariant),
		Text:       lipgloss.Color(p.Text),
		Muted:      lipgloss.Color(p.Muted),
		Accent:     lipgloss.Color(p.Accent),
		Border:     lipgloss.Color(p.Border),

		Error:   lipgloss.Color("#ef4444"),
		Warning: lipgloss.Color("#f59e0b"),
		Success: lipgloss.Color("#4ade80"),
	}
	t.buildStyles()
	return t
}

// DefaultTheme creates the theme used when no palette is configured.
func DefaultTheme() *Theme {
	return NewTheme(DefaultDarkPalette())
}

func (t *Theme) buildStyles() {
	t.Title = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	t.Normal = lipgloss.NewStyle().
		Foreground(t.Text)

	t.Subtle = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.Highlight = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	t.ActiveTab = lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Padding(0, 2).
		Bold(true)

	t.InactiveTab = lipgloss.NewStyle().
		Foreground(t.Muted).
		Background(t.Surface).
		Padding(0, 2)

	t.ListItem = lipgloss.NewStyle().
		Foreground(t.Text).
		PaddingLeft(2)

	t.ListItemSelected = lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Variant).
		PaddingLeft(2).
		Bold(true)

	t.ListItemTitle = lipgloss.NewStyle().
		Foreground(t.Text)

	t.ListItemDesc = lipgloss.NewStyle().
		Foreground(t.Muted)

	t.Badge = lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Padding(0, 1)

	t.BadgeMuted = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Variant).
		Padding(0, 1)

	t.Input = lipgloss.NewStyle().
		Foreground(t.Text).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	t.InputFocused = lipgloss.NewStyle().
		Foreground(t.Text).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Padding(0, 1)

	t.Box = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)

	t.BoxHeader = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Border).
		MarginBottom(1)
}

// MutedBadge renders s as a muted metadata badge.
func (t *Theme) MutedBadge(s string) string {
	return t.BadgeMuted.Render(s)
}

// StatusBadge renders a sync or lifecycle status with a semantic color.
func (t *Theme) StatusBadge(status string) string {
	switch status {
	case "success", "on-chain", "finalized", "completed", "unlocked":
		return t.SuccessStyle.Render("● " + status)
	case "failed", "rejected", "cancelled":
		return t.ErrorStyle.Render("● " + status)
	case "syncing", "pending", "active":
		return t.WarningStyle.Render("● " + status)
	default:
		return t.Subtle.Render("● " + status)
	}
}
