// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Defines colors, borders, text styles and the huh form theme

package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#E11D48") // Cinema red
	Secondary = lipgloss.Color("#10B981") // Green
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	BgDark    = lipgloss.Color("#1F2937") // Dark gray

	// Colors - Extended palette
	Accent  = lipgloss.Color("#FB7185") // Lighter red for highlights
	Surface = lipgloss.Color("#374151") // Elevated surface background
	Hate    = lipgloss.Color("#F97316") // Orange, distinct from errors

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	// Status indicators
	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	// Movie list rows
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Byline = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

// FormTheme is the huh theme shared by every form screen: a red bar marks the
// focused field, blurred fields fade to gray.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = fg(Primary).Bold(true).MarginBottom(1)
	t.Group.Description = fg(Muted).MarginBottom(1)

	f := &t.Focused
	f.Base = lipgloss.NewStyle().PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).BorderLeft(true).BorderForeground(Primary)
	f.Title = fg(Accent).Bold(true)
	f.Description = fg(Muted)
	f.ErrorIndicator = fg(Danger).SetString(" *")
	f.ErrorMessage = fg(Danger)
	f.SelectSelector = fg(Primary).SetString("> ")
	f.Option = fg(Text)
	f.SelectedOption = fg(Primary).Bold(true)
	f.TextInput.Cursor = fg(Primary)
	f.TextInput.Placeholder = fg(Muted)
	f.TextInput.Prompt = fg(Primary)
	f.TextInput.Text = fg(Text)

	button := lipgloss.NewStyle().Padding(0, 2).MarginRight(1)
	f.FocusedButton = button.Foreground(Text).Background(Primary)
	f.BlurredButton = button.Foreground(Muted).Background(Surface)

	t.Blurred = t.Focused
	b := &t.Blurred
	b.Base = lipgloss.NewStyle().PaddingLeft(1).BorderStyle(lipgloss.HiddenBorder()).BorderLeft(true)
	b.Title = fg(Muted)
	b.SelectSelector = fg(Muted).SetString("  ")
	b.Option = fg(Muted)

	return t
}
