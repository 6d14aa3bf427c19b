// ABOUTME: Compact count block widget for the movie detail pane
// ABOUTME: Icon and title in the border, a large value and a muted subtitle

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/johnys190/movierama/internal/tui/icons"
)

// CountBlockConfig holds configuration for a count block
type CountBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultCountBlockConfig returns sensible defaults
func DefaultCountBlockConfig() CountBlockConfig {
	return CountBlockConfig{
		Width:       18,
		BorderColor: lipgloss.Color("#6B7280"), // Muted gray
		TitleColor:  lipgloss.Color("#E11D48"), // Cinema red
		ValueColor:  lipgloss.Color("#F9FAFB"), // Light
	}
}

// CountBlock renders a count with a title-in-border box:
//
//	┌─ ▲ Likes ──────┐
//	│  12            │
//	│  75% of votes  │
//	└────────────────┘
func CountBlock(icon icons.Icon, title string, count int, subtitle string, config CountBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 18
	}
	innerWidth := config.Width - 4

	titleStr := truncate(fmt.Sprintf("%s %s", icon.String(), title), innerWidth)
	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)
	topBorder := fmt.Sprintf("┌─ %s %s┐",
		titleStyle.Render(titleStr),
		strings.Repeat("─", max(0, config.Width-5-lipgloss.Width(titleStr))))

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	bottomBorder := fmt.Sprintf("└%s┘", strings.Repeat("─", config.Width-2))
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	return strings.Join([]string{
		borderStyle.Render(topBorder),
		row(valueStyle.Render(fmt.Sprintf("%d", count)), innerWidth, borderStyle),
		row(subtitleStyle.Render(truncate(subtitle, innerWidth)), innerWidth, borderStyle),
		borderStyle.Render(bottomBorder),
	}, "\n")
}

// row pads styled content to innerWidth display cells between side borders
func row(content string, innerWidth int, border lipgloss.Style) string {
	pad := max(0, innerWidth-lipgloss.Width(content))
	return border.Render("│  ") + content + strings.Repeat(" ", pad) + border.Render("│")
}

// truncate shortens a string to maxLen display cells with ellipsis if needed
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if lipgloss.Width(s) <= maxLen || len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
