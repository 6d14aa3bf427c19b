// ABOUTME: Like/hate split bar for movie vote totals
// ABOUTME: Green share for likes, red for hates, gray when nobody voted

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/tui/icons"
)

// VoteBarConfig holds configuration for the vote bar
type VoteBarConfig struct {
	Width      int
	LikeColor  lipgloss.Color
	HateColor  lipgloss.Color
	EmptyColor lipgloss.Color
}

// DefaultVoteBarConfig returns sensible defaults
func DefaultVoteBarConfig() VoteBarConfig {
	return VoteBarConfig{
		Width:      20,
		LikeColor:  lipgloss.Color("#10B981"), // Green
		HateColor:  lipgloss.Color("#EF4444"), // Red
		EmptyColor: lipgloss.Color("#374151"), // Dark gray
	}
}

// LikeCells returns how many of width cells represent likes. Any non-zero
// side gets at least one cell.
func LikeCells(likes, hates, width int) int {
	total := likes + hates
	if total <= 0 || width <= 0 {
		return 0
	}
	n := likes * width / total
	if likes > 0 && n == 0 {
		n = 1
	}
	if hates > 0 && n == width {
		n = width - 1
	}
	return n
}

// VoteBar renders the likes share of all votes as a split bar
func VoteBar(likes, hates int, config VoteBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}

	var bar strings.Builder
	bar.WriteString("[")

	if likes+hates == 0 {
		bar.WriteString(lipgloss.NewStyle().Foreground(config.EmptyColor).Render(strings.Repeat("░", config.Width)))
	} else {
		liked := LikeCells(likes, hates, config.Width)
		bar.WriteString(lipgloss.NewStyle().Foreground(config.LikeColor).Render(strings.Repeat("█", liked)))
		bar.WriteString(lipgloss.NewStyle().Foreground(config.HateColor).Render(strings.Repeat("█", config.Width-liked)))
	}

	bar.WriteString("]")
	return bar.String()
}

// VoteCounts renders "▲ 3  ▼ 1", emphasising the viewer's own reaction.
func VoteCounts(likes, hates int, mine client.Reaction) string {
	likeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	hateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	switch mine {
	case client.Like:
		likeStyle = likeStyle.Bold(true).Underline(true)
	case client.Hate:
		hateStyle = hateStyle.Bold(true).Underline(true)
	}

	return fmt.Sprintf("%s  %s",
		likeStyle.Render(fmt.Sprintf("%s %d", icons.Like.String(), likes)),
		hateStyle.Render(fmt.Sprintf("%s %d", icons.Hate.String(), hates)))
}
