// ABOUTME: Badge widgets for reactions and notification kinds
// ABOUTME: Provides colored inline badges and status indicators

package widgets

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/notify"
	"github.com/johnys190/movierama/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

func colors(level StatusLevel) (bg, fg lipgloss.Color) {
	switch level {
	case StatusOK:
		return BadgeOKBg, BadgeOKFg
	case StatusWarning:
		return BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		return BadgeCritBg, BadgeCritFg
	case StatusInfo:
		return BadgeInfoBg, BadgeInfoFg
	default:
		return BadgeNeutralBg, BadgeNeutralFg
	}
}

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	bg, fg := colors(level)

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// LevelForKind maps a notification kind onto a badge level.
func LevelForKind(k notify.Kind) StatusLevel {
	switch k {
	case notify.Success:
		return StatusOK
	case notify.Warning:
		return StatusWarning
	case notify.Error:
		return StatusCritical
	case notify.Info:
		return StatusInfo
	default:
		return StatusNeutral
	}
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	bg, _ := colors(level)
	style := lipgloss.NewStyle().Foreground(bg)
	switch level {
	case StatusOK:
		return style.Render(icons.CheckOK.String())
	case StatusWarning:
		return style.Render(icons.Warning.String())
	case StatusCritical:
		return style.Render(icons.Critical.String())
	case StatusInfo:
		return style.Render(icons.Info.String())
	default:
		return style.Render("•")
	}
}

// ReactionBadge shows the viewer's own reaction, or nothing.
func ReactionBadge(r client.Reaction) string {
	switch r {
	case client.Like:
		return Badge(icons.Like.String()+" You like this", StatusOK)
	case client.Hate:
		return Badge(icons.Hate.String()+" You hate this", StatusCritical)
	default:
		return ""
	}
}
