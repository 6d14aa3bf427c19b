// ABOUTME: Detail pane for the highlighted movie
// ABOUTME: Shows description, publisher, vote breakdown and the viewer's reaction

package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/tui/icons"
	"github.com/johnys190/movierama/internal/tui/styles"
	"github.com/johnys190/movierama/internal/tui/widgets"
)

// Detail displays one movie
type Detail struct {
	movie    *client.Movie
	reaction client.Reaction
	viewer   *client.User
	width    int
}

// New creates a detail pane; movie may be nil.
func New(width int) *Detail {
	return &Detail{width: width}
}

// Show sets the movie, the viewer's reaction to it and the viewer (nil
// when anonymous).
func (d *Detail) Show(movie *client.Movie, reaction client.Reaction, viewer *client.User) {
	d.movie = movie
	d.reaction = reaction
	d.viewer = viewer
}

// SetWidth updates the pane width
func (d *Detail) SetWidth(width int) {
	d.width = width
}

// View renders the detail pane
func (d *Detail) View() string {
	if d.movie == nil {
		return lipgloss.NewStyle().Width(d.width).Render(styles.Subtitle.Render("No movie selected"))
	}
	m := d.movie

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(m.Title))
	sb.WriteString("\n")

	byline := fmt.Sprintf("%s %s", icons.User.String(), m.PublishedBy)
	if !m.PublicationDate.IsZero() {
		byline += fmt.Sprintf("  %s %s", icons.Date.String(), m.PublicationDate.Format("2 Jan 2006 15:04"))
	}
	sb.WriteString(styles.Byline.Render(byline))
	sb.WriteString("\n\n")

	sb.WriteString(lipgloss.NewStyle().Width(max(10, d.width)).Render(m.Description))
	sb.WriteString("\n\n")

	// Vote blocks side by side
	total := m.Likes + m.Hates
	blockCfg := widgets.DefaultCountBlockConfig()
	blockCfg.Width = min(20, max(14, (d.width-2)/2))
	likes := widgets.CountBlock(icons.Like, "Likes", m.Likes, share(m.Likes, total), blockCfg)
	blockCfg.TitleColor = styles.Hate
	hates := widgets.CountBlock(icons.Hate, "Hates", m.Hates, share(m.Hates, total), blockCfg)
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, likes, "  ", hates))
	sb.WriteString("\n")

	barCfg := widgets.DefaultVoteBarConfig()
	barCfg.Width = max(10, blockCfg.Width*2)
	sb.WriteString(widgets.VoteBar(m.Likes, m.Hates, barCfg))
	sb.WriteString("\n\n")

	switch {
	case d.viewer == nil:
		sb.WriteString(styles.Help.Render("Login to vote."))
	case m.PublishedByUser(d.viewer):
		sb.WriteString(styles.Help.Render("You submitted this movie."))
	case d.reaction != client.ReactionNone:
		sb.WriteString(widgets.ReactionBadge(d.reaction))
	default:
		sb.WriteString(styles.Help.Render("Press l to like or h to hate."))
	}

	return lipgloss.NewStyle().Width(d.width).Render(sb.String())
}

func share(n, total int) string {
	if total == 0 {
		return "no votes yet"
	}
	return fmt.Sprintf("%d%% of votes", n*100/total)
}
