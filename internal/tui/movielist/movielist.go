// ABOUTME: Movie list component showing one page of recommendations
// ABOUTME: Handles selection, paging and sort keys and the viewer's reactions

package movielist

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/tui/icons"
	"github.com/johnys190/movierama/internal/tui/styles"
	"github.com/johnys190/movierama/internal/tui/widgets"
)

// PageRequestedMsg asks the parent to load another page
type PageRequestedMsg struct {
	Page int
}

// VoteRequestedMsg asks the parent to apply a reaction to a movie
type VoteRequestedMsg struct {
	Movie    client.Movie
	Current  client.Reaction
	Reaction client.Reaction
}

// PublisherSelectedMsg asks the parent to open the publisher's profile
type PublisherSelectedMsg struct {
	Username string
}

// SortMenuRequestedMsg asks the parent to show the sort menu
type SortMenuRequestedMsg struct{}

// Options configure what the list shows.
type Options struct {
	// Title heads the list, e.g. "Movies" or "alice's movies"
	Title string
	// Sortable enables the sort key and shows the current order
	Sortable bool
	Sort     client.Sort
}

// MovieList displays one page of movies
type MovieList struct {
	opts     Options
	page     *client.MoviePage
	opinions map[int64]client.Reaction
	cursor   int
	width    int
	height   int
}

// New creates an empty list; call SetPage once the data arrives.
func New(opts Options, width, height int) *MovieList {
	if opts.Title == "" {
		opts.Title = "Movies"
	}
	return &MovieList{
		opts:     opts,
		opinions: map[int64]client.Reaction{},
		width:    width,
		height:   height,
	}
}

// SetPage replaces the shown page and the viewer's reactions to it.
func (m *MovieList) SetPage(page *client.MoviePage, opinions map[int64]client.Reaction) {
	m.page = page
	if opinions == nil {
		opinions = map[int64]client.Reaction{}
	}
	m.opinions = opinions
	if m.cursor >= m.count() {
		m.cursor = max(0, m.count()-1)
	}
}

// SetSize updates the list dimensions
func (m *MovieList) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Loaded reports whether a page has been set.
func (m *MovieList) Loaded() bool { return m.page != nil }

// Sort returns the current order.
func (m *MovieList) Sort() client.Sort { return m.opts.Sort }

// PageNumber returns the zero-based page shown, or 0 before loading.
func (m *MovieList) PageNumber() int {
	if m.page == nil {
		return 0
	}
	return m.page.Number
}

// Selected returns the highlighted movie.
func (m *MovieList) Selected() (client.Movie, bool) {
	if m.count() == 0 {
		return client.Movie{}, false
	}
	return m.page.Content[m.cursor], true
}

// Opinion returns the viewer's reaction to a movie on this page.
func (m *MovieList) Opinion(id int64) client.Reaction {
	return m.opinions[id]
}

func (m *MovieList) count() int {
	if m.page == nil {
		return 0
	}
	return len(m.page.Content)
}

// Update handles list keys. Unknown keys are ignored so the parent can
// handle them.
func (m *MovieList) Update(msg tea.KeyMsg) (*MovieList, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.count()-1 {
			m.cursor++
		}
	case "right", "n":
		if m.page != nil && !m.page.Last {
			return m, request(PageRequestedMsg{Page: m.page.Number + 1})
		}
	case "left", "p":
		if m.page != nil && !m.page.First && m.page.Number > 0 {
			return m, request(PageRequestedMsg{Page: m.page.Number - 1})
		}
	case "s":
		if m.opts.Sortable {
			return m, request(SortMenuRequestedMsg{})
		}
	case "l", "h":
		movie, ok := m.Selected()
		if !ok {
			return m, nil
		}
		r := client.Like
		if msg.String() == "h" {
			r = client.Hate
		}
		return m, request(VoteRequestedMsg{Movie: movie, Current: m.opinions[movie.ID], Reaction: r})
	case "enter":
		if movie, ok := m.Selected(); ok && movie.PublishedBy != "" {
			return m, request(PublisherSelectedMsg{Username: movie.PublishedBy})
		}
	}
	return m, nil
}

func request(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View renders the list
func (m *MovieList) View() string {
	var sb strings.Builder

	title := icons.Film.String() + " " + m.opts.Title
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")

	if m.page == nil {
		sb.WriteString(styles.Subtitle.Render("Loading movies..."))
		return m.frame(sb.String())
	}

	sb.WriteString(styles.Subtitle.Render(m.summary()))
	sb.WriteString("\n")

	if m.count() == 0 {
		sb.WriteString("No movies yet.\n")
		return m.frame(sb.String())
	}

	for i, movie := range m.page.Content {
		sb.WriteString(m.renderRow(i, movie))
		sb.WriteString("\n")
	}

	return m.frame(sb.String())
}

func (m *MovieList) frame(content string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(max(0, m.height)).
		Render(content)
}

func (m *MovieList) summary() string {
	parts := []string{
		fmt.Sprintf("Page %d of %d", m.page.Number+1, max(1, m.page.TotalPages)),
		fmt.Sprintf("%d movies", m.page.TotalElements),
	}
	if m.opts.Sortable {
		parts = append(parts, icons.Sort.String()+" "+m.opts.Sort.String())
	}
	return strings.Join(parts, " · ")
}

func (m *MovieList) renderRow(i int, movie client.Movie) string {
	marker := "  "
	titleStyle := lipgloss.NewStyle().Bold(true)
	if i == m.cursor {
		marker = styles.Selected.Render("▸ ")
		titleStyle = styles.Selected
	}

	line := marker + titleStyle.Render(movie.Title)
	byline := fmt.Sprintf("   %s %s  %s %s",
		icons.User.String(), movie.PublishedBy,
		icons.Date.String(), FormatAge(movie.PublicationDate, time.Now()))

	return line + "\n" +
		styles.Byline.Render(byline) + "\n" +
		"   " + widgets.VoteCounts(movie.Likes, movie.Hates, m.opinions[movie.ID])
}

// FormatAge renders a publication date relative to now.
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "unknown date"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("2 Jan 2006")
	}
}
