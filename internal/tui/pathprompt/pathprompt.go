// ABOUTME: Go-to-path prompt opened with ":" from any screen
// ABOUTME: Text input with recently visited paths for quick recall

package pathprompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/johnys190/movierama/internal/route"
	"github.com/johnys190/movierama/internal/tui/styles"
)

// maxRecent is how many recently visited paths are offered
const maxRecent = 5

// PathEnteredMsg is sent when a path is confirmed
type PathEnteredMsg struct {
	Path string
}

// CancelledMsg is sent when the user closes the prompt
type CancelledMsg struct{}

// Styles
var (
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(styles.Primary)
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Accent)
	normalStyle   = lipgloss.NewStyle().Foreground(styles.Muted)
	errorStyle    = lipgloss.NewStyle().Foreground(styles.Danger)
)

// Prompt is the path input component
type Prompt struct {
	input  textinput.Model
	recent []string
	cursor int // -1 while typing freely
	err    string
}

// New creates a focused prompt. history is oldest first, as kept by
// route.History; duplicates are collapsed and the newest are offered first.
func New(history []string) *Prompt {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "/users/alice"
	ti.CharLimit = 256
	ti.Width = 48
	ti.Focus()

	return &Prompt{
		input:  ti,
		recent: recent(history),
		cursor: -1,
	}
}

func recent(history []string) []string {
	seen := map[string]bool{}
	var out []string
	for i := len(history) - 1; i >= 0 && len(out) < maxRecent; i-- {
		p := history[i]
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Init implements tea.Model
func (p *Prompt) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (p *Prompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}

	// Clear error on any key press
	p.err = ""

	switch key.String() {
	case "esc":
		return p, func() tea.Msg { return CancelledMsg{} }
	case "enter":
		value := strings.TrimSpace(p.input.Value())
		if value == "" {
			p.err = "Please enter a path"
			return p, nil
		}
		path := route.Clean(value)
		return p, func() tea.Msg { return PathEnteredMsg{Path: path} }
	case "up":
		if p.cursor < len(p.recent)-1 {
			p.cursor++
			p.input.SetValue(p.recent[p.cursor])
			p.input.CursorEnd()
		}
		return p, nil
	case "down":
		if p.cursor > 0 {
			p.cursor--
			p.input.SetValue(p.recent[p.cursor])
			p.input.CursorEnd()
		} else if p.cursor == 0 {
			p.cursor = -1
			p.input.SetValue("")
		}
		return p, nil
	}

	p.cursor = -1
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(key)
	return p, cmd
}

// Value returns the text typed so far
func (p *Prompt) Value() string {
	return p.input.Value()
}

// View implements tea.Model
func (p *Prompt) View() string {
	var sb strings.Builder

	sb.WriteString(promptStyle.Render("Go to path"))
	sb.WriteString("\n\n")
	sb.WriteString(p.input.View())
	sb.WriteString("\n")

	if p.err != "" {
		sb.WriteString(errorStyle.Render(p.err))
		sb.WriteString("\n")
	}

	if len(p.recent) > 0 {
		sb.WriteString("\n")
		sb.WriteString(normalStyle.Render("Recent"))
		sb.WriteString("\n")
		for i, r := range p.recent {
			if i == p.cursor {
				sb.WriteString(selectedStyle.Render("▸ " + r))
			} else {
				sb.WriteString(normalStyle.Render("  " + r))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(normalStyle.Render("enter go  ↑↓ recent  esc cancel"))
	return sb.String()
}
