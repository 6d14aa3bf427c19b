// ABOUTME: Toast stack that renders notifications inside the TUI frame
// ABOUTME: Each toast dismisses itself after the configured duration

package toast

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/johnys190/movierama/internal/notify"
	"github.com/johnys190/movierama/internal/tui/styles"
	"github.com/johnys190/movierama/internal/tui/widgets"
)

// MaxVisible caps the stack; the oldest toast is dropped first.
const MaxVisible = 3

const maxToastWidth = 64

// DismissMsg removes the toast with ID once its duration has elapsed.
type DismissMsg struct {
	ID int
}

// Toast is one visible notification
type Toast struct {
	ID   int
	Kind notify.Kind
	notify.Notification
}

// Stack holds visible toasts, newest last.
type Stack struct {
	cfg    notify.Config
	nextID int
	toasts []Toast
}

// New creates a stack using cfg; zero fields fall back to notify.DefaultConfig.
func New(cfg notify.Config) *Stack {
	d := notify.DefaultConfig()
	if cfg.Placement == "" {
		cfg.Placement = d.Placement
	}
	if cfg.Duration <= 0 {
		cfg.Duration = d.Duration
	}
	if cfg.Offset < 0 {
		cfg.Offset = 0
	}
	return &Stack{cfg: cfg}
}

// Config returns the effective configuration.
func (s *Stack) Config() notify.Config { return s.cfg }

// Push shows a toast and returns the command that dismisses it.
func (s *Stack) Push(kind notify.Kind, n notify.Notification) tea.Cmd {
	s.nextID++
	id := s.nextID
	s.toasts = append(s.toasts, Toast{ID: id, Kind: kind, Notification: n})
	if len(s.toasts) > MaxVisible {
		s.toasts = s.toasts[len(s.toasts)-MaxVisible:]
	}
	return tea.Tick(s.cfg.Duration, func(time.Time) tea.Msg {
		return DismissMsg{ID: id}
	})
}

// Dismiss removes a toast; it reports whether anything changed.
func (s *Stack) Dismiss(id int) bool {
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// Toasts returns the visible toasts, oldest first.
func (s *Stack) Toasts() []Toast {
	return append([]Toast(nil), s.toasts...)
}

// Len is the number of visible toasts.
func (s *Stack) Len() int { return len(s.toasts) }

// Render draws one toast on a single line.
func Render(t Toast, width int) string {
	level := widgets.LevelForKind(t.Kind)
	icon := widgets.StatusIcon(level)

	title := lipgloss.NewStyle().Bold(true).Foreground(styles.Text).Render(t.Message)
	body := t.Description
	line := icon + " " + title
	if body != "" {
		line += lipgloss.NewStyle().Foreground(styles.Text).Render(": " + body)
	}

	style := lipgloss.NewStyle().
		Background(styles.BgDark).
		Padding(0, 1).
		MaxWidth(width)
	return style.Render(line)
}

// Overlay draws the stack over base, a frame of newline-separated rows that
// is width cells wide. Covered rows are replaced entirely.
func (s *Stack) Overlay(base string, width int) string {
	if len(s.toasts) == 0 {
		return base
	}

	lines := strings.Split(base, "\n")
	toastWidth := min(width, maxToastWidth)

	pos := lipgloss.Left
	if s.cfg.Placement.Right() {
		pos = lipgloss.Right
	}

	// Newest toast sits nearest the anchoring edge
	for i := range s.toasts {
		t := s.toasts[len(s.toasts)-1-i]
		row := s.cfg.Offset + i
		if !s.cfg.Placement.Top() {
			row = len(lines) - 1 - s.cfg.Offset - i
		}
		if row < 0 || row >= len(lines) {
			continue
		}
		lines[row] = lipgloss.PlaceHorizontal(width, pos, Render(t, toastWidth))
	}
	return strings.Join(lines, "\n")
}
