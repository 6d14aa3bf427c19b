// ABOUTME: Sort order menu for the public movie list
// ABOUTME: Lets the user choose between newest, most liked and most hated

package sortmenu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/tui/styles"
)

// SelectedMsg is sent when an order is chosen
type SelectedMsg struct {
	Sort client.Sort
}

// CancelledMsg is sent when the user closes the menu without choosing
type CancelledMsg struct{}

type option struct {
	label string
	value client.Sort
}

var options = []option{
	{label: "Newest first", value: client.SortNewest},
	{label: "Most liked", value: client.SortLikes},
	{label: "Most hated", value: client.SortHates},
}

// Menu represents the sort selection menu
type Menu struct {
	selected client.Sort
	form     *huh.Form
	done     bool
}

// New creates a menu with current preselected
func New(current client.Sort) *Menu {
	m := &Menu{selected: current}

	var opts []huh.Option[client.Sort]
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.label, o.value))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[client.Sort]().
				Title("Sort movies").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(opts...).
				Value(&m.selected),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)

	return m
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted && !m.done {
		m.done = true
		sort := m.selected
		return m, func() tea.Msg { return SelectedMsg{Sort: sort} }
	}
	return m, cmd
}

// View implements tea.Model
func (m *Menu) View() string {
	return m.form.View()
}

// Selected returns the highlighted order
func (m *Menu) Selected() client.Sort {
	return m.selected
}
