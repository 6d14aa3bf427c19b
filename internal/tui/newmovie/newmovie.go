// ABOUTME: New movie form screen
// ABOUTME: Title and description with the backend's length limits

package newmovie

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/johnys190/movierama/internal/constants"
	"github.com/johnys190/movierama/internal/forms"
	"github.com/johnys190/movierama/internal/tui/styles"
)

// SubmittedMsg is sent when the form is complete and valid
type SubmittedMsg struct {
	Form forms.NewMovie
}

// CancelledMsg is sent when the user leaves the screen
type CancelledMsg struct{}

// Form is the new movie screen
type Form struct {
	values forms.NewMovie
	form   *huh.Form
	done   bool
}

// New creates an empty form
func New() *Form {
	f := &Form{}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description(fmt.Sprintf("Up to %d characters", constants.MovieTitleMaxLength)).
				CharLimit(constants.MovieTitleMaxLength).
				Value(&f.values.Title).
				Validate(forms.FieldValidator(forms.NewMovie{}, "Title")),
			huh.NewText().
				Title("Description").
				Description(fmt.Sprintf("Up to %d characters", constants.MovieDescriptionMaxLength)).
				CharLimit(constants.MovieDescriptionMaxLength).
				Lines(5).
				Value(&f.values.Description).
				Validate(forms.FieldValidator(forms.NewMovie{}, "Description")),
		).Title("Share a movie").
			Description("Recommend something worth watching"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
	return f
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return f, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted && !f.done {
		f.done = true
		values := f.values
		return f, func() tea.Msg { return SubmittedMsg{Form: values} }
	}
	return f, cmd
}

// View implements tea.Model
func (f *Form) View() string {
	return f.form.View()
}
