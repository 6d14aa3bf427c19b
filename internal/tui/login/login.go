// ABOUTME: Login screen collecting username or email and password
// ABOUTME: Embeds a huh form and reports the filled form to the parent

package login

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/johnys190/movierama/internal/forms"
	"github.com/johnys190/movierama/internal/tui/styles"
)

// SubmittedMsg is sent when the form is complete and valid
type SubmittedMsg struct {
	Form forms.SignIn
}

// CancelledMsg is sent when the user leaves the screen
type CancelledMsg struct{}

// Login is the login form screen
type Login struct {
	values forms.SignIn
	form   *huh.Form
	width  int
	done   bool
}

// New creates an empty login form. usernameOrEmail may prefill the first
// field, e.g. after a failed attempt.
func New(usernameOrEmail string) *Login {
	l := &Login{values: forms.SignIn{UsernameOrEmail: usernameOrEmail}}
	l.form = l.createForm()
	return l
}

func (l *Login) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username or Email").
				Placeholder("alice").
				CharLimit(40).
				Value(&l.values.UsernameOrEmail).
				Validate(forms.FieldValidator(forms.SignIn{}, "UsernameOrEmail")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(20).
				Value(&l.values.Password).
				Validate(forms.FieldValidator(forms.SignIn{}, "Password")),
		).Title("Login").
			Description("Sign in to like, hate and share movies"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return l, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted && !l.done {
		l.done = true
		values := l.values
		return l, func() tea.Msg { return SubmittedMsg{Form: values} }
	}
	return l, cmd
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder
	sb.WriteString(l.form.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("No account yet? Press esc and then u to sign up."))
	return sb.String()
}

// Values returns what has been typed so far
func (l *Login) Values() forms.SignIn {
	return l.values
}
