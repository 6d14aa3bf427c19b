// ABOUTME: Step-by-step sign-up wizard
// ABOUTME: Collects name, account details and password with inline validation

package signup

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/johnys190/movierama/internal/constants"
	"github.com/johnys190/movierama/internal/forms"
	"github.com/johnys190/movierama/internal/tui/icons"
	"github.com/johnys190/movierama/internal/tui/styles"
)

// SubmittedMsg is sent when every step is complete
type SubmittedMsg struct {
	Form forms.SignUp
}

// CancelledMsg is sent when the user leaves the wizard
type CancelledMsg struct{}

var stepNames = []string{"Profile", "Account", "Password"}

// Wizard is the sign-up flow
type Wizard struct {
	values forms.SignUp
	step   int
	form   *huh.Form
	width  int
	done   bool
}

// New creates a wizard on step 1
func New() *Wizard {
	w := &Wizard{step: 1}
	w.form = w.createStep1Form()
	return w
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description(fmt.Sprintf("Between %d and %d characters", constants.NameMinLength, constants.NameMaxLength)).
				CharLimit(constants.NameMaxLength).
				Value(&w.values.Name).
				Validate(forms.FieldValidator(forms.SignUp{}, "Name")),
		).Title("Step 1: Profile").
			Description("How should other movie fans know you?"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

func (w *Wizard) createStep2Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Description(fmt.Sprintf("Between %d and %d characters", constants.UsernameMinLength, constants.UsernameMaxLength)).
				CharLimit(constants.UsernameMaxLength).
				Value(&w.values.Username).
				Validate(forms.FieldValidator(forms.SignUp{}, "Username")),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				CharLimit(constants.EmailMaxLength).
				Value(&w.values.Email).
				Validate(forms.FieldValidator(forms.SignUp{}, "Email")),
		).Title("Step 2: Account").
			Description("Availability is checked when you finish"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

func (w *Wizard) createStep3Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				Description(fmt.Sprintf("Between %d and %d characters", constants.PasswordMinLength, constants.PasswordMaxLength)).
				EchoMode(huh.EchoModePassword).
				CharLimit(constants.PasswordMaxLength).
				Value(&w.values.Password).
				Validate(forms.FieldValidator(forms.SignUp{}, "Password")),
		).Title("Step 3: Password"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}
	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()
	case 2:
		w.step = 3
		w.form = w.createStep3Form()
		return w, w.form.Init()
	}

	if w.done {
		return w, nil
	}
	w.done = true
	values := w.values
	return w, func() tea.Msg { return SubmittedMsg{Form: values} }
}

// Step returns the current step, starting at 1
func (w *Wizard) Step() int {
	return w.step
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder
	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	sb.WriteString(w.form.View())
	return sb.String()
}

// renderProgress renders the step indicator box
func (w *Wizard) renderProgress() string {
	width := max(w.width-1, 60)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}
	stepsLine := strings.Join(steps, "    ")

	// "│  " + bar + " │"
	barWidth := width - 5
	filledWidth := (w.step * barWidth) / len(stepNames)
	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", barWidth-filledWidth))

	title := "Sign up"
	topBorder := "┌─ " + titleStyle.Render(title) + " " + strings.Repeat("─", max(0, width-5-lipgloss.Width(title))) + "┐"
	stepsPadded := "│ " + stepsLine + strings.Repeat(" ", max(0, width-4-lipgloss.Width(stepsLine))) + " │"
	barPadded := "│  " + filledBar + emptyBar + " │"
	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsPadded,
		barPadded,
		bottomBorder,
	}, "\n"))
}

// Values returns the collected fields
func (w *Wizard) Values() forms.SignUp {
	return w.values
}
