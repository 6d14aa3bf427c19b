// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Owns the session, routes paths through the authorization gate and renders the frame

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/johnys190/movierama/internal/app"
	"github.com/johnys190/movierama/internal/cache"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/constants"
	"github.com/johnys190/movierama/internal/credentials"
	"github.com/johnys190/movierama/internal/forms"
	"github.com/johnys190/movierama/internal/notify"
	"github.com/johnys190/movierama/internal/route"
	"github.com/johnys190/movierama/internal/session"
	"github.com/johnys190/movierama/internal/tui/detail"
	"github.com/johnys190/movierama/internal/tui/icons"
	"github.com/johnys190/movierama/internal/tui/login"
	"github.com/johnys190/movierama/internal/tui/movielist"
	"github.com/johnys190/movierama/internal/tui/newmovie"
	"github.com/johnys190/movierama/internal/tui/pathprompt"
	"github.com/johnys190/movierama/internal/tui/signup"
	"github.com/johnys190/movierama/internal/tui/sortmenu"
	"github.com/johnys190/movierama/internal/tui/styles"
	"github.com/johnys190/movierama/internal/tui/toast"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before using single-column layout
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
)

// userFetchedMsg carries a finished identity lookup
type userFetchedMsg struct {
	outcome session.Outcome
}

// moviesLoadedMsg is sent when a movie page (and the viewer's reactions) arrive
type moviesLoadedMsg struct {
	req      app.ListRequest
	page     *client.MoviePage
	opinions map[int64]client.Reaction
	err      error
}

// signedInMsg is sent when the login call and credential write finish
type signedInMsg struct {
	usernameOrEmail string
	err             error
}

// signedUpMsg is sent when registration finishes
type signedUpMsg struct {
	err error
}

// movieAddedMsg is sent when a new movie was submitted
type movieAddedMsg struct {
	err error
}

// votedMsg is sent when a reaction call finishes
type votedMsg struct {
	movie  client.Movie
	action client.VoteAction
	err    error
}

// errTaken reports a sign-up field that is already in use
type errTaken struct {
	message string
}

func (e *errTaken) Error() string { return e.message }

// Options are the TUI's collaborators and settings.
type Options struct {
	Client      *client.Client
	Credentials credentials.Store
	Pages       *app.PageCache
	Logger      *zap.Logger
	Toasts      notify.Config
	PageSize    int
	// StartPath is the first path shown once the session settles
	StartPath string
}

// App is the root model for the TUI. It is also the session's Navigator and
// notification Sink, so every session side effect lands on the update loop.
type App struct {
	client   *client.Client
	creds    credentials.Store
	pages    *app.PageCache
	log      *zap.Logger
	session  *session.Controller
	history  *route.History
	toasts   *toast.Stack
	spinner  spinner.Model
	pageSize int

	match       route.Match
	width       int
	height      int
	err         error
	serverError bool
	busy        string // label shown while a submission is in flight

	sort    client.Sort
	listReq app.ListRequest

	// Child models
	list         *movielist.MovieList
	detail       *detail.Detail
	sortMenu     *sortmenu.Menu
	prompt       *pathprompt.Prompt
	loginScreen  *login.Login
	signupScreen *signup.Wizard
	movieForm    *newmovie.Form

	// cmds collects commands queued by Navigate and Notify during Update
	cmds []tea.Cmd
}

var (
	_ session.Navigator = (*App)(nil)
	_ notify.Sink       = (*App)(nil)
)

// New creates a new TUI application
func New(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = constants.MoviesListSize
	}
	if opts.StartPath == "" {
		opts.StartPath = constants.RootPath
	}
	if opts.Pages == nil {
		opts.Pages = cache.New[*client.MoviePage](30*time.Second, opts.Logger)
	}

	a := &App{
		client:   opts.Client,
		creds:    opts.Credentials,
		pages:    opts.Pages,
		log:      opts.Logger.Named("tui"),
		history:  route.NewHistory(opts.StartPath),
		toasts:   toast.New(opts.Toasts),
		pageSize: opts.PageSize,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
		),
	}

	deps := session.Deps{
		Credentials: opts.Credentials,
		Notifier:    a,
		Navigator:   a,
		Logger:      opts.Logger,
	}
	if opts.Client != nil {
		deps.Users = opts.Client
	}
	a.session = session.NewController(deps)
	return a
}

// Navigate implements session.Navigator
func (a *App) Navigate(path string) {
	a.history.Navigate(path)
	a.queue(a.show())
}

// Notify implements notify.Sink
func (a *App) Notify(kind notify.Kind, n notify.Notification) {
	a.queue(a.toasts.Push(kind, n))
}

func (a *App) queue(cmd tea.Cmd) {
	if cmd != nil {
		a.cmds = append(a.cmds, cmd)
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	t := a.session.BeginBootstrap()
	return tea.Batch(a.spinner.Tick, a.fetchUser(t), a.show())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a.queue(a.update(msg))
	cmds := a.cmds
	a.cmds = nil
	return a, tea.Batch(cmds...)
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Leave the last column free so the frame never wraps
		a.width = msg.Width - 1
		a.height = msg.Height
		if a.list != nil {
			a.list.SetSize(a.listWidth(), a.contentHeight())
		}
		if a.detail != nil {
			a.detail.SetWidth(a.detailWidth())
		}
		if a.signupScreen != nil {
			a.signupScreen.SetWidth(a.width - 1)
		}
		return a.forwardToForm(msg)

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		return a.handleKey(msg)

	case spinner.TickMsg:
		if !a.session.State().IsLoading && a.busy == "" {
			return nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return cmd

	case toast.DismissMsg:
		a.toasts.Dismiss(msg.ID)
		return nil

	case userFetchedMsg:
		if !a.session.Complete(msg.outcome) {
			return nil
		}
		// The session settled; decide the deferred route now
		return a.show()

	case moviesLoadedMsg:
		return a.handleMoviesLoaded(msg)

	case movielist.PageRequestedMsg:
		req := a.listReq
		req.Page = msg.Page
		return a.loadList(req)

	case movielist.VoteRequestedMsg:
		return a.handleVoteRequested(msg)

	case movielist.PublisherSelectedMsg:
		a.Navigate(route.Profile(msg.Username))
		return nil

	case movielist.SortMenuRequestedMsg:
		a.sortMenu = sortmenu.New(a.sort)
		return a.sortMenu.Init()

	case sortmenu.SelectedMsg:
		a.sortMenu = nil
		a.sort = msg.Sort
		if a.match.Screen() != route.ScreenMovieList {
			return nil
		}
		a.list = movielist.New(movielist.Options{Title: "Movies", Sortable: true, Sort: a.sort}, a.listWidth(), a.contentHeight())
		return a.loadList(app.ListRequest{Sort: a.sort})

	case sortmenu.CancelledMsg:
		a.sortMenu = nil
		return nil

	case votedMsg:
		return a.handleVoted(msg)

	case pathprompt.PathEnteredMsg:
		a.prompt = nil
		a.Navigate(msg.Path)
		return nil

	case pathprompt.CancelledMsg:
		a.prompt = nil
		return nil

	case login.SubmittedMsg:
		a.busy = "Signing in..."
		return tea.Batch(a.spinner.Tick, a.signIn(msg.Form))

	case login.CancelledMsg, signup.CancelledMsg, newmovie.CancelledMsg:
		return a.back()

	case signedInMsg:
		return a.handleSignedIn(msg)

	case signup.SubmittedMsg:
		a.busy = "Creating your account..."
		return tea.Batch(a.spinner.Tick, a.signUp(msg.Form))

	case signedUpMsg:
		return a.handleSignedUp(msg)

	case newmovie.SubmittedMsg:
		a.busy = "Sharing your movie..."
		return tea.Batch(a.spinner.Tick, a.addMovie(msg.Form))

	case movieAddedMsg:
		return a.handleMovieAdded(msg)
	}

	// Forward unknown messages to the active form (needed for huh form internals)
	return a.forwardToForm(msg)
}

// forwardToForm hands msg to whichever interactive child is active
func (a *App) forwardToForm(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case a.prompt != nil:
		_, cmd = a.prompt.Update(msg)
	case a.sortMenu != nil:
		_, cmd = a.sortMenu.Update(msg)
	case a.busy != "":
		return nil
	case a.loginScreen != nil:
		_, cmd = a.loginScreen.Update(msg)
	case a.signupScreen != nil:
		_, cmd = a.signupScreen.Update(msg)
	case a.movieForm != nil:
		_, cmd = a.movieForm.Update(msg)
	}
	return cmd
}

func (a *App) formActive() bool {
	return a.prompt != nil || a.sortMenu != nil ||
		a.loginScreen != nil || a.signupScreen != nil || a.movieForm != nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.formActive() {
		return a.forwardToForm(msg)
	}
	if a.busy != "" {
		return nil
	}

	st := a.session.State()
	switch msg.String() {
	case "q":
		return tea.Quit
	case ":":
		a.prompt = pathprompt.New(a.history.Entries())
		return a.prompt.Init()
	case "esc", "b":
		return a.back()
	}

	// Nothing else is meaningful until the session settles
	if st.IsLoading {
		return nil
	}

	switch msg.String() {
	case "i":
		if !st.IsAuthenticated {
			a.Navigate(constants.LoginPath)
		}
		return nil
	case "u":
		if !st.IsAuthenticated {
			a.Navigate(constants.SignupPath)
		}
		return nil
	case "a":
		a.Navigate(constants.NewMoviePath)
		return nil
	case "m":
		if st.IsAuthenticated {
			a.Navigate(route.Profile(st.Username()))
		}
		return nil
	case "o":
		if st.IsAuthenticated {
			return a.logout(session.DefaultLogoutOptions())
		}
		return nil
	case "r":
		if a.list != nil {
			a.pages.Flush()
			return a.loadList(a.listReq)
		}
		return nil
	}

	if a.list != nil && !a.serverError {
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return cmd
	}
	return nil
}

// show resolves the current history entry, applies the authorization gate
// and builds the screen. While the session is loading the decision is
// deferred; the userFetchedMsg handler calls show again once it settles.
func (a *App) show() tea.Cmd {
	a.reset()

	m := route.Resolve(a.history.Current())
	st := a.session.State()
	if st.IsLoading {
		a.match = m
		return nil
	}

	if d := route.Authorize(m.Request(), st); !d.Allowed {
		a.log.Debug("navigation redirected",
			zap.String("path", m.Path),
			zap.String("redirect", d.RedirectTo))
		a.history.Replace(d.RedirectTo)
		m = route.Resolve(d.RedirectTo)
	}
	a.match = m
	return a.enter(m)
}

// reset drops every per-screen child model
func (a *App) reset() {
	a.err = nil
	a.serverError = false
	a.busy = ""
	a.list = nil
	a.detail = nil
	a.sortMenu = nil
	a.prompt = nil
	a.loginScreen = nil
	a.signupScreen = nil
	a.movieForm = nil
}

func (a *App) enter(m route.Match) tea.Cmd {
	switch m.Screen() {
	case route.ScreenMovieList:
		a.list = movielist.New(movielist.Options{Title: "Movies", Sortable: true, Sort: a.sort}, a.listWidth(), a.contentHeight())
		a.detail = detail.New(a.detailWidth())
		return a.loadList(app.ListRequest{Sort: a.sort})

	case route.ScreenProfile:
		username := m.Params["username"]
		a.list = movielist.New(movielist.Options{Title: username + "'s movies"}, a.listWidth(), a.contentHeight())
		a.detail = detail.New(a.detailWidth())
		return a.loadList(app.ListRequest{Username: username})

	case route.ScreenLogin:
		a.loginScreen = login.New("")
		return a.loginScreen.Init()

	case route.ScreenSignup:
		a.signupScreen = signup.New()
		a.signupScreen.SetWidth(a.width - 1)
		return a.signupScreen.Init()

	case route.ScreenNewMovie:
		a.movieForm = newmovie.New()
		return a.movieForm.Init()
	}
	return nil
}

// back returns to the previous path, or home when there is none
func (a *App) back() tea.Cmd {
	if a.history.Back() {
		return a.show()
	}
	if a.history.Current() != constants.RootPath {
		a.history.Replace(constants.RootPath)
	}
	return a.show()
}

func (a *App) logout(opts session.LogoutOptions) tea.Cmd {
	if err := a.session.Logout(context.Background(), opts); err != nil {
		// The session is already cleared; re-check the current route
		cmd := a.show()
		a.err = err
		return cmd
	}
	a.pages.Flush()
	return nil
}

// requireLogin handles a rejected credential on an authenticated call
func (a *App) requireLogin() tea.Cmd {
	a.log.Info("credential rejected by backend, signing out")
	return a.logout(session.RequireLoginOptions(constants.SessionExpired))
}

func (a *App) notifyError(description string) {
	a.Notify(notify.Error, notify.Notification{Message: constants.ApplicationName, Description: description})
}

// fetchUser runs the identity lookup for ticket t off the update loop
func (a *App) fetchUser(t session.Ticket) tea.Cmd {
	ctrl := a.session
	return func() tea.Msg {
		return userFetchedMsg{outcome: ctrl.Fetch(context.Background(), t)}
	}
}

// loadList fetches a movie page and, for a signed-in viewer, their
// reactions to it
func (a *App) loadList(req app.ListRequest) tea.Cmd {
	req.Size = a.pageSize
	a.listReq = req
	c, pages, log := a.client, a.pages, a.log
	withOpinions := a.session.State().IsAuthenticated

	return func() tea.Msg {
		l, err := app.LoadListing(context.Background(), c, pages, req, withOpinions)
		if err != nil {
			log.Warn("movie list load failed", zap.String("key", req.Key()), zap.Error(err))
			return moviesLoadedMsg{req: req, err: err}
		}
		return moviesLoadedMsg{req: req, page: l.Page, opinions: l.Opinions}
	}
}

func (a *App) handleMoviesLoaded(msg moviesLoadedMsg) tea.Cmd {
	if a.list == nil || msg.req != a.listReq {
		// Superseded by a later navigation
		return nil
	}
	if msg.err != nil {
		if client.IsUnauthorized(msg.err) && a.session.State().IsAuthenticated {
			return a.requireLogin()
		}
		a.serverError = true
		return nil
	}
	a.list.SetPage(msg.page, msg.opinions)
	return nil
}

func (a *App) handleVoteRequested(msg movielist.VoteRequestedMsg) tea.Cmd {
	st := a.session.State()
	if !st.IsAuthenticated {
		a.Notify(notify.Info, notify.Notification{Message: constants.ApplicationName, Description: constants.VoteRequiresLogin})
		a.Navigate(constants.LoginPath)
		return nil
	}

	c := a.client
	voter := st.CurrentUser
	return func() tea.Msg {
		action, err := c.Vote(context.Background(), msg.Movie, voter, msg.Current, msg.Reaction)
		return votedMsg{movie: msg.Movie, action: action, err: err}
	}
}

func (a *App) handleVoted(msg votedMsg) tea.Cmd {
	var own *client.OwnMovieError
	switch {
	case errors.As(msg.err, &own):
		a.notifyError(own.Error())
		return nil
	case client.IsUnauthorized(msg.err):
		return a.requireLogin()
	case msg.err != nil:
		a.log.Warn("vote failed", zap.Int64("movie_id", msg.movie.ID), zap.Error(msg.err))
		a.notifyError(constants.LoginGeneralError)
		return nil
	}

	// Totals changed on every cached page that lists this movie
	a.pages.Flush()
	if a.list == nil {
		return nil
	}
	return a.loadList(a.listReq)
}

func (a *App) signIn(form forms.SignIn) tea.Cmd {
	c, creds := a.client, a.creds
	return func() tea.Msg {
		ctx := context.Background()
		resp, err := c.SignIn(ctx, form.Request())
		if err != nil {
			return signedInMsg{usernameOrEmail: form.UsernameOrEmail, err: err}
		}
		if creds == nil {
			return signedInMsg{usernameOrEmail: form.UsernameOrEmail, err: errors.New("no credential store configured")}
		}
		if err := creds.Set(ctx, constants.AccessToken, resp.AccessToken); err != nil {
			return signedInMsg{usernameOrEmail: form.UsernameOrEmail, err: fmt.Errorf("failed to store credential: %w", err)}
		}
		return signedInMsg{usernameOrEmail: form.UsernameOrEmail}
	}
}

func (a *App) handleSignedIn(msg signedInMsg) tea.Cmd {
	a.busy = ""
	if msg.err != nil {
		a.log.Info("sign in failed", zap.Error(msg.err))
		if client.IsUnauthorized(msg.err) {
			a.notifyError(constants.LoginAuthorizationErrorMessage)
		} else {
			a.notifyError(constants.LoginGeneralError)
		}
		a.loginScreen = login.New(msg.usernameOrEmail)
		return a.loginScreen.Init()
	}

	a.loginScreen = nil
	a.pages.Flush()
	t := a.session.BeginLogin()
	return tea.Batch(a.spinner.Tick, a.fetchUser(t))
}

func (a *App) signUp(form forms.SignUp) tea.Cmd {
	c := a.client
	return func() tea.Msg {
		req := form.Request()
		var usernameOK, emailOK bool

		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() (err error) {
			usernameOK, err = c.CheckUsernameAvailability(ctx, req.Username)
			return err
		})
		g.Go(func() (err error) {
			emailOK, err = c.CheckEmailAvailability(ctx, req.Email)
			return err
		})
		if err := g.Wait(); err != nil {
			return signedUpMsg{err: err}
		}

		switch {
		case !usernameOK:
			return signedUpMsg{err: &errTaken{message: constants.UsernameTaken}}
		case !emailOK:
			return signedUpMsg{err: &errTaken{message: constants.EmailTaken}}
		}

		_, err := c.SignUp(context.Background(), req)
		return signedUpMsg{err: err}
	}
}

func (a *App) handleSignedUp(msg signedUpMsg) tea.Cmd {
	a.busy = ""
	if msg.err != nil {
		var taken *errTaken
		if errors.As(msg.err, &taken) {
			a.notifyError(taken.message)
		} else {
			a.log.Warn("sign up failed", zap.Error(msg.err))
			a.notifyError(constants.LoginGeneralError)
		}
		a.signupScreen = signup.New()
		a.signupScreen.SetWidth(a.width - 1)
		return a.signupScreen.Init()
	}

	a.signupScreen = nil
	a.Notify(notify.Success, notify.Notification{Message: constants.ApplicationName, Description: constants.SuccessfulSignup})
	a.Navigate(constants.LoginPath)
	return nil
}

func (a *App) addMovie(form forms.NewMovie) tea.Cmd {
	c := a.client
	return func() tea.Msg {
		if err := forms.Validate(form); err != nil {
			return movieAddedMsg{err: err}
		}
		_, err := c.AddMovie(context.Background(), form.Request())
		return movieAddedMsg{err: err}
	}
}

func (a *App) handleMovieAdded(msg movieAddedMsg) tea.Cmd {
	a.busy = ""
	switch {
	case client.IsUnauthorized(msg.err):
		return a.requireLogin()
	case errors.Is(msg.err, forms.ErrInvalid):
		a.notifyError(msg.err.Error())
		a.movieForm = newmovie.New()
		return a.movieForm.Init()
	case msg.err != nil:
		a.log.Warn("add movie failed", zap.Error(msg.err))
		a.notifyError(constants.LoginGeneralError)
		a.movieForm = newmovie.New()
		return a.movieForm.Init()
	}

	a.movieForm = nil
	app.ForgetPublished(a.pages, a.session.State().Username())
	a.Notify(notify.Success, notify.Notification{Message: constants.ApplicationName, Description: constants.MovieCreated})
	a.Navigate(constants.RootPath)
	return nil
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch {
	case a.prompt != nil:
		content = a.prompt.View()
	case a.session.State().IsLoading:
		content = a.viewLoading("Loading...")
	case a.busy != "":
		content = a.viewLoading(a.busy)
	case a.serverError:
		content = a.viewErrorPage(constants.ServerErrorPageCode, constants.ServerErrorPageMessage)
	case a.sortMenu != nil:
		content = a.sortMenu.View()
	default:
		content = a.viewScreen()
	}

	if a.err != nil {
		content = styles.StatusCritical.Render("Error: "+a.err.Error()) + "\n" + content
	}

	return a.toasts.Overlay(a.wrapWithFrame(content), a.frameWidth())
}

func (a *App) viewScreen() string {
	switch a.match.Screen() {
	case route.ScreenMovieList, route.ScreenProfile:
		return a.viewList()
	case route.ScreenLogin:
		if a.loginScreen != nil {
			return a.loginScreen.View()
		}
	case route.ScreenSignup:
		if a.signupScreen != nil {
			return a.signupScreen.View()
		}
	case route.ScreenNewMovie:
		if a.movieForm != nil {
			return a.movieForm.View()
		}
	default:
		return a.viewErrorPage(constants.NotFoundPageCode, constants.NotFoundPageMessage)
	}
	return ""
}

// viewLoading renders the spinner while the session or a submission settles
func (a *App) viewLoading(label string) string {
	return lipgloss.NewStyle().Padding(1, 2).Render(a.spinner.View() + " " + label)
}

// viewErrorPage renders the not-found and server-error pages
func (a *App) viewErrorPage(code int, message string) string {
	codeStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	body := codeStyle.Render(fmt.Sprintf("%d", code)) + "\n\n" +
		message + "\n\n" +
		styles.Help.Render("Press b to go back or : to enter a path")
	return styles.Panel.Width(max(40, a.listWidth())).Render(body)
}

// viewList renders the movie list with the detail pane beside it
func (a *App) viewList() string {
	if a.list == nil {
		return ""
	}

	leftPane := styles.ActivePanel.Width(a.listWidth()).Render(a.list.View())
	if a.width < minTerminalWidth || a.detail == nil {
		return leftPane
	}

	st := a.session.State()
	if movie, ok := a.list.Selected(); ok {
		a.detail.Show(&movie, a.list.Opinion(movie.ID), st.CurrentUser)
	} else {
		a.detail.Show(nil, client.ReactionNone, st.CurrentUser)
	}
	rightPane := styles.Panel.Width(a.detailWidth()).Render(a.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
}

// frameWidth is the width the header and footer are drawn at
func (a *App) frameWidth() int {
	return max(a.width, minTerminalWidth)
}

// listWidth calculates the width for the list pane
func (a *App) listWidth() int {
	if a.width < minTerminalWidth {
		return max(0, a.width-panelPadding)
	}
	return (a.width - panelPadding) * 3 / 5
}

// detailWidth calculates the width for the detail pane
func (a *App) detailWidth() int {
	return max(0, a.width-a.listWidth()-2*panelPadding-2)
}

// contentHeight calculates the height available for list content
func (a *App) contentHeight() int {
	// Header, footer, the newlines around content and the panel's border
	// and padding take eight rows
	return max(0, a.height-8)
}

// renderHeader creates the header bar with app branding and the session user
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	userStyle := lipgloss.NewStyle().Foreground(styles.Secondary)
	anonStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render(constants.ApplicationName))

	st := a.session.State()
	var rightText string
	switch {
	case st.IsLoading:
		rightText = " " + anonStyle.Render("…") + " "
	case st.IsAuthenticated:
		rightText = " " + userStyle.Render(icons.User.String()+" "+st.Username()) + " "
	default:
		rightText = " " + anonStyle.Render("Anonymous") + " "
	}

	fillWidth := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText)) // -4 for ╭─ and ─╮
	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"

	return borderStyle.Render(header)
}

// shortcuts lists the key hints for the current screen
func (a *App) shortcuts() []string {
	switch {
	case a.prompt != nil:
		return []string{"Enter Go", "↑↓ Recent", "Esc Cancel"}
	case a.session.State().IsLoading, a.busy != "":
		return []string{"ctrl+c Quit"}
	case a.sortMenu != nil:
		return []string{"↑↓ Select", "Enter Confirm", "Esc Cancel"}
	case a.loginScreen != nil, a.signupScreen != nil, a.movieForm != nil:
		return []string{"Tab Next", "Enter Confirm", "Esc Back"}
	}

	var keys []string
	if a.list != nil && !a.serverError {
		keys = append(keys, "↑↓ Select", "←→ Page", "l/h Vote")
		if a.match.Screen() == route.ScreenMovieList {
			keys = append(keys, "s Sort")
		}
		keys = append(keys, "a Add")
	}
	if a.session.State().IsAuthenticated {
		keys = append(keys, "m Mine", "o Logout")
	} else {
		keys = append(keys, "i Login", "u Signup")
	}
	return append(keys, ": Go", "b Back", "q Quit")
}

// renderFooter creates the footer with keyboard shortcuts and the current path
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	rightPlain := " " + a.history.Current() + " "
	right := " " + statusStyle.Render(a.history.Current()) + " "

	// -4 for ╰─ and ─╯; hints that do not fit are dropped
	budget := width - 4 - lipgloss.Width(rightPlain)
	if budget < 20 {
		right, rightPlain = "", ""
		budget = width - 4
	}

	left := ""
	used := 0
	for _, s := range a.shortcuts() {
		w := lipgloss.Width(s) + 2
		if used+w > budget {
			break
		}
		used += w
		if k, label, ok := strings.Cut(s, " "); ok {
			left += " " + keyStyle.Render(k) + " " + labelStyle.Render(label) + " "
		} else {
			left += " " + s + " "
		}
	}
	fillWidth := max(0, width-4-used-lipgloss.Width(rightPlain))
	footer := "╰─" + left + strings.Repeat("─", fillWidth) + right + "─╯"

	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI on deps' client, credential store and cache
func Run(ctx context.Context, deps *app.App, startPath string) error {
	model := New(Options{
		Client:      deps.Client,
		Credentials: deps.Credentials,
		Pages:       deps.Pages,
		Logger:      deps.Logger,
		Toasts:      deps.NotifyConfig(),
		PageSize:    deps.Config.PageSize,
		StartPath:   startPath,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
