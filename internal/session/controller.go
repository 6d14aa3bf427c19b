// ABOUTME: Application session controller: bootstrap, login and logout
// ABOUTME: Coordinates the identity lookup, credential store, navigation and notifications

package session

import (
	"context"
	"fmt"

	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/constants"
	"github.com/johnys190/movierama/internal/credentials"
	"github.com/johnys190/movierama/internal/notify"
	"go.uber.org/zap"
)

// UserFetcher resolves the stored credential into a user.
type UserFetcher interface {
	CurrentUser(ctx context.Context) (*client.User, error)
}

// Navigator moves the UI to a route path.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Deps are the controller's collaborators. Store defaults to a fresh store,
// Notifier to notify.Discard and Logger to a no-op logger.
type Deps struct {
	Store       *Store
	Users       UserFetcher
	Credentials credentials.Store
	Notifier    notify.Sink
	Navigator   Navigator
	Logger      *zap.Logger
	// TokenKey is the credential key; defaults to constants.AccessToken
	TokenKey string
}

// Controller owns the session lifecycle.
type Controller struct {
	store    *Store
	users    UserFetcher
	creds    credentials.Store
	sink     notify.Sink
	nav      Navigator
	log      *zap.Logger
	tokenKey string
}

func NewController(d Deps) *Controller {
	c := &Controller{
		store:    d.Store,
		users:    d.Users,
		creds:    d.Credentials,
		sink:     d.Notifier,
		nav:      d.Navigator,
		log:      d.Logger,
		tokenKey: d.TokenKey,
	}
	if c.store == nil {
		c.store = NewStore()
	}
	if c.sink == nil {
		c.sink = notify.Discard
	}
	if c.nav == nil {
		c.nav = NavigatorFunc(func(string) {})
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	c.log = c.log.Named("session")
	if c.tokenKey == "" {
		c.tokenKey = constants.AccessToken
	}
	return c
}

// Store exposes the owned state holder.
func (c *Controller) Store() *Store { return c.store }

// State is shorthand for Store().State().
func (c *Controller) State() State { return c.store.State() }

// Outcome is the result of one identity lookup, not yet applied.
type Outcome struct {
	Ticket Ticket
	User   *client.User
	Err    error
}

// BeginBootstrap marks the session as loading and returns the ticket the
// matching Fetch and Complete must carry.
func (c *Controller) BeginBootstrap() Ticket {
	t := c.store.Begin()
	c.log.Debug("bootstrap started", zap.Uint64("generation", t.gen))
	return t
}

// Fetch performs the identity lookup. It does not touch session state and is
// safe to run on any goroutine.
func (c *Controller) Fetch(ctx context.Context, t Ticket) Outcome {
	if c.users == nil {
		return Outcome{Ticket: t, Err: fmt.Errorf("no identity client configured")}
	}
	u, err := c.users.CurrentUser(ctx)
	return Outcome{Ticket: t, User: u, Err: err}
}

// Complete applies an outcome. Failures of any kind leave the session
// anonymous without notifying the user. It reports false when the outcome
// was superseded by a later bootstrap or a logout.
func (c *Controller) Complete(o Outcome) bool {
	var e Event
	if o.Err != nil || o.User == nil {
		e = UserLoadFailed{Err: o.Err}
	} else {
		e = UserLoaded{User: o.User}
	}

	if !c.store.Resolve(o.Ticket, e) {
		c.log.Debug("stale bootstrap discarded", zap.Uint64("generation", o.Ticket.gen))
		return false
	}

	switch {
	case o.Err == nil && o.User != nil:
		c.log.Info("session authenticated", zap.String("user", o.User.Username))
	case client.IsUnauthorized(o.Err):
		c.log.Debug("no valid credential, continuing anonymously")
	case o.Err != nil:
		c.log.Warn("current user lookup failed, continuing anonymously", zap.Error(o.Err))
	default:
		c.log.Warn("identity provider returned no user, continuing anonymously")
	}
	return true
}

// Bootstrap runs a full lookup and returns the resulting state.
func (c *Controller) Bootstrap(ctx context.Context) State {
	t := c.BeginBootstrap()
	c.Complete(c.Fetch(ctx, t))
	return c.store.State()
}

// BeginLogin announces a successful sign-in, starts a fresh bootstrap and
// navigates home. The caller runs Fetch and Complete with the ticket.
func (c *Controller) BeginLogin() Ticket {
	c.sink.Notify(notify.Success, notify.Notification{
		Message:     constants.ApplicationName,
		Description: constants.SuccessfulLogin,
	})
	t := c.BeginBootstrap()
	c.nav.Navigate(constants.RootPath)
	return t
}

// Login is the blocking form of BeginLogin.
func (c *Controller) Login(ctx context.Context) State {
	t := c.BeginLogin()
	c.Complete(c.Fetch(ctx, t))
	return c.store.State()
}

// LogoutOptions customise where a logout lands and what it says.
type LogoutOptions struct {
	RedirectTo string
	Kind       notify.Kind
	Message    string
}

// DefaultLogoutOptions is a user-initiated logout.
func DefaultLogoutOptions() LogoutOptions {
	return LogoutOptions{
		RedirectTo: constants.RootPath,
		Kind:       notify.Success,
		Message:    constants.SuccessfulLogout,
	}
}

// RequireLoginOptions drops the session and sends the user to the login
// page with an error, e.g. when the backend rejects the stored credential.
func RequireLoginOptions(message string) LogoutOptions {
	return LogoutOptions{
		RedirectTo: constants.LoginPath,
		Kind:       notify.Error,
		Message:    message,
	}
}

func (o LogoutOptions) withDefaults() LogoutOptions {
	d := DefaultLogoutOptions()
	if o.RedirectTo == "" {
		o.RedirectTo = d.RedirectTo
	}
	if o.Kind == "" {
		o.Kind = d.Kind
	}
	if o.Message == "" {
		o.Message = d.Message
	}
	return o
}

// Logout removes the stored credential, clears the session, navigates to
// opts.RedirectTo and notifies. If the credential cannot be removed the
// session is still cleared, but the error is returned and neither the
// navigation nor the notification happens.
func (c *Controller) Logout(ctx context.Context, opts LogoutOptions) error {
	opts = opts.withDefaults()

	var removeErr error
	if c.creds != nil {
		removeErr = c.creds.Remove(ctx, c.tokenKey)
	}

	c.store.SignOut()

	if removeErr != nil {
		c.log.Error("failed to remove stored credential", zap.Error(removeErr))
		return fmt.Errorf("remove stored credential: %w", removeErr)
	}

	c.log.Info("signed out", zap.String("redirect", opts.RedirectTo))
	c.nav.Navigate(opts.RedirectTo)
	c.sink.Notify(opts.Kind, notify.Notification{
		Message:     constants.ApplicationName,
		Description: opts.Message,
	})
	return nil
}
