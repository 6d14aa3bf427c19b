// ABOUTME: End-to-end tests for the session lifecycle and route gate
// ABOUTME: Drives a real client graph through bootstrap, login, logout and expiry

package e2e

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/johnys190/movierama/internal/app"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/config"
	"github.com/johnys190/movierama/internal/constants"
	"github.com/johnys190/movierama/internal/credentials"
	"github.com/johnys190/movierama/internal/notify"
	"github.com/johnys190/movierama/internal/session"
)

func TestFreshStartWithoutCredentialIsRedirectedToLogin(t *testing.T) {
	h := newHarness(t, Start(t))
	ctx := context.Background()

	// Before the lookup resolves, protected routes stay closed
	ticket := h.session.BeginBootstrap()
	if got := h.visit(constants.NewMoviePath); got != constants.LoginPath {
		t.Errorf("Expected redirect to %s while bootstrapping, got %s", constants.LoginPath, got)
	}
	if h.session.Store().Phase() != session.Bootstrapping {
		t.Errorf("Expected bootstrapping, got %s", h.session.Store().Phase())
	}

	h.session.Complete(h.session.Fetch(ctx, ticket))

	st := h.session.State()
	checkInvariant(t, st)
	if st.IsAuthenticated || st.IsLoading {
		t.Errorf("Expected settled anonymous session, got %+v", st)
	}
	if h.session.Store().Phase() != session.Anonymous {
		t.Errorf("Expected anonymous, got %s", h.session.Store().Phase())
	}
	if got := h.visit(constants.NewMoviePath); got != constants.LoginPath {
		t.Errorf("Expected redirect to %s, got %s", constants.LoginPath, got)
	}
	if got := h.visit("/"); got != "/" {
		t.Errorf("Expected public route to render, got %s", got)
	}
	if n := len(h.toasts.Entries()); n != 0 {
		t.Errorf("Expected no notifications for an anonymous start, got %d", n)
	}
}

func TestLoginFormStoresCredentialAndAuthenticates(t *testing.T) {
	api := Start(t)
	api.AddAccount(Account{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	h := newHarness(t, api)
	ctx := context.Background()

	h.session.Bootstrap(ctx)
	h.visit(constants.LoginPath)

	// The login form exchanges the password and stores the token itself
	auth, err := h.app.Client.SignIn(ctx, client.SignInRequest{UsernameOrEmail: "alice", Password: "secret1"})
	if err != nil {
		t.Fatalf("Sign in failed: %v", err)
	}
	if err := h.app.Credentials.Set(ctx, constants.AccessToken, auth.AccessToken); err != nil {
		t.Fatalf("Failed to store credential: %v", err)
	}

	st := h.session.Login(ctx)

	checkInvariant(t, st)
	if !st.IsAuthenticated || st.Username() != "alice" {
		t.Fatalf("Expected alice to be authenticated, got %+v", st)
	}
	if h.history.Current() != constants.RootPath {
		t.Errorf("Expected navigation at %s, got %s", constants.RootPath, h.history.Current())
	}

	entries := h.toasts.Entries()
	if len(entries) != 1 {
		t.Fatalf("Expected exactly one notification, got %d", len(entries))
	}
	if entries[0].Kind != notify.Success || entries[0].Message != constants.ApplicationName || entries[0].Description != constants.SuccessfulLogin {
		t.Errorf("Unexpected notification %+v", entries[0])
	}

	if got := h.visit(constants.NewMoviePath); got != constants.NewMoviePath {
		t.Errorf("Expected protected route to render once logged in, got %s", got)
	}
}

func TestLogoutClosesProtectedRoutes(t *testing.T) {
	api := Start(t)
	api.AddAccount(Account{Username: "alice", Password: "secret1"})
	h := newHarness(t, api)
	ctx := context.Background()

	h.app.Credentials.Set(ctx, constants.AccessToken, api.IssueToken("alice"))
	if !h.session.Bootstrap(ctx).IsAuthenticated {
		t.Fatal("Expected stored credential to authenticate")
	}
	h.visit(constants.NewMoviePath)

	if err := h.session.Logout(ctx, session.DefaultLogoutOptions()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	st := h.session.State()
	checkInvariant(t, st)
	if st.IsAuthenticated {
		t.Error("Expected anonymous session after logout")
	}
	if _, err := h.app.Credentials.Get(ctx, constants.AccessToken); !errors.Is(err, credentials.ErrNotFound) {
		t.Errorf("Expected credential to be removed, got %v", err)
	}
	if h.history.Current() != constants.RootPath {
		t.Errorf("Expected logout to land on %s, got %s", constants.RootPath, h.history.Current())
	}
	if got := h.visit(constants.NewMoviePath); got != constants.LoginPath {
		t.Errorf("Expected redirect after logout, got %s", got)
	}

	entries := h.toasts.Entries()
	if len(entries) != 1 || entries[0].Description != constants.SuccessfulLogout {
		t.Errorf("Expected one logout notification, got %+v", entries)
	}

	// A second lookup confirms nothing was left behind
	if h.session.Bootstrap(ctx).IsAuthenticated {
		t.Error("Expected bootstrap after logout to stay anonymous")
	}
}

func TestStaleBootstrapCannotResurrectSession(t *testing.T) {
	api := Start(t)
	api.AddAccount(Account{Username: "alice", Password: "secret1"})
	h := newHarness(t, api)
	ctx := context.Background()

	h.app.Credentials.Set(ctx, constants.AccessToken, api.IssueToken("alice"))
	ticket := h.session.BeginBootstrap()
	outcome := h.session.Fetch(ctx, ticket)
	if outcome.Err != nil || outcome.User == nil {
		t.Fatalf("Expected lookup to succeed, got %+v", outcome)
	}

	// The user logs out before the response is applied
	h.session.Logout(ctx, session.DefaultLogoutOptions())

	if h.session.Complete(outcome) {
		t.Error("Expected stale outcome to be discarded")
	}
	st := h.session.State()
	checkInvariant(t, st)
	if st.IsAuthenticated {
		t.Error("Stale lookup resurrected the session")
	}
}

func TestOverlappingBootstrapsLatestWins(t *testing.T) {
	api := Start(t)
	api.AddAccount(Account{Username: "alice", Password: "secret1"})
	api.AddAccount(Account{Username: "bob", Password: "secret1"})
	h := newHarness(t, api)
	ctx := context.Background()

	h.app.Credentials.Set(ctx, constants.AccessToken, api.IssueToken("alice"))
	first := h.session.BeginBootstrap()
	firstOutcome := h.session.Fetch(ctx, first)

	h.app.Credentials.Set(ctx, constants.AccessToken, api.IssueToken("bob"))
	second := h.session.BeginBootstrap()
	secondOutcome := h.session.Fetch(ctx, second)

	if second.Generation() <= first.Generation() {
		t.Fatalf("Expected increasing generations, got %d then %d", first.Generation(), second.Generation())
	}

	// Responses arrive out of order
	if !h.session.Complete(secondOutcome) {
		t.Error("Expected latest outcome to apply")
	}
	if h.session.Complete(firstOutcome) {
		t.Error("Expected superseded outcome to be dropped")
	}

	st := h.session.State()
	checkInvariant(t, st)
	if st.Username() != "bob" {
		t.Errorf("Expected bob, got %q", st.Username())
	}
}

func TestIdentityFailuresAreSilentlyAnonymous(t *testing.T) {
	tests := []struct {
		name   string
		token  bool
		status int
	}{
		{"no credential", false, 0},
		{"revoked credential", true, 0},
		{"identity provider unauthorized", true, http.StatusUnauthorized},
		{"identity provider down", true, http.StatusServiceUnavailable},
		{"identity provider error", true, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := Start(t)
			api.AddAccount(Account{Username: "alice", Password: "secret1"})
			h := newHarness(t, api)
			ctx := context.Background()

			if tt.token {
				h.app.Credentials.Set(ctx, constants.AccessToken, api.IssueToken("alice"))
			}
			if tt.status == 0 && tt.token {
				api.RevokeTokens()
			}
			api.FailUserInfo(tt.status)

			st := h.session.Bootstrap(ctx)

			checkInvariant(t, st)
			if st.IsAuthenticated || st.IsLoading {
				t.Errorf("Expected settled anonymous session, got %+v", st)
			}
			if n := len(h.toasts.Entries()); n != 0 {
				t.Errorf("Expected no notifications, got %d", n)
			}
			if tt.token && api.UserInfoHits() != 1 {
				t.Errorf("Expected exactly one lookup and no retries, got %d", api.UserInfoHits())
			}
		})
	}
}

func TestExpiredCredentialDuringBrowsingRequiresLogin(t *testing.T) {
	api := Start(t)
	api.AddAccount(Account{Username: "alice", Password: "secret1"})
	api.AddMovie("bob", "Heat", 0, 0)
	h := newHarness(t, api)
	ctx := context.Background()

	h.app.Credentials.Set(ctx, constants.AccessToken, api.IssueToken("alice"))
	h.session.Bootstrap(ctx)
	h.visit(constants.NewMoviePath)

	api.RevokeTokens()
	req := app.ListRequest{Page: 0, Size: h.app.Config.PageSize}
	_, err := app.LoadListing(ctx, h.app.Client, h.app.Pages, req, true)
	if !client.IsUnauthorized(err) {
		t.Fatalf("Expected unauthorized listing, got %v", err)
	}

	if err := h.session.Logout(ctx, session.RequireLoginOptions(constants.SessionExpired)); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if h.history.Current() != constants.LoginPath {
		t.Errorf("Expected redirect to %s, got %s", constants.LoginPath, h.history.Current())
	}
	entries := h.toasts.Entries()
	if len(entries) != 1 || entries[0].Kind != notify.Error || entries[0].Description != constants.SessionExpired {
		t.Errorf("Expected one expiry error notification, got %+v", entries)
	}

	// Public browsing still works anonymously
	l, err := app.LoadListing(ctx, h.app.Client, h.app.Pages, req, false)
	if err != nil {
		t.Fatalf("Expected anonymous listing, got %v", err)
	}
	if len(l.Page.Content) != 1 || len(l.Opinions) != 0 {
		t.Errorf("Unexpected anonymous listing %+v", l)
	}
}

func TestSessionInvariantAcrossSequences(t *testing.T) {
	api := Start(t)
	api.AddAccount(Account{Username: "alice", Password: "secret1"})
	h := newHarness(t, api)
	ctx := context.Background()

	store := func() {
		h.app.Credentials.Set(ctx, constants.AccessToken, api.IssueToken("alice"))
	}
	steps := []struct {
		name string
		run  func()
		auth bool
	}{
		{"bootstrap anonymous", func() { h.session.Bootstrap(ctx) }, false},
		{"logout anonymous", func() { h.session.Logout(ctx, session.DefaultLogoutOptions()) }, false},
		{"login", func() { store(); h.session.Login(ctx) }, true},
		{"re-login", func() { h.session.Login(ctx) }, true},
		{"bootstrap authenticated", func() { h.session.Bootstrap(ctx) }, true},
		{"logout", func() { h.session.Logout(ctx, session.DefaultLogoutOptions()) }, false},
		{"login then provider down", func() {
			store()
			api.FailUserInfo(http.StatusBadGateway)
			h.session.Login(ctx)
			api.FailUserInfo(0)
		}, false},
		{"bootstrap recovers", func() { h.session.Bootstrap(ctx) }, true},
	}

	for _, step := range steps {
		step.run()
		st := h.session.State()
		checkInvariant(t, st)
		if st.IsLoading {
			t.Errorf("%s: expected settled session", step.name)
		}
		if st.IsAuthenticated != step.auth {
			t.Errorf("%s: expected authenticated=%v, got %+v", step.name, step.auth, st)
		}
	}
}

func TestLoginWithRedisCredentialStore(t *testing.T) {
	mr := miniredis.RunT(t)
	api := Start(t)
	api.AddAccount(Account{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	h := newHarness(t, api, func(cfg *config.Config) {
		cfg.CredentialStore = config.StoreRedis
		cfg.RedisAddr = mr.Addr()
	})
	ctx := context.Background()

	auth, err := h.app.Client.SignIn(ctx, client.SignInRequest{UsernameOrEmail: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Sign in failed: %v", err)
	}
	h.app.Credentials.Set(ctx, constants.AccessToken, auth.AccessToken)

	if st := h.session.Login(ctx); st.Username() != "alice" {
		t.Fatalf("Expected alice, got %+v", st)
	}
	if got, _ := mr.Get(credentials.DefaultRedisPrefix + constants.AccessToken); got != auth.AccessToken {
		t.Errorf("Expected token in redis, got %q", got)
	}

	h.session.Logout(ctx, session.DefaultLogoutOptions())
	if mr.Exists(credentials.DefaultRedisPrefix + constants.AccessToken) {
		t.Error("Expected logout to remove the token from redis")
	}
}
