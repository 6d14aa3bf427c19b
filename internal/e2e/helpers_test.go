// ABOUTME: Shared helpers for the end-to-end session scenarios
// ABOUTME: Wires a real client graph against the in-memory backend

package e2e

import (
	"context"
	"testing"

	"github.com/johnys190/movierama/internal/app"
	"github.com/johnys190/movierama/internal/config"
	"github.com/johnys190/movierama/internal/notify"
	"github.com/johnys190/movierama/internal/route"
	"github.com/johnys190/movierama/internal/session"
)

// harness is one client process: its dependency graph, session, history and
// the notifications it raised.
type harness struct {
	api     *FakeAPI
	app     *app.App
	history *route.History
	toasts  *notify.Recorder
	session *session.Controller
}

func newHarness(t *testing.T, api *FakeAPI, tweak ...func(*config.Config)) *harness {
	t.Helper()

	cfg := config.Default()
	cfg.ConfigDir = t.TempDir()
	cfg.APIURL = api.URL
	cfg.AuthURL = api.URL
	for _, fn := range tweak {
		fn(cfg)
	}

	a, err := app.New(context.Background(), cfg, app.Options{})
	if err != nil {
		t.Fatalf("Failed to build client: %v", err)
	}
	t.Cleanup(func() { a.Close(context.Background()) })

	h := &harness{
		api:     api,
		app:     a,
		history: route.NewHistory("/"),
		toasts:  &notify.Recorder{},
	}
	h.session = a.NewSession(h.toasts, h.history)
	return h
}

// visit navigates to path through the gate and returns where the user ends up.
func (h *harness) visit(path string) string {
	h.history.Navigate(path)
	m := route.Resolve(path)
	if d := route.Authorize(m.Request(), h.session.State()); !d.Allowed {
		h.history.Replace(d.RedirectTo)
	}
	return h.history.Current()
}

// checkInvariant fails when the authenticated flag and the user disagree.
func checkInvariant(t *testing.T, st session.State) {
	t.Helper()
	if st.IsAuthenticated != (st.CurrentUser != nil) {
		t.Errorf("IsAuthenticated=%v but CurrentUser=%+v", st.IsAuthenticated, st.CurrentUser)
	}
}
