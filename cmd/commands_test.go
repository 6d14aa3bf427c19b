// ABOUTME: Tests for the session and movie commands
// ABOUTME: Runs each command against the in-memory backend and checks output and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/johnys190/movierama/internal/app"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/constants"
	"github.com/johnys190/movierama/internal/e2e"
	"github.com/johnys190/movierama/internal/forms"
)

func loginAs(t *testing.T, api *e2e.FakeAPI, username string) {
	t.Helper()
	api.AddAccount(e2e.Account{Username: username, Email: username + "@example.com", Password: "secret1"})

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf, forms.SignIn{UsernameOrEmail: username, Password: "secret1"}); code != 0 {
		t.Fatalf("login failed with %d: %s", code, buf.String())
	}
}

func TestWhoami_NotLoggedIn(t *testing.T) {
	setup(t)

	var buf bytes.Buffer
	code := runWhoami(context.Background(), &buf)

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Not logged in.") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestWhoami_IdentityProviderDown(t *testing.T) {
	api := setup(t)
	loginAs(t, api, "alice")
	api.FailUserInfo(http.StatusServiceUnavailable)

	var buf bytes.Buffer
	if code := runWhoami(context.Background(), &buf); code != 2 {
		t.Errorf("expected exit code 2, got %d: %s", code, buf.String())
	}
}

func TestLoginWhoamiLogout(t *testing.T) {
	api := setup(t)
	api.AddAccount(e2e.Account{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	ctx := context.Background()

	var buf bytes.Buffer
	code := runLogin(ctx, &buf, forms.SignIn{UsernameOrEmail: "alice@example.com", Password: "secret1"})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	for _, expected := range []string{constants.SuccessfulLogin, "Logged in as alice <alice@example.com>", "Token expires"} {
		if !strings.Contains(buf.String(), expected) {
			t.Errorf("expected login output to contain %q, got %q", expected, buf.String())
		}
	}

	buf.Reset()
	jsonOutput = true
	code = runWhoami(ctx, &buf)
	jsonOutput = false
	if code != 0 {
		t.Fatalf("expected whoami exit code 0, got %d", code)
	}
	var res whoamiResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if !res.Authenticated || res.Username != "alice" {
		t.Errorf("unexpected whoami result %+v", res)
	}
	if res.ExpiresAt == nil || time.Until(*res.ExpiresAt) > e2e.TokenTTL || time.Until(*res.ExpiresAt) < e2e.TokenTTL-time.Minute {
		t.Errorf("expected token expiry about %s ahead, got %v", e2e.TokenTTL, res.ExpiresAt)
	}

	buf.Reset()
	if code := runLogout(ctx, &buf); code != 0 {
		t.Fatalf("expected logout exit code 0, got %d", code)
	}
	if !strings.Contains(buf.String(), constants.SuccessfulLogout) {
		t.Errorf("expected logout notification, got %q", buf.String())
	}

	buf.Reset()
	if code := runWhoami(ctx, &buf); code != 1 {
		t.Errorf("expected whoami after logout to exit 1, got %d", code)
	}
}

func TestLogin_Rejected(t *testing.T) {
	tests := []struct {
		name string
		form forms.SignIn
		want string
	}{
		{"wrong password", forms.SignIn{UsernameOrEmail: "alice", Password: "nope"}, constants.LoginAuthorizationErrorMessage},
		{"missing password", forms.SignIn{UsernameOrEmail: "alice"}, "Password may not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := setup(t)
			api.AddAccount(e2e.Account{Username: "alice", Password: "secret1"})

			var buf bytes.Buffer
			if code := runLogin(context.Background(), &buf, tt.form); code != 1 {
				t.Errorf("expected exit code 1, got %d", code)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in output, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestMovies(t *testing.T) {
	api := setup(t)
	api.AddMovie("bob", "Heat", 1, 4)
	api.AddMovie("bob", "Alien", 7, 0)
	api.AddMovie("carol", "Solaris", 3, 2)

	tests := []struct {
		name  string
		sort  string
		user  string
		order []string
	}{
		{"newest", "newest", "", []string{"Solaris", "Alien", "Heat"}},
		{"likes", "likes", "", []string{"Alien", "Solaris", "Heat"}},
		{"hates", "hates", "", []string{"Heat", "Solaris", "Alien"}},
		{"profile", "", "bob", []string{"Alien", "Heat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moviesSort, moviesPage, moviesUser = tt.sort, 1, tt.user
			defer func() { moviesSort, moviesPage, moviesUser = "newest", 1, "" }()

			var buf bytes.Buffer
			if code := runMovies(context.Background(), &buf); code != 0 {
				t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
			}

			out := buf.String()
			last := -1
			for _, title := range tt.order {
				idx := strings.Index(out, title)
				if idx < 0 {
					t.Fatalf("expected %q in output\n%s", title, out)
				}
				if idx < last {
					t.Errorf("expected %q after the previous title\n%s", title, out)
				}
				last = idx
			}
			if tt.user != "" && strings.Contains(out, "Solaris") {
				t.Error("expected only bob's movies")
			}
		})
	}
}

func TestMovies_ShowsOwnReactions(t *testing.T) {
	api := setup(t)
	id := api.AddMovie("bob", "Heat", 0, 0)
	loginAs(t, api, "alice")

	var buf bytes.Buffer
	if code := runVote(context.Background(), &buf, itoa(id), "hate"); code != 0 {
		t.Fatalf("vote failed: %s", buf.String())
	}

	buf.Reset()
	jsonOutput = true
	code := runMovies(context.Background(), &buf)
	jsonOutput = false
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	var l app.Listing
	if err := json.Unmarshal(buf.Bytes(), &l); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if l.Opinions[id] != client.Hate {
		t.Errorf("expected hate for movie %d, got %v", id, l.Opinions)
	}
	if l.Page.Content[0].Hates != 1 {
		t.Errorf("expected updated hate count, got %d", l.Page.Content[0].Hates)
	}
}

func TestMovies_InvalidFlags(t *testing.T) {
	setup(t)
	defer func() { moviesSort, moviesPage = "newest", 1 }()

	var buf bytes.Buffer
	moviesSort = "stars"
	if code := runMovies(context.Background(), &buf); code != 1 {
		t.Errorf("expected exit code 1 for bad sort, got %d", code)
	}

	moviesSort, moviesPage = "newest", 0
	if code := runMovies(context.Background(), &buf); code != 1 {
		t.Errorf("expected exit code 1 for bad page, got %d", code)
	}
}

func TestMovies_BackendDown(t *testing.T) {
	setup(t)
	apiURL = "http://127.0.0.1:1"

	var buf bytes.Buffer
	if code := runMovies(context.Background(), &buf); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestFormatMoviesHuman(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	l := &app.Listing{
		Page: &client.MoviePage{
			Content:       []client.Movie{{ID: 3, Title: "Heat", PublishedBy: "bob", PublicationDate: now.Add(-2 * time.Hour), Likes: 2}},
			TotalPages:    1,
			TotalElements: 1,
		},
		Opinions: map[int64]client.Reaction{3: client.Like},
	}

	out := formatMoviesHuman(app.ListRequest{Sort: client.SortLikes}, l, now)
	for _, expected := range []string{"Movies · Page 1 of 1 · 1 movies · sorted by likes", "Heat", "bob", "2h ago", "like"} {
		if !strings.Contains(out, expected) {
			t.Errorf("expected %q in output\n%s", expected, out)
		}
	}

	empty := formatMoviesHuman(app.ListRequest{Username: "carol"}, &app.Listing{Page: &client.MoviePage{}}, now)
	if !strings.Contains(empty, "carol's movies") || !strings.Contains(empty, "No movies yet.") {
		t.Errorf("unexpected empty output %q", empty)
	}
}

func TestAdd(t *testing.T) {
	api := setup(t)
	defer func() { addTitle, addDescription = "", "" }()
	ctx := context.Background()

	addTitle, addDescription = "Heat", "Cops and robbers"
	var buf bytes.Buffer
	if code := runAdd(ctx, &buf); code != 1 {
		t.Errorf("expected exit code 1 when anonymous, got %d", code)
	}

	loginAs(t, api, "alice")
	buf.Reset()
	if code := runAdd(ctx, &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), constants.MovieCreated) {
		t.Errorf("expected created message, got %q", buf.String())
	}
	if m, ok := api.Movie(1); !ok || m.Title != "Heat" || m.PublishedBy != "alice" {
		t.Errorf("unexpected stored movie %+v", m)
	}

	addTitle = strings.Repeat("x", constants.MovieTitleMaxLength+1)
	if code := runAdd(ctx, &buf); code != 1 {
		t.Errorf("expected exit code 1 for a long title, got %d", code)
	}
}

func TestVote(t *testing.T) {
	api := setup(t)
	heat := api.AddMovie("bob", "Heat", 0, 0)
	ctx := context.Background()

	var buf bytes.Buffer
	if code := runVote(ctx, &buf, itoa(heat), "like"); code != 1 || !strings.Contains(buf.String(), constants.VoteRequiresLogin) {
		t.Errorf("expected login requirement, got %d: %s", code, buf.String())
	}

	loginAs(t, api, "alice")
	mine := api.AddMovie("alice", "Alien", 0, 0)

	steps := []struct {
		reaction string
		want     client.Reaction
		output   string
	}{
		{"like", client.Like, "recorded like"},
		{"hate", client.Hate, "switched to hate"},
		{"hate", client.ReactionNone, "reaction cleared"},
	}
	for _, step := range steps {
		buf.Reset()
		if code := runVote(ctx, &buf, itoa(heat), step.reaction); code != 0 {
			t.Fatalf("vote %s failed with %d: %s", step.reaction, code, buf.String())
		}
		if !strings.Contains(buf.String(), step.output) {
			t.Errorf("expected %q, got %q", step.output, buf.String())
		}
		if got := api.Opinion("alice", heat); got != step.want {
			t.Errorf("after %s expected %q, got %q", step.reaction, step.want, got)
		}
	}

	buf.Reset()
	if code := runVote(ctx, &buf, itoa(mine), "like"); code != 1 || !strings.Contains(buf.String(), "Cannot like your own movie.") {
		t.Errorf("expected own movie refusal, got %d: %s", code, buf.String())
	}

	if code := runVote(ctx, &buf, "999", "like"); code != 1 {
		t.Errorf("expected exit code 1 for unknown movie, got %d", code)
	}
	if code := runVote(ctx, &buf, "abc", "like"); code != 1 {
		t.Errorf("expected exit code 1 for bad id, got %d", code)
	}
	if code := runVote(ctx, &buf, itoa(heat), "meh"); code != 1 {
		t.Errorf("expected exit code 1 for bad reaction, got %d", code)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
