// ABOUTME: Tests for the shared movie listing loader
// ABOUTME: Runs against the in-memory backend to cover caching and opinions

package app

import (
	"context"
	"testing"
	"time"

	"github.com/johnys190/movierama/internal/cache"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/e2e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

func TestListRequest_Key(t *testing.T) {
	assert.Equal(t, "movies:likes:2:5", ListRequest{Sort: client.SortLikes, Page: 2, Size: 5}.Key())
	assert.Equal(t, "users:bob:0:5", ListRequest{Username: "bob", Sort: client.SortHates, Size: 5}.Key(),
		"profile lists ignore the sort")
}

func TestForgetPublished(t *testing.T) {
	pages := cache.New[*client.MoviePage](time.Minute, zap.NewNop())
	t.Cleanup(pages.Close)

	for _, req := range []ListRequest{
		{Sort: client.SortNewest, Size: 5},
		{Sort: client.SortLikes, Page: 1, Size: 5},
		{Username: "alice", Size: 5},
		{Username: "bob", Size: 5},
	} {
		pages.Set(req.Key(), &client.MoviePage{})
	}

	assert.Equal(t, 3, ForgetPublished(pages, "alice"))

	_, found := pages.Get(ListRequest{Username: "bob", Size: 5}.Key())
	assert.True(t, found, "other publishers keep their pages")
	_, found = pages.Get(ListRequest{Sort: client.SortNewest, Size: 5}.Key())
	assert.False(t, found)
}

func TestLoadListing(t *testing.T) {
	ctx := context.Background()
	api := e2e.Start(t)
	api.AddAccount(e2e.Account{Username: "alice", Password: "secret1"})
	api.AddAccount(e2e.Account{Username: "bob", Password: "secret1"})
	heat := api.AddMovie("bob", "Heat", 0, 0)
	api.AddMovie("bob", "Alien", 0, 0)

	c := client.New(api.URL, client.Options{Tokens: staticToken(api.IssueToken("alice"))})
	_, err := c.Vote(ctx, client.Movie{ID: heat, PublishedBy: "bob"}, &client.User{Username: "alice"}, client.ReactionNone, client.Like)
	require.NoError(t, err)

	pages := cache.New[*client.MoviePage](time.Minute, zap.NewNop())
	t.Cleanup(pages.Close)

	req := ListRequest{Size: 5}
	l, err := LoadListing(ctx, c, pages, req, true)
	require.NoError(t, err)
	require.Len(t, l.Page.Content, 2)
	assert.Equal(t, "Alien", l.Page.Content[0].Title, "newest first")
	assert.Equal(t, client.Like, l.Opinions[heat])

	cached, ok := pages.Get(req.Key())
	require.True(t, ok)
	assert.Same(t, l.Page, cached)

	anon, err := LoadListing(ctx, c, pages, req, false)
	require.NoError(t, err)
	assert.Same(t, l.Page, anon.Page, "second load is served from the cache")
	assert.Empty(t, anon.Opinions)
}

func TestLoadListing_OpinionsRejected(t *testing.T) {
	api := e2e.Start(t)
	api.AddMovie("bob", "Heat", 0, 0)

	c := client.New(api.URL, client.Options{Tokens: staticToken("stale")})
	_, err := LoadListing(context.Background(), c, nil, ListRequest{Size: 5}, true)
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))
}

func TestLoadListing_Profile(t *testing.T) {
	api := e2e.Start(t)
	api.AddMovie("bob", "Heat", 0, 0)
	api.AddMovie("carol", "Solaris", 0, 0)

	c := client.New(api.URL, client.Options{})
	l, err := LoadListing(context.Background(), c, nil, ListRequest{Username: "carol", Size: 5}, false)
	require.NoError(t, err)
	require.Len(t, l.Page.Content, 1)
	assert.Equal(t, "Solaris", l.Page.Content[0].Title)
}
