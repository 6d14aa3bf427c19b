// ABOUTME: Movie listing loader shared by the TUI and the CLI
// ABOUTME: Fetches a page through the cache and the viewer's reactions concurrently

package app

import (
	"context"
	"fmt"

	"github.com/johnys190/movierama/internal/client"
	"golang.org/x/sync/errgroup"
)

// ListRequest identifies one movie page. Username selects a publisher's
// list instead of the public one; Sort only applies to the public list.
type ListRequest struct {
	Username string
	Sort     client.Sort
	Page     int
	Size     int
}

// Key is the page cache key.
func (r ListRequest) Key() string {
	if r.Username != "" {
		return fmt.Sprintf("users:%s:%d:%d", r.Username, r.Page, r.Size)
	}
	return fmt.Sprintf("movies:%s:%d:%d", r.Sort, r.Page, r.Size)
}

// ForgetPublished drops the cached pages a new movie by username shows up
// on: every public page and the publisher's own list.
func ForgetPublished(pages *PageCache, username string) int {
	n := pages.ClearPrefix("movies:")
	if username != "" {
		n += pages.ClearPrefix("users:" + username + ":")
	}
	return n
}

// Listing is a page plus the viewer's reactions to it.
type Listing struct {
	Page     *client.MoviePage         `json:"page"`
	Opinions map[int64]client.Reaction `json:"opinions"`
}

// LoadListing fetches req, serving the page from pages when fresh. When
// withOpinions is set the viewer's reactions are fetched alongside; they are
// never cached since votes change them.
func LoadListing(ctx context.Context, c *client.Client, pages *PageCache, req ListRequest, withOpinions bool) (*Listing, error) {
	var (
		page     *client.MoviePage
		opinions []client.Opinion
	)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		key := req.Key()
		if pages != nil {
			if cached, ok := pages.Get(key); ok {
				page = cached
				return nil
			}
		}

		var err error
		if req.Username != "" {
			page, err = c.UserMovies(ctx, req.Username, req.Page, req.Size)
		} else {
			page, err = c.ListMovies(ctx, req.Sort, req.Page, req.Size)
		}
		if err != nil {
			return err
		}
		if pages != nil {
			pages.Set(key, page)
		}
		return nil
	})

	if withOpinions {
		g.Go(func() error {
			ops, err := c.Opinions(ctx, req.Page, req.Size)
			if err != nil {
				return fmt.Errorf("failed to load opinions: %w", err)
			}
			opinions = ops
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Listing{Page: page, Opinions: client.OpinionIndex(opinions)}, nil
}
