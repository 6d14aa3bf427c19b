// ABOUTME: Movie listing, submission and reaction endpoints
// ABOUTME: Also decides which reaction call a vote maps to

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/johnys190/movierama/internal/constants"
	"go.uber.org/zap"
)

// Reaction is a user's opinion of a movie
type Reaction string

const (
	ReactionNone Reaction = ""
	Like         Reaction = "LIKE"
	Hate         Reaction = "HATE"
)

// ParseReaction accepts like/hate in any case.
func ParseReaction(s string) (Reaction, error) {
	switch Reaction(strings.ToUpper(strings.TrimSpace(s))) {
	case Like:
		return Like, nil
	case Hate:
		return Hate, nil
	}
	return ReactionNone, fmt.Errorf("invalid reaction %q (must be like or hate)", s)
}

// Movie is one recommendation as listed by the backend
type Movie struct {
	ID              int64     `json:"movieId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	PublishedBy     string    `json:"publishedBy"`
	PublicationDate time.Time `json:"publicationDate"`
	Likes           int       `json:"likes"`
	Hates           int       `json:"hates"`
}

// PublishedByUser reports whether u submitted the movie. The backend stores
// the publisher's subject; older records carry the username.
func (m Movie) PublishedByUser(u *User) bool {
	if u == nil || m.PublishedBy == "" {
		return false
	}
	return m.PublishedBy == u.ID || m.PublishedBy == u.Username
}

// MoviePage is one page of a Spring Data listing
type MoviePage struct {
	Content       []Movie `json:"content"`
	Number        int     `json:"number"`
	Size          int     `json:"size"`
	TotalElements int64   `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
	First         bool    `json:"first"`
	Last          bool    `json:"last"`
}

// Opinion is the caller's reaction to one movie
type Opinion struct {
	MovieID  int64    `json:"movieId"`
	Reaction Reaction `json:"reaction"`
}

// NewMovie is the body of POST /movies
type NewMovie struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type reactionRequest struct {
	Reaction Reaction `json:"reaction"`
}

// Sort selects the ordering of the public movie list
type Sort int

const (
	SortNewest Sort = iota
	SortLikes
	SortHates
)

func (s Sort) String() string {
	switch s {
	case SortLikes:
		return "likes"
	case SortHates:
		return "hates"
	default:
		return "newest"
	}
}

// ParseSort maps a flag value onto a Sort.
func ParseSort(s string) (Sort, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "newest", "date":
		return SortNewest, nil
	case "likes", "like":
		return SortLikes, nil
	case "hates", "hate":
		return SortHates, nil
	}
	return SortNewest, fmt.Errorf("invalid sort %q (must be newest, likes or hates)", s)
}

func (s Sort) prefix() string {
	switch s {
	case SortLikes:
		return constants.PrefixGetMoviesOrderedByLikeURL
	case SortHates:
		return constants.PrefixGetMoviesOrderedByHateURL
	default:
		return constants.PrefixGetMoviesURL
	}
}

func paging(page, size int) string {
	if size <= 0 {
		size = constants.MoviesListSize
	}
	if page < 0 {
		page = 0
	}
	return strconv.Itoa(page) + constants.SizeParameter + strconv.Itoa(size)
}

// ListMovies calls GET /movies, /movies/ordered/like or /movies/ordered/hate
func (c *Client) ListMovies(ctx context.Context, sort Sort, page, size int) (*MoviePage, error) {
	var out MoviePage
	if err := c.do(ctx, http.MethodGet, c.baseURL+sort.prefix()+paging(page, size), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserMovies calls GET /users/{username}/movies
func (c *Client) UserMovies(ctx context.Context, username string, page, size int) (*MoviePage, error) {
	u := c.baseURL + constants.UsersURL + url.PathEscape(username) + "/movies?page=" + paging(page, size)
	var out MoviePage
	if err := c.do(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Opinions calls GET /movies/opinions for the authenticated caller
func (c *Client) Opinions(ctx context.Context, page, size int) ([]Opinion, error) {
	var out []Opinion
	if err := c.do(ctx, http.MethodGet, c.baseURL+constants.GetMoviesOpinionsURL+paging(page, size), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OpinionIndex keys opinions by movie id.
func OpinionIndex(ops []Opinion) map[int64]Reaction {
	idx := make(map[int64]Reaction, len(ops))
	for _, o := range ops {
		idx[o.MovieID] = o.Reaction
	}
	return idx
}

// AddMovie calls POST /movies
func (c *Client) AddMovie(ctx context.Context, in NewMovie) (*APIResponse, error) {
	var out APIResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+constants.AddMovieURL, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VoteAction is the reaction call a vote turns into
type VoteAction int

const (
	VoteAdd VoteAction = iota
	VoteClear
	VoteSwitch
)

func (a VoteAction) String() string {
	switch a {
	case VoteClear:
		return "clear"
	case VoteSwitch:
		return "switch"
	default:
		return "add"
	}
}

// PlanVote maps the caller's current reaction and the requested one onto a
// backend call: add when there is none, clear when the same reaction is
// requested again, switch otherwise.
func PlanVote(current, requested Reaction) VoteAction {
	switch current {
	case ReactionNone:
		return VoteAdd
	case requested:
		return VoteClear
	default:
		return VoteSwitch
	}
}

// OwnMovieError refuses a vote on the caller's own movie.
type OwnMovieError struct {
	Reaction Reaction
}

func (e *OwnMovieError) Error() string {
	return "Cannot " + strings.ToLower(string(e.Reaction)) + " your own movie."
}

// Vote applies a like/hate on behalf of voter and returns the call it made.
func (c *Client) Vote(ctx context.Context, movie Movie, voter *User, current, requested Reaction) (VoteAction, error) {
	if movie.PublishedByUser(voter) {
		return VoteAdd, &OwnMovieError{Reaction: requested}
	}

	action := PlanVote(current, requested)
	base := c.baseURL + constants.MoviesURL + strconv.FormatInt(movie.ID, 10)

	var err error
	switch action {
	case VoteAdd:
		err = c.do(ctx, http.MethodPost, base+constants.OpinionURL, reactionRequest{Reaction: requested}, nil)
	case VoteClear:
		err = c.do(ctx, http.MethodPost, base+constants.ClearOpinionURL, nil, nil)
	case VoteSwitch:
		err = c.do(ctx, http.MethodPut, base+constants.OpinionURL, reactionRequest{Reaction: requested}, nil)
	}
	if err != nil {
		return action, err
	}
	c.log.Debug("vote applied", zap.Int64("movie_id", movie.ID), zap.Stringer("action", action))
	return action, nil
}
