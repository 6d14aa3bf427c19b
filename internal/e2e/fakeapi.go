// ABOUTME: In-memory Movierama backend and identity provider for tests
// ABOUTME: Serves the REST endpoints the client consumes, routed with chi

package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/constants"
)

// TokenTTL is the lifetime of issued access tokens.
const TokenTTL = time.Hour

var fakeSigningKey = []byte("movierama-fake-api")

// Account is a registered user of the fake backend.
type Account struct {
	Sub      string
	Name     string
	Username string
	Email    string
	Password string
}

// FakeAPI is a running fake backend. Both the REST API and the identity
// provider live on URL.
type FakeAPI struct {
	URL string

	mu           sync.Mutex
	accounts     map[string]Account // by username
	tokens       map[string]string  // token -> username
	movies       []client.Movie
	opinions     map[string]map[int64]client.Reaction // username -> movie -> reaction
	nextID       int64
	userInfoCode int
	userInfoHits int
	now          func() time.Time
}

// Start runs a fake backend for the duration of the test.
func Start(t testing.TB) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		accounts: map[string]Account{},
		tokens:   map[string]string{},
		opinions: map[string]map[int64]client.Reaction{},
		now:      time.Now,
	}
	srv := httptest.NewServer(f.Router())
	t.Cleanup(srv.Close)
	f.URL = srv.URL
	return f
}

// Router builds the route table.
func (f *FakeAPI) Router() http.Handler {
	r := chi.NewRouter()

	r.Get(constants.CurrentUserURL, f.handleUserInfo)
	r.Post(constants.AuthSignInURL, f.handleSignIn)
	r.Post(constants.AuthSignUpURL, f.handleSignUp)

	r.Route("/users", func(r chi.Router) {
		r.Get("/checkUsernameAvailability", f.handleAvailability(func(a Account, v string) bool { return a.Username == v }, "username"))
		r.Get("/checkEmailAvailability", f.handleAvailability(func(a Account, v string) bool { return a.Email == v }, "email"))
		r.Get("/{username}/movies", f.handleUserMovies)
	})

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", f.handleListMovies(client.SortNewest))
		r.Get("/ordered/like", f.handleListMovies(client.SortLikes))
		r.Get("/ordered/hate", f.handleListMovies(client.SortHates))

		r.Group(func(r chi.Router) {
			r.Use(f.requireToken)
			r.Post("/", f.handleAddMovie)
			r.Get("/opinions", f.handleOpinions)
			r.Post("/{id}/opinion", f.handleOpinion(false))
			r.Put("/{id}/opinion", f.handleOpinion(true))
			r.Post("/{id}/opinion/clear", f.handleClearOpinion)
		})
	})

	return r
}

// AddAccount registers a user directly.
func (f *FakeAPI) AddAccount(a Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.Sub == "" {
		a.Sub = "sub-" + a.Username
	}
	f.accounts[a.Username] = a
}

// IssueToken returns a valid access token for username.
func (f *FakeAPI) IssueToken(username string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issue(username)
}

// issue signs an HS256 access token shaped like the identity provider's.
func (f *FakeAPI) issue(username string) string {
	now := f.now()
	claims := jwt.MapClaims{
		"sub":      "sub-" + username,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(TokenTTL).Unix(),
		"jti":      strconv.Itoa(len(f.tokens) + 1),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(fakeSigningKey)
	if err != nil {
		panic(err)
	}
	f.tokens[tok] = username
	return tok
}

// RevokeTokens invalidates every issued token.
func (f *FakeAPI) RevokeTokens() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = map[string]string{}
}

// AddMovie publishes a movie on behalf of username and returns its id.
func (f *FakeAPI) AddMovie(username, title string, likes, hates int) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.add(username, title, "", likes, hates)
}

func (f *FakeAPI) add(username, title, description string, likes, hates int) int64 {
	f.nextID++
	f.movies = append(f.movies, client.Movie{
		ID:              f.nextID,
		Title:           title,
		Description:     description,
		PublishedBy:     username,
		PublicationDate: f.now().Add(time.Duration(f.nextID) * time.Second),
		Likes:           likes,
		Hates:           hates,
	})
	return f.nextID
}

// Movie returns the stored movie with id.
func (f *FakeAPI) Movie(id int64) (client.Movie, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.movies {
		if m.ID == id {
			return m, true
		}
	}
	return client.Movie{}, false
}

// Opinion returns username's reaction to a movie.
func (f *FakeAPI) Opinion(username string, id int64) client.Reaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opinions[username][id]
}

// FailUserInfo makes the identity endpoint answer with status; 0 restores
// normal behaviour.
func (f *FakeAPI) FailUserInfo(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userInfoCode = status
}

// UserInfoHits counts identity lookups.
func (f *FakeAPI) UserInfoHits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userInfoHits
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func (f *FakeAPI) caller(r *http.Request) (Account, bool) {
	tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return Account{}, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	username, ok := f.tokens[tok]
	if !ok {
		return Account{}, false
	}
	a, ok := f.accounts[username]
	return a, ok
}

func (f *FakeAPI) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.caller(r); !ok {
			writeError(w, http.StatusUnauthorized, "Full authentication is required to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.userInfoHits++
	code := f.userInfoCode
	f.mu.Unlock()

	if code != 0 {
		writeJSON(w, code, map[string]string{"error": "unavailable"})
		return
	}
	a, ok := f.caller(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_token", "error_description": "Access token has expired"})
		return
	}
	writeJSON(w, http.StatusOK, client.User{ID: a.Sub, Username: a.Username, Email: a.Email})
}

func (f *FakeAPI) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var in client.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if (a.Username == in.UsernameOrEmail || a.Email == in.UsernameOrEmail) && a.Password == in.Password {
			writeJSON(w, http.StatusOK, client.AuthResponse{AccessToken: f.issue(a.Username), TokenType: "Bearer"})
			return
		}
	}
	writeError(w, http.StatusUnauthorized, "Bad credentials")
}

func (f *FakeAPI) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var in client.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Username == in.Username || a.Email == in.Email {
			writeError(w, http.StatusBadRequest, "Username or email already in use")
			return
		}
	}
	f.accounts[in.Username] = Account{
		Sub:      "sub-" + in.Username,
		Name:     in.Name,
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	}
	writeJSON(w, http.StatusCreated, client.APIResponse{Success: true, Message: "User registered successfully"})
}

func (f *FakeAPI) handleAvailability(taken func(Account, string) bool, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := r.URL.Query().Get(param)
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, a := range f.accounts {
			if taken(a, v) {
				writeJSON(w, http.StatusOK, map[string]bool{"available": false})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]bool{"available": true})
	}
}

func paging(r *http.Request) (page, size int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	size, _ = strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 {
		size = constants.MoviesListSize
	}
	return max(page, 0), size
}

// pageOf slices movies the way Spring Data pages them.
func pageOf(movies []client.Movie, page, size int) client.MoviePage {
	total := len(movies)
	pages := (total + size - 1) / size
	start := min(page*size, total)
	end := min(start+size, total)
	return client.MoviePage{
		Content:       append([]client.Movie{}, movies[start:end]...),
		Number:        page,
		Size:          size,
		TotalElements: int64(total),
		TotalPages:    pages,
		First:         page == 0,
		Last:          page >= pages-1,
	}
}

func (f *FakeAPI) sorted(s client.Sort) []client.Movie {
	movies := append([]client.Movie{}, f.movies...)
	sort.SliceStable(movies, func(i, j int) bool {
		switch s {
		case client.SortLikes:
			return movies[i].Likes > movies[j].Likes
		case client.SortHates:
			return movies[i].Hates > movies[j].Hates
		default:
			return movies[i].PublicationDate.After(movies[j].PublicationDate)
		}
	})
	return movies
}

func (f *FakeAPI) handleListMovies(s client.Sort) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size := paging(r)
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, pageOf(f.sorted(s), page, size))
	}
}

func (f *FakeAPI) handleUserMovies(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	page, size := paging(r)

	f.mu.Lock()
	defer f.mu.Unlock()
	var mine []client.Movie
	for _, m := range f.sorted(client.SortNewest) {
		if m.PublishedBy == username {
			mine = append(mine, m)
		}
	}
	writeJSON(w, http.StatusOK, pageOf(mine, page, size))
}

func (f *FakeAPI) handleOpinions(w http.ResponseWriter, r *http.Request) {
	a, _ := f.caller(r)
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []client.Opinion{}
	for id, reaction := range f.opinions[a.Username] {
		out = append(out, client.Opinion{MovieID: id, Reaction: reaction})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MovieID < out[j].MovieID })
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) handleAddMovie(w http.ResponseWriter, r *http.Request) {
	a, _ := f.caller(r)
	var in client.NewMovie
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.add(a.Username, in.Title, in.Description, 0, 0)
	writeJSON(w, http.StatusCreated, client.APIResponse{Success: true, Message: "Movie Created Successfully"})
}

// movie returns a pointer into f.movies; callers hold f.mu.
func (f *FakeAPI) movie(r *http.Request) *client.Movie {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return nil
	}
	for i := range f.movies {
		if f.movies[i].ID == id {
			return &f.movies[i]
		}
	}
	return nil
}

func adjust(m *client.Movie, r client.Reaction, delta int) {
	switch r {
	case client.Like:
		m.Likes += delta
	case client.Hate:
		m.Hates += delta
	}
}

func (f *FakeAPI) handleOpinion(replace bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, _ := f.caller(r)
		var in struct {
			Reaction client.Reaction `json:"reaction"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || (in.Reaction != client.Like && in.Reaction != client.Hate) {
			writeError(w, http.StatusBadRequest, "reaction must be LIKE or HATE")
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		m := f.movie(r)
		if m == nil {
			writeError(w, http.StatusNotFound, "movie not found")
			return
		}
		if m.PublishedBy == a.Username {
			writeError(w, http.StatusBadRequest, "You cannot vote your own movie")
			return
		}

		mine := f.opinions[a.Username]
		if mine == nil {
			mine = map[int64]client.Reaction{}
			f.opinions[a.Username] = mine
		}
		prev, had := mine[m.ID]
		switch {
		case replace && !had:
			writeError(w, http.StatusBadRequest, "no opinion to change")
			return
		case !replace && had:
			writeError(w, http.StatusBadRequest, "opinion already exists")
			return
		}
		if had {
			adjust(m, prev, -1)
		}
		adjust(m, in.Reaction, 1)
		mine[m.ID] = in.Reaction
		w.WriteHeader(http.StatusOK)
	}
}

func (f *FakeAPI) handleClearOpinion(w http.ResponseWriter, r *http.Request) {
	a, _ := f.caller(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.movie(r)
	if m == nil {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}
	prev, had := f.opinions[a.Username][m.ID]
	if !had {
		writeError(w, http.StatusBadRequest, "no opinion to clear")
		return
	}
	adjust(m, prev, -1)
	delete(f.opinions[a.Username], m.ID)
	w.WriteHeader(http.StatusOK)
}
