// ABOUTME: Client-side route table and path matching
// ABOUTME: Ordered routes, first match wins, with :param segments

package route

import (
	"strings"

	"github.com/johnys190/movierama/internal/constants"
)

// Screen names what a route renders.
type Screen int

const (
	ScreenNotFound Screen = iota
	ScreenMovieList
	ScreenLogin
	ScreenSignup
	ScreenProfile
	ScreenNewMovie
)

func (s Screen) String() string {
	switch s {
	case ScreenMovieList:
		return "movies"
	case ScreenLogin:
		return "login"
	case ScreenSignup:
		return "signup"
	case ScreenProfile:
		return "profile"
	case ScreenNewMovie:
		return "new movie"
	default:
		return "not found"
	}
}

// Route is one entry of the table. Non-exact routes also match any deeper
// path, the way the web router did.
type Route struct {
	Pattern   string
	Exact     bool
	Protected bool
	Screen    Screen
}

// Table is the application's route table in match order.
var Table = []Route{
	{Pattern: constants.RootPath, Exact: true, Screen: ScreenMovieList},
	{Pattern: constants.LoginPath, Screen: ScreenLogin},
	{Pattern: constants.SignupPath, Screen: ScreenSignup},
	{Pattern: constants.ProfilePath + ":username", Screen: ScreenProfile},
	{Pattern: constants.NewMoviePath, Protected: true, Screen: ScreenNewMovie},
}

// Match is the result of resolving a path.
type Match struct {
	Route  Route
	Path   string
	Params map[string]string
	Found  bool
}

// Request converts a match into the gate's input.
func (m Match) Request() NavigationRequest {
	return NavigationRequest{Path: m.Path, Protected: m.Found && m.Route.Protected}
}

// Screen returns the matched screen, or ScreenNotFound.
func (m Match) Screen() Screen {
	if !m.Found {
		return ScreenNotFound
	}
	return m.Route.Screen
}

// Resolve matches path against Table.
func Resolve(path string) Match {
	return ResolveIn(Table, path)
}

// ResolveIn matches path against routes; the first matching route wins.
func ResolveIn(routes []Route, path string) Match {
	path = Clean(path)
	for _, r := range routes {
		if params, ok := match(r, path); ok {
			return Match{Route: r, Path: path, Params: params, Found: true}
		}
	}
	return Match{Path: path}
}

// Clean normalises user-entered paths: leading slash, no trailing slash,
// no query string.
func Clean(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

func segments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func match(r Route, path string) (map[string]string, bool) {
	pat := segments(r.Pattern)
	got := segments(path)

	if len(got) < len(pat) || (r.Exact && len(got) != len(pat)) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range pat {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if got[i] == "" {
				return nil, false
			}
			if params == nil {
				params = map[string]string{}
			}
			params[name] = got[i]
			continue
		}
		if seg != got[i] {
			return nil, false
		}
	}
	return params, true
}

// Profile returns the profile path for a username.
func Profile(username string) string {
	return constants.ProfilePath + username
}
