// ABOUTME: Session state, events and the pure reducer that moves between them
// ABOUTME: Every change to who is logged in goes through Reduce

package session

import "github.com/johnys190/movierama/internal/client"

// State is the client's view of who is logged in.
//
// IsAuthenticated is true exactly when CurrentUser is non-nil. While
// IsLoading is set, neither field should be trusted to have settled.
type State struct {
	CurrentUser     *client.User
	IsAuthenticated bool
	IsLoading       bool
}

// Username returns the current user's name, or "" when anonymous.
func (s State) Username() string {
	if s.CurrentUser == nil {
		return ""
	}
	return s.CurrentUser.Username
}

// Phase is the coarse session lifecycle position.
type Phase int

const (
	Bootstrapping Phase = iota
	Anonymous
	Authenticated
)

func (p Phase) String() string {
	switch p {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "bootstrapping"
	}
}

// Event is an input to Reduce.
type Event interface {
	event()
}

// BootstrapStarted marks a current-user lookup as outstanding.
type BootstrapStarted struct{}

// UserLoaded carries the user returned by the identity provider.
type UserLoaded struct {
	User *client.User
}

// UserLoadFailed records that the lookup failed for any reason.
type UserLoadFailed struct {
	Err error
}

// SignedOut clears the session.
type SignedOut struct{}

func (BootstrapStarted) event() {}
func (UserLoaded) event()       {}
func (UserLoadFailed) event()   {}
func (SignedOut) event()        {}

// Reduce returns the state that follows s after e. It has no side effects.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case BootstrapStarted:
		// The previous user stays visible while the lookup runs
		s.IsLoading = true
		return s
	case UserLoaded:
		if e.User == nil {
			return State{}
		}
		return State{CurrentUser: e.User, IsAuthenticated: true}
	case UserLoadFailed, SignedOut:
		return State{}
	}
	return s
}
