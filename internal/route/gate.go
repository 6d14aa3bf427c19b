// ABOUTME: Route authorization gate
// ABOUTME: Decides whether a navigation may render or must go to the login page

package route

import (
	"github.com/johnys190/movierama/internal/constants"
	"github.com/johnys190/movierama/internal/session"
)

// NavigationRequest is a path the user is trying to reach.
type NavigationRequest struct {
	Path      string
	Protected bool
}

// Decision is the gate's verdict.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Allow lets the request render.
func Allow() Decision { return Decision{Allowed: true} }

// Redirect sends the user elsewhere.
func Redirect(path string) Decision { return Decision{RedirectTo: path} }

// Authorize redirects protected requests to the login page unless the
// session is settled and authenticated. Unprotected requests always pass.
func Authorize(req NavigationRequest, st session.State) Decision {
	if req.Protected && (!st.IsAuthenticated || st.IsLoading) {
		return Redirect(constants.LoginPath)
	}
	return Allow()
}
