// ABOUTME: Whoami command for the movierama CLI
// ABOUTME: Bootstraps the session from the stored credential and reports who is logged in

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/johnys190/movierama/internal/app"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/constants"
	"github.com/johnys190/movierama/internal/credentials"
	"github.com/johnys190/movierama/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Long: `Resolve the stored credential with the identity provider and print the user.

Exit codes:
  0 - Logged in
  1 - Not logged in (no credential, or it was rejected)
  2 - Error (identity provider unreachable or failing)`,
	Run: func(cmd *cobra.Command, args []string) {
		exit(runWhoami)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// whoamiResult is the JSON shape of the whoami output
type whoamiResult struct {
	Authenticated bool       `json:"authenticated"`
	Username      string     `json:"username,omitempty"`
	Email         string     `json:"email,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// runWhoami executes the lookup and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	return withApp(ctx, w, func(a *app.App) int {
		ctrl := cliSession(a, w)

		// Same flow as Bootstrap, but the outcome is kept so transient
		// failures can be told apart from an anonymous session
		t := ctrl.BeginBootstrap()
		outcome := ctrl.Fetch(ctx, t)
		ctrl.Complete(outcome)

		if outcome.Err != nil && !client.IsUnauthorized(outcome.Err) {
			fmt.Fprintf(w, "Error: %v\n", outcome.Err)
			return 2
		}
		return reportSession(w, ctrl.State(), tokenExpiry(ctx, a))
	})
}

// tokenExpiry reads the exp claim of the stored token; zero when there is
// none or the token is not a JWT
func tokenExpiry(ctx context.Context, a *app.App) time.Time {
	token, err := credentials.Keyed{Store: a.Credentials, Key: constants.AccessToken}.Token(ctx)
	if err != nil || token == "" {
		return time.Time{}
	}
	claims, err := credentials.ParseClaims(token)
	if err != nil {
		a.Logger.Debug("stored credential is not a JWT", zap.Error(err))
		return time.Time{}
	}
	return claims.ExpiresAt
}

// reportSession prints st and maps it to the exit code
func reportSession(w io.Writer, st session.State, expires time.Time) int {
	res := whoamiResult{Authenticated: st.IsAuthenticated}
	if st.CurrentUser != nil {
		res.Username = st.CurrentUser.Username
		res.Email = st.CurrentUser.Email
	}
	if res.Authenticated && !expires.IsZero() {
		res.ExpiresAt = &expires
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(res, "", "  ")
		fmt.Fprintln(w, string(data))
	} else if res.Authenticated {
		fmt.Fprintf(w, "Logged in as %s", res.Username)
		if res.Email != "" {
			fmt.Fprintf(w, " <%s>", res.Email)
		}
		fmt.Fprintln(w)
		if res.ExpiresAt != nil {
			fmt.Fprintf(w, "Token expires %s\n", res.ExpiresAt.Local().Format(time.RFC1123))
		}
	} else {
		fmt.Fprintln(w, "Not logged in.")
	}

	if !res.Authenticated {
		return 1
	}
	return 0
}
