// ABOUTME: Add command for the movierama CLI
// ABOUTME: Submits a new movie on behalf of the logged-in user

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/johnys190/movierama/internal/app"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/constants"
	"github.com/johnys190/movierama/internal/forms"
	"github.com/spf13/cobra"
)

var (
	addTitle       string
	addDescription string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Share a new movie",
	Long: fmt.Sprintf(`Share a new movie. Requires a login.

Title is limited to %d characters and description to %d.

Exit codes:
  0 - Movie created
  1 - Rejected (not logged in, invalid input)
  2 - Error (connectivity, backend failure)`, constants.MovieTitleMaxLength, constants.MovieDescriptionMaxLength),
	Run: func(cmd *cobra.Command, args []string) {
		exit(runAdd)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Movie title")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Movie description")
}

// runAdd validates and submits the movie and returns exit code
func runAdd(ctx context.Context, w io.Writer) int {
	form := forms.NewMovie{Title: addTitle, Description: addDescription}
	if err := forms.Validate(form); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	return withApp(ctx, w, func(a *app.App) int {
		// The protected route check: only a settled, authenticated session
		// may submit
		st := cliSession(a, w).Bootstrap(ctx)
		if !st.IsAuthenticated {
			fmt.Fprintln(w, "Please login to share a movie.")
			return 1
		}

		if _, err := a.Client.AddMovie(ctx, form.Request()); err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
				fmt.Fprintf(w, "Rejected: %v\n", err)
				return 1
			}
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}

		fmt.Fprintln(w, constants.MovieCreated)
		return 0
	})
}
