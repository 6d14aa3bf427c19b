// ABOUTME: Vote command for the movierama CLI
// ABOUTME: Likes or hates a movie, toggling off a repeated reaction

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/johnys190/movierama/internal/app"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/constants"
	"github.com/spf13/cobra"
)

// maxVoteScanPages bounds the search for a movie by id
const maxVoteScanPages = 50

var voteCmd = &cobra.Command{
	Use:   "vote <movie-id> <like|hate>",
	Short: "Like or hate a movie",
	Long: `Like or hate a movie. Repeating your current reaction clears it;
giving the other reaction switches it. You cannot vote on your own movies.

Exit codes:
  0 - Vote applied
  1 - Rejected (not logged in, own movie, unknown movie, invalid input)
  2 - Error (connectivity, backend failure)`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		exit(func(ctx context.Context, w io.Writer) int {
			return runVote(ctx, w, args[0], args[1])
		})
	},
}

func init() {
	rootCmd.AddCommand(voteCmd)
}

// runVote applies the reaction and returns exit code
func runVote(ctx context.Context, w io.Writer, idArg, reactionArg string) int {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(w, "Error: invalid movie id %q\n", idArg)
		return 1
	}
	reaction, err := client.ParseReaction(reactionArg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	return withApp(ctx, w, func(a *app.App) int {
		st := cliSession(a, w).Bootstrap(ctx)
		if !st.IsAuthenticated {
			fmt.Fprintln(w, constants.VoteRequiresLogin)
			return 1
		}

		movie, current, err := findMovie(ctx, a, id)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		if movie == nil {
			fmt.Fprintf(w, "Movie %d not found.\n", id)
			return 1
		}

		action, err := a.Client.Vote(ctx, *movie, st.CurrentUser, current, reaction)
		var own *client.OwnMovieError
		switch {
		case errors.As(err, &own):
			fmt.Fprintln(w, own.Error())
			return 1
		case err != nil:
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}

		fmt.Fprintf(w, "%s: %s\n", movie.Title, describeVote(action, reaction))
		return 0
	})
}

// findMovie scans the public list for id and returns it with the caller's
// current reaction
func findMovie(ctx context.Context, a *app.App, id int64) (*client.Movie, client.Reaction, error) {
	for page := 0; page < maxVoteScanPages; page++ {
		l, err := app.LoadListing(ctx, a.Client, nil, app.ListRequest{Page: page, Size: a.Config.PageSize}, true)
		if err != nil {
			return nil, client.ReactionNone, err
		}
		for _, m := range l.Page.Content {
			if m.ID == id {
				return &m, l.Opinions[id], nil
			}
		}
		if l.Page.Last || len(l.Page.Content) == 0 {
			break
		}
	}
	return nil, client.ReactionNone, nil
}

func describeVote(action client.VoteAction, reaction client.Reaction) string {
	switch action {
	case client.VoteClear:
		return "reaction cleared"
	case client.VoteSwitch:
		return "switched to " + strings.ToLower(string(reaction))
	default:
		return "recorded " + strings.ToLower(string(reaction))
	}
}
