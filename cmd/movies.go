// ABOUTME: Movies command for the movierama CLI
// ABOUTME: Lists one page of movies, publicly sorted or for a single publisher

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/johnys190/movierama/internal/app"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/constants"
	"github.com/johnys190/movierama/internal/credentials"
	"github.com/johnys190/movierama/internal/tui/movielist"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	moviesSort string
	moviesPage int
	moviesUser string
)

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "List movies",
	Long: `List one page of movies. When logged in, your own reactions are shown too.

Exit codes:
  0 - Listed
  1 - Invalid flags
  2 - Error (connectivity, backend failure)`,
	Run: func(cmd *cobra.Command, args []string) {
		exit(runMovies)
	},
}

func init() {
	rootCmd.AddCommand(moviesCmd)
	moviesCmd.Flags().StringVar(&moviesSort, "sort", "newest", "Order: newest, likes or hates")
	moviesCmd.Flags().IntVar(&moviesPage, "page", 1, "Page number, starting at 1")
	moviesCmd.Flags().StringVar(&moviesUser, "user", "", "Only list movies published by this user")
}

// runMovies fetches and prints the page and returns exit code
func runMovies(ctx context.Context, w io.Writer) int {
	sort, err := client.ParseSort(moviesSort)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
	if moviesPage < 1 {
		fmt.Fprintf(w, "Error: page must be at least 1, got %d\n", moviesPage)
		return 1
	}

	return withApp(ctx, w, func(a *app.App) int {
		req := app.ListRequest{
			Username: strings.TrimSpace(moviesUser),
			Sort:     sort,
			Page:     moviesPage - 1,
			Size:     a.Config.PageSize,
		}

		token, _ := credentials.Keyed{Store: a.Credentials, Key: constants.AccessToken}.Token(ctx)
		listing, err := app.LoadListing(ctx, a.Client, a.Pages, req, token != "")
		if client.IsUnauthorized(err) && token != "" {
			a.Logger.Info("stored credential rejected, listing anonymously")
			listing, err = app.LoadListing(ctx, a.Client, a.Pages, req, false)
		}
		if err != nil {
			a.Logger.Warn("listing failed", zap.String("key", req.Key()), zap.Error(err))
			if client.IsServerError(err) {
				fmt.Fprintf(w, "Error: %s (%d)\n", constants.ServerErrorPageMessage, constants.ServerErrorPageCode)
			} else {
				fmt.Fprintf(w, "Error: %v\n", err)
			}
			return 2
		}

		if IsJSONOutput() {
			fmt.Fprintln(w, formatMoviesJSON(listing))
		} else {
			fmt.Fprintln(w, formatMoviesHuman(req, listing, time.Now()))
		}
		return 0
	})
}

// formatMoviesHuman renders the listing as a table with a summary line
func formatMoviesHuman(req app.ListRequest, l *app.Listing, now time.Time) string {
	var sb strings.Builder

	title := "Movies"
	if req.Username != "" {
		title = req.Username + "'s movies"
	}
	sb.WriteString(fmt.Sprintf("%s · Page %d of %d · %d movies", title, l.Page.Number+1, max(1, l.Page.TotalPages), l.Page.TotalElements))
	if req.Username == "" {
		sb.WriteString(" · sorted by " + req.Sort.String())
	}
	sb.WriteString("\n")

	if len(l.Page.Content) == 0 {
		sb.WriteString("No movies yet.")
		return sb.String()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "BY", "PUBLISHED", "LIKES", "HATES", "YOU")
	for _, m := range l.Page.Content {
		t.Row(
			strconv.FormatInt(m.ID, 10),
			m.Title,
			m.PublishedBy,
			movielist.FormatAge(m.PublicationDate, now),
			strconv.Itoa(m.Likes),
			strconv.Itoa(m.Hates),
			strings.ToLower(string(l.Opinions[m.ID])),
		)
	}
	sb.WriteString(t.String())
	return sb.String()
}

// formatMoviesJSON formats the listing as JSON
func formatMoviesJSON(l *app.Listing) string {
	data, _ := json.MarshalIndent(l, "", "  ")
	return string(data)
}
