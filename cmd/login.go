// ABOUTME: Login and logout commands for the movierama CLI
// ABOUTME: Exchanges credentials for an access token and stores or removes it

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/johnys190/movierama/internal/app"
	"github.com/johnys190/movierama/internal/client"
	"github.com/johnys190/movierama/internal/constants"
	"github.com/johnys190/movierama/internal/forms"
	"github.com/johnys190/movierama/internal/session"
	"github.com/johnys190/movierama/internal/tui/styles"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	loginUser     string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the access token",
	Long: `Log in with a username (or email) and password. Missing values are prompted for.

Exit codes:
  0 - Logged in
  1 - Rejected (invalid input or wrong username/password)
  2 - Error (connectivity, backend failure, credential store)`,
	Run: func(cmd *cobra.Command, args []string) {
		form := forms.SignIn{UsernameOrEmail: loginUser, Password: loginPassword}
		if form.UsernameOrEmail == "" || form.Password == "" {
			if err := promptSignIn(&form); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					os.Exit(1)
				}
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(2)
			}
		}
		exit(func(ctx context.Context, w io.Writer) int {
			return runLogin(ctx, w, form)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored access token",
	Run: func(cmd *cobra.Command, args []string) {
		exit(runLogout)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	loginCmd.Flags().StringVarP(&loginUser, "username", "u", "", "Username or email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
}

// promptSignIn asks for whatever the flags did not provide
func promptSignIn(form *forms.SignIn) error {
	var fields []huh.Field
	if form.UsernameOrEmail == "" {
		fields = append(fields, huh.NewInput().
			Title("Username or Email").
			Value(&form.UsernameOrEmail).
			Validate(forms.FieldValidator(forms.SignIn{}, "UsernameOrEmail")))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&form.Password).
		Validate(forms.FieldValidator(forms.SignIn{}, "Password")))

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(styles.FormTheme()).Run()
}

// runLogin signs in, stores the token and bootstraps the session
func runLogin(ctx context.Context, w io.Writer, form forms.SignIn) int {
	if err := forms.Validate(form); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	return withApp(ctx, w, func(a *app.App) int {
		resp, err := a.Client.SignIn(ctx, form.Request())
		switch {
		case client.IsUnauthorized(err):
			fmt.Fprintln(w, constants.LoginAuthorizationErrorMessage)
			return 1
		case err != nil:
			a.Logger.Warn("sign in failed", zap.Error(err))
			fmt.Fprintf(w, "%s (%v)\n", constants.LoginGeneralError, err)
			return 2
		}

		if err := a.Credentials.Set(ctx, constants.AccessToken, resp.AccessToken); err != nil {
			fmt.Fprintf(w, "Error: failed to store credential: %v\n", err)
			return 2
		}

		st := cliSession(a, w).Login(ctx)
		if !st.IsAuthenticated {
			fmt.Fprintln(w, "Error: the identity provider did not accept the new credential")
			return 2
		}
		return reportSession(w, st, tokenExpiry(ctx, a))
	})
}

// runLogout removes the credential and returns exit code
func runLogout(ctx context.Context, w io.Writer) int {
	return withApp(ctx, w, func(a *app.App) int {
		if err := cliSession(a, w).Logout(ctx, session.DefaultLogoutOptions()); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		return 0
	})
}
