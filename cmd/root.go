// ABOUTME: Root command for the movierama CLI
// ABOUTME: Handles global flags, configuration loading and launching the TUI

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/johnys190/movierama/internal/app"
	"github.com/johnys190/movierama/internal/config"
	"github.com/johnys190/movierama/internal/constants"
	"github.com/johnys190/movierama/internal/notify"
	"github.com/johnys190/movierama/internal/route"
	"github.com/johnys190/movierama/internal/session"
	"github.com/johnys190/movierama/internal/tui"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	authURL    string
	configFile string
	jsonOutput bool
	verbose    bool
)

// rootCmd is the base command; without a subcommand it starts the TUI
var rootCmd = &cobra.Command{
	Use:   "movierama [path]",
	Short: "Terminal client for Movierama",
	Long: `movierama is a terminal client for the Movierama movie recommendation service.

Run without a subcommand to open the interactive browser, optionally at a path
such as /users/alice or /movies/new. Subcommands cover scripting use.

Environment Variables:
  MOVIERAMA_API_URL           Backend API URL
  MOVIERAMA_AUTH_URL          Identity provider URL
  MOVIERAMA_CONFIG_DIR        Directory holding config.yaml, credentials and debug.log
  MOVIERAMA_CREDENTIAL_STORE  file (default) or redis
  LOG_LEVEL, LOG_FORMAT       Logging level and format`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		start := constants.RootPath
		if len(args) == 1 {
			start = route.Clean(args[0])
		}
		return runTUI(ctx, start)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides MOVIERAMA_API_URL)")
	rootCmd.PersistentFlags().StringVar(&authURL, "auth-url", "", "Identity provider URL (overrides MOVIERAMA_AUTH_URL)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: <config dir>/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level to stderr")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig layers the global flags over file and environment settings
func loadConfig() (*config.Config, error) {
	return config.Load(config.Overrides{
		ConfigFile: configFile,
		APIURL:     apiURL,
		AuthURL:    authURL,
	})
}

// openApp loads configuration and starts the dependency graph. CLI commands
// log to stderr; the TUI logs to the debug log file.
func openApp(ctx context.Context, forTUI bool) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, app.Options{Verbose: verbose, Stderr: !forTUI})
}

// withApp runs fn against a started App and reports setup failures on w
// with exit code 2.
func withApp(ctx context.Context, w io.Writer, fn func(a *app.App) int) int {
	a, err := openApp(ctx, false)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer a.Close(context.Background())
	return fn(a)
}

// cliSession builds a session controller that prints notifications to w.
// Commands never change screens, so navigation is dropped.
func cliSession(a *app.App, w io.Writer) *session.Controller {
	return a.NewSession(&notify.WriterSink{W: w}, session.NavigatorFunc(func(string) {}))
}

func runTUI(ctx context.Context, start string) error {
	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())
	return tui.Run(ctx, a, start)
}

// exit runs a command body and exits with its code when non-zero
func exit(run func(ctx context.Context, w io.Writer) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Stdout)
	cancel()
	if code != 0 {
		os.Exit(code)
	}
}
