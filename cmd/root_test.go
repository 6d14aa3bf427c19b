// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies environment variable and flag configuration

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/johnys190/movierama/internal/app"
	"github.com/johnys190/movierama/internal/constants"
	"github.com/johnys190/movierama/internal/e2e"
)

// setup points the global flags at a fresh fake backend and config dir
func setup(t *testing.T) *e2e.FakeAPI {
	t.Helper()
	api := e2e.Start(t)
	t.Setenv("MOVIERAMA_CONFIG_DIR", t.TempDir())
	t.Setenv("MOVIERAMA_CREDENTIAL_STORE", "file")
	apiURL, authURL = api.URL, api.URL
	t.Cleanup(func() {
		apiURL, authURL, configFile = "", "", ""
		jsonOutput = false
	})
	return api
}

func TestLoadConfig_Default(t *testing.T) {
	t.Setenv("MOVIERAMA_CONFIG_DIR", t.TempDir())
	os.Unsetenv("MOVIERAMA_API_URL")
	apiURL = "" // Reset flag

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != constants.APIBaseURL {
		t.Errorf("expected default URL %s, got %s", constants.APIBaseURL, cfg.APIURL)
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("MOVIERAMA_CONFIG_DIR", t.TempDir())
	t.Setenv("MOVIERAMA_API_URL", "http://backend.example.com")
	apiURL = "" // Reset flag

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://backend.example.com" {
		t.Errorf("expected http://backend.example.com, got %s", cfg.APIURL)
	}
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	t.Setenv("MOVIERAMA_CONFIG_DIR", t.TempDir())
	t.Setenv("MOVIERAMA_API_URL", "http://backend.example.com")
	apiURL = "http://flag-override.example.com"
	defer func() { apiURL = "" }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", cfg.APIURL)
	}
}

func TestLoadConfig_ExplicitFileMissing(t *testing.T) {
	t.Setenv("MOVIERAMA_CONFIG_DIR", t.TempDir())
	configFile = filepath.Join(t.TempDir(), "missing.yaml")
	defer func() { configFile = "" }()

	if _, err := loadConfig(); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestWithApp_InvalidConfig(t *testing.T) {
	t.Setenv("MOVIERAMA_CONFIG_DIR", t.TempDir())
	t.Setenv("MOVIERAMA_CREDENTIAL_STORE", "floppy")

	var buf bytes.Buffer
	called := false
	code := withApp(context.Background(), &buf, func(*app.App) int { called = true; return 0 })
	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if called {
		t.Error("expected body not to run")
	}
	if !strings.Contains(buf.String(), "invalid credential store") {
		t.Errorf("expected config error, got %q", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	want := map[string]bool{"whoami": false, "login": false, "logout": false, "movies": false, "add": false, "vote": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %s subcommand", name)
		}
	}
}
