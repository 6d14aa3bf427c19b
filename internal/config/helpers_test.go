// ABOUTME: Test helpers for config tests
// ABOUTME: Provides utilities for environment variable management

package config

import (
	"os"
	"strings"
	"testing"
)

// withCleanEnv clears the environment, points MOVIERAMA_CONFIG_DIR at a temp
// directory plus any extra vars, and returns a cleanup function that restores
// the original env. Use with t.Cleanup().
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(withCleanEnv(t, map[string]string{
//	        "MOVIERAMA_PAGE_SIZE": "10",
//	    }))
//	}
func withCleanEnv(t *testing.T, extra map[string]string) func() {
	t.Helper()

	originalEnv := os.Environ()
	os.Clearenv()

	os.Setenv("MOVIERAMA_CONFIG_DIR", t.TempDir())
	for key, value := range extra {
		os.Setenv(key, value)
	}

	return func() {
		os.Clearenv()
		for _, env := range originalEnv {
			if key, value, ok := strings.Cut(env, "="); ok {
				os.Setenv(key, value)
			}
		}
	}
}

// writeConfigFile writes config.yaml into MOVIERAMA_CONFIG_DIR.
func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := os.Getenv("MOVIERAMA_CONFIG_DIR") + "/config.yaml"
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}
