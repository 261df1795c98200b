// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"

	"github.com/emlkit/eml2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_BROWSER_BIN") == "" {
		return format("set ROD_BROWSER_BIN to a pre-installed Chrome (the sandbox is disabled automatically)")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		return format("Chromium is downloaded on first run; set ROD_BROWSER_BIN to use an existing Chrome")
	}
	return ""
}

// ForRenderTimeout returns a hint about slow renders of large messages.
func ForRenderTimeout() string {
	return format("emails with many inline images render slowly; raise render.timeoutSeconds in the config")
}

// ForConfigNotFound returns a hint for config file not found errors.
func ForConfigNotFound() string {
	return format("pass an existing YAML file with --config /path/to/file.yaml")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
