// Package utils provides utility functions for shipper CLI commands.
package utils

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/scrappystats/shipper/cmd/output"
	"github.com/scrappystats/shipper/compose"
	"github.com/scrappystats/shipper/config"
)

// HandleCommandError provides consistent error handling for CLI commands
func HandleCommandError(operation string, err error, context ...any) {
	slog.Error("Command failed", append([]any{"operation", operation, "error", err}, context...)...)
	fmt.Fprint(os.Stderr, output.PrintMessage(output.Error, "Error: %s failed: %v", operation, err))
	os.Exit(1)
}

// CreateCurrentComposeProject creates a ComposeProject rooted at the current
// release. Commands that observe the running service (status, logs) use this.
func CreateCurrentComposeProject(cfg *config.Config) (*compose.ComposeProject, error) {
	currentDir := cfg.CurrentLink

	composeFile := filepath.Join(currentDir, cfg.ComposeFile)
	if _, err := os.Stat(composeFile); err != nil {
		return nil, fmt.Errorf(
			"no deployed release found at %s (missing %s); run 'shipper deploy' first",
			currentDir, cfg.ComposeFile)
	}

	return compose.NewComposeProject(currentDir, cfg), nil
}
