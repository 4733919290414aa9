package release

import (
	"fmt"
	"log/slog"
	"os"
)

// CurrentTarget returns the release directory the current symlink points at.
// An empty string with no error means no deploy has succeeded yet.
func CurrentTarget(link string) (string, error) {
	target, err := os.Readlink(link)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading current symlink %s: %w", link, err)
	}
	return target, nil
}

// SwitchCurrent atomically repoints the current symlink at target. The
// replacement is rename-based so concurrent readers always observe either
// the previous target or the new one, never a missing or dangling link.
func SwitchCurrent(link, target string) error {
	tmp := link + ".tmp"

	// A stale temp link from an interrupted switch must not block us
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale symlink %s: %w", tmp, err)
	}

	if err := os.Symlink(target, tmp); err != nil {
		return fmt.Errorf("creating symlink %s -> %s: %w", tmp, target, err)
	}

	if err := os.Rename(tmp, link); err != nil {
		// Best effort, the temp link is harmless but shouldn't linger
		_ = os.Remove(tmp)
		return fmt.Errorf("switching current symlink to %s: %w", target, err)
	}

	slog.Info("Current symlink switched", "link", link, "target", target)
	return nil
}
