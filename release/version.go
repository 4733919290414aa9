package release

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// fallbackVersionFile is the application source file consulted when a release
// carries no VERSION file
const fallbackVersionFile = "app/scrappystats/version.py"

// versionMarkerRe matches the version assignment convention in version.py,
// e.g. __version__ = "4.1.2" or VERSION = '4.1.2'
var versionMarkerRe = regexp.MustCompile(`(?m)^\s*(?:__version__|VERSION)\s*=\s*["']([^"']+)["']`)

// ResolveVersion determines the authoritative version of an expanded release.
// A VERSION file's literal content wins; otherwise the version marker in the
// application source is parsed. If neither resolves, VersionUnknown is
// returned and deployment may proceed regardless.
func ResolveVersion(releaseDir string) string {
	versionFile := filepath.Join(releaseDir, VersionFileName)
	if content, err := os.ReadFile(versionFile); err == nil {
		if version := strings.TrimSpace(string(content)); version != "" {
			return version
		}
	}

	fallback := filepath.Join(releaseDir, filepath.FromSlash(fallbackVersionFile))
	if content, err := os.ReadFile(fallback); err == nil {
		if m := versionMarkerRe.FindSubmatch(content); m != nil {
			return string(m[1])
		}
	}

	slog.Warn("Could not resolve release version",
		"release_dir", releaseDir,
		"version_file", versionFile,
		"fallback_file", fallback)
	return VersionUnknown
}
