// Package release defines the on-disk release model: versioned archives,
// expanded release directories and the current symlink.
package release

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// ArchiveExtension is the extension of release archives
	ArchiveExtension = ".zip"

	// VersionFileName is the authoritative version marker inside a release
	VersionFileName = "VERSION"

	// VersionUnknown is reported when no version marker can be resolved
	VersionUnknown = "unknown"
)

// MandatoryArtifacts is the fixed set of paths a release directory must
// contain to be deployable. Exact names are a convention, not configurable.
var MandatoryArtifacts = []string{
	"docker-compose.yml",
	"Dockerfile",
	"supervisord.conf",
	"crontab",
	"app",
}

// VersionFromTag derives the version string from a git tag by stripping a
// single leading "v". One tag maps to exactly one version string.
func VersionFromTag(tag string) string {
	return strings.TrimPrefix(tag, "v")
}

// ArchiveName returns the deterministic archive file name for a version
func ArchiveName(appName, version string) string {
	return fmt.Sprintf("%s_v%s%s", appName, version, ArchiveExtension)
}

// NameFromArchive derives the release directory name from an archive path
func NameFromArchive(archivePath string) string {
	return strings.TrimSuffix(filepath.Base(archivePath), ArchiveExtension)
}

// FindNewestArchive returns the most recently modified archive matching the
// naming pattern for appName in dir
func FindNewestArchive(dir, appName string) (string, error) {
	pattern := filepath.Join(dir, fmt.Sprintf("%s_v*%s", appName, ArchiveExtension))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("listing archives in %s: %w", dir, err)
	}

	var newest string
	var newestMtime time.Time
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		if newest == "" || info.ModTime().After(newestMtime) {
			newest = match
			newestMtime = info.ModTime()
		}
	}

	if newest == "" {
		return "", fmt.Errorf("no %s_v*%s archive found in %s", appName, ArchiveExtension, dir)
	}
	return newest, nil
}

// Validate checks that releaseDir contains every mandatory artifact. It
// returns an error naming the first missing artifact.
func Validate(releaseDir string) error {
	for _, artifact := range MandatoryArtifacts {
		path := filepath.Join(releaseDir, artifact)
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("release is missing mandatory artifact %q (expected at %s)", artifact, path)
		}
		// The application source directory must actually be a directory
		if artifact == "app" && !info.IsDir() {
			return fmt.Errorf("release artifact %q is not a directory", artifact)
		}
	}
	return nil
}

// Release describes one expanded release directory
type Release struct {
	Name     string
	Path     string
	Version  string
	Current  bool
	Modified time.Time
}

// List returns all release directories under releasesDir, newest first.
// currentTarget marks which entry the current symlink points at.
func List(releasesDir, currentTarget string) ([]Release, error) {
	entries, err := os.ReadDir(releasesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading releases directory %s: %w", releasesDir, err)
	}

	var releases []Release
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(releasesDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}
		releases = append(releases, Release{
			Name:     entry.Name(),
			Path:     path,
			Version:  ResolveVersion(path),
			Current:  path == currentTarget,
			Modified: info.ModTime(),
		})
	}

	sort.Slice(releases, func(i, j int) bool {
		return releases[i].Modified.After(releases[j].Modified)
	})
	return releases, nil
}
