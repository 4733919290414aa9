// Package builder produces versioned release archives from tagged commits.
package builder

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/scrappystats/shipper/archive"
	"github.com/scrappystats/shipper/config"
	"github.com/scrappystats/shipper/gitutil"
	"github.com/scrappystats/shipper/release"
	"github.com/scrappystats/shipper/transfer"
)

// Service builds release archives
type Service interface {
	Build(workingDir string, upload bool) (*Result, error)
}

// Result describes a completed build
type Result struct {
	Tag         string
	Version     string
	ArchivePath string
	Uploaded    bool
}

type Builder struct {
	config   *config.Config
	git      *gitutil.GitService
	uploader transfer.Uploader
}

var _ Service = (*Builder)(nil)

func NewBuilder(cfg *config.Config, git *gitutil.GitService, uploader transfer.Uploader) *Builder {
	return &Builder{
		config:   cfg,
		git:      git,
		uploader: uploader,
	}
}

// Build packages the exactly-tagged commit at workingDir's HEAD into a
// versioned archive under the build output directory. When upload is set the
// archive is additionally copied to the configured deploy host; an upload
// failure is a build failure, but the local archive stays behind either way.
func (b *Builder) Build(workingDir string, upload bool) (*Result, error) {
	tag, err := b.git.ExactTag(workingDir)
	if err != nil {
		return nil, err
	}

	version := release.VersionFromTag(tag)
	slog.Info("Building release", "tag", tag, "version", version)

	// Export the committed tree, never the working directory, so local
	// modifications cannot contaminate the archive
	exportDir, err := os.MkdirTemp("", "shipper-export-")
	if err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	defer func() {
		if removeErr := os.RemoveAll(exportDir); removeErr != nil {
			slog.Debug("Failed to remove export directory", "dir", exportDir, "error", removeErr)
		}
	}()

	if err := b.git.ExportTree(workingDir, exportDir); err != nil {
		return nil, err
	}

	// The derived version is authoritative, it overwrites any VERSION file
	// that happened to be committed before the tag was applied
	versionFile := filepath.Join(exportDir, release.VersionFileName)
	if err := os.WriteFile(versionFile, []byte(version+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", release.VersionFileName, err)
	}

	buildDir := b.config.BuildDir
	if !filepath.IsAbs(buildDir) {
		buildDir = filepath.Join(workingDir, buildDir)
	}

	// Clear the build output directory so stale archives never linger
	if err := os.RemoveAll(buildDir); err != nil {
		return nil, fmt.Errorf("failed to clear build directory %s: %w", buildDir, err)
	}
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create build directory %s: %w", buildDir, err)
	}

	archivePath := filepath.Join(buildDir, release.ArchiveName(b.config.AppName, version))
	if err := archive.Pack(exportDir, archivePath); err != nil {
		return nil, err
	}

	slog.Info("Release archive created", "archive", archivePath)

	result := &Result{
		Tag:         tag,
		Version:     version,
		ArchivePath: archivePath,
	}

	if upload {
		if err := b.uploader.Upload(archivePath); err != nil {
			return result, fmt.Errorf("archive built at %s but upload failed: %w", archivePath, err)
		}
		result.Uploaded = true
	}

	return result, nil
}
