// Package archive packs and unpacks release archives.
package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mholt/archiver/v3"
)

func newZip() *archiver.Zip {
	return &archiver.Zip{
		OverwriteExisting:      true,
		MkdirAll:               true,
		ImplicitTopLevelFolder: false,
	}
}

// Pack compresses the contents of srcDir into a zip archive at dest. The
// archive root holds the tree contents directly, without a wrapping
// directory, so expansion yields the release layout as committed.
func Pack(srcDir, dest string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("reading export directory %s: %w", srcDir, err)
	}

	sources := make([]string, 0, len(entries))
	for _, entry := range entries {
		sources = append(sources, filepath.Join(srcDir, entry.Name()))
	}

	if err := newZip().Archive(sources, dest); err != nil {
		return fmt.Errorf("creating archive %s: %w", dest, err)
	}
	return nil
}

// Unpack expands a zip archive into destDir
func Unpack(src, destDir string) error {
	if err := newZip().Unarchive(src, destDir); err != nil {
		return fmt.Errorf("expanding archive %s into %s: %w", src, destDir, err)
	}
	return nil
}
