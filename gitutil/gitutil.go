// Package gitutil wraps the go-git operations the release builder needs.
package gitutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type GitService struct{}

func NewGitService() *GitService {
	return &GitService{}
}

// ExactTag returns the tag pointing exactly at HEAD. It is an error for HEAD
// to be untagged or to carry more than one tag; an ambiguous build input is
// a hard stop, not a warning.
func (s *GitService) ExactTag(workingDir string) (string, error) {
	repo, err := git.PlainOpen(workingDir)
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	headHash := head.Hash()

	tags, err := repo.Tags()
	if err != nil {
		return "", fmt.Errorf("failed to list tags: %w", err)
	}

	var matches []string
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()

		// Annotated tags point at a tag object, resolve it to its commit
		if tagObj, err := repo.TagObject(hash); err == nil {
			commit, err := tagObj.Commit()
			if err != nil {
				return nil
			}
			hash = commit.Hash
		}

		if hash == headHash {
			matches = append(matches, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to iterate tags: %w", err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("HEAD is not tagged; releases are built from tagged commits only")
	case 1:
		slog.Debug("Resolved exact tag", "tag", matches[0], "commit", headHash.String())
		return matches[0], nil
	default:
		return "", fmt.Errorf("HEAD carries multiple tags (%s); cannot determine release version",
			strings.Join(matches, ", "))
	}
}

// ExportTree writes the committed tree of HEAD to destDir. The worktree is
// never consulted, so local modifications cannot leak into an export.
func (s *GitService) ExportTree(workingDir, destDir string) error {
	repo, err := git.PlainOpen(workingDir)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("failed to get commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return fmt.Errorf("failed to get tree: %w", err)
	}

	err = tree.Files().ForEach(func(f *object.File) error {
		return exportFile(f, destDir)
	})
	if err != nil {
		return fmt.Errorf("failed to export tree: %w", err)
	}

	slog.Debug("Exported committed tree", "commit", head.Hash().String(), "dest", destDir)
	return nil
}

func exportFile(f *object.File, destDir string) error {
	target := filepath.Join(destDir, filepath.FromSlash(f.Name))

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", f.Name, err)
	}

	if f.Mode == filemode.Symlink {
		linkTarget, err := f.Contents()
		if err != nil {
			return fmt.Errorf("reading symlink %s: %w", f.Name, err)
		}
		return os.Symlink(linkTarget, target)
	}

	mode, err := f.Mode.ToOSFileMode()
	if err != nil {
		mode = 0o644
	}

	reader, err := f.Reader()
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			slog.Debug("Failed to close tree file reader", "file", f.Name, "error", closeErr)
		}
	}()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating %s: %w", f.Name, err)
	}

	if _, err := io.Copy(out, reader); err != nil {
		_ = out.Close()
		return fmt.Errorf("writing %s: %w", f.Name, err)
	}
	return out.Close()
}

// GetCommitInfo returns commit information for HEAD
func (s *GitService) GetCommitInfo(workingDir string) (*CommitInfo, error) {
	repo, err := git.PlainOpen(workingDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	ref, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get commit: %w", err)
	}

	return &CommitInfo{
		Hash:    commit.Hash.String(),
		Message: commit.Message,
		Author:  commit.Author.Name,
		Date:    commit.Author.When,
	}, nil
}

type CommitInfo struct {
	Hash    string
	Message string
	Author  string
	Date    time.Time
}
