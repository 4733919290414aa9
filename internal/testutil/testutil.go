// Package testutil provides utility functions for shipper tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type RepoFile struct {
	Path    string
	Content string
}

var testSignature = &object.Signature{
	Name:  "John Doe",
	Email: "john@doe.org",
	When:  time.Now(),
}

// InitGitRepo initializes a git repository at path with an initial commit
// containing the given files.
func InitGitRepo(path string, files []RepoFile) (*git.Repository, error) {
	repo, err := git.PlainInit(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize git repository: %w", err)
	}

	if _, err := CommitFiles(repo, "Initial commit", files); err != nil {
		return nil, err
	}

	return repo, nil
}

// CommitFiles writes the given files into the repository worktree, stages them
// and commits them. It returns the hash of the created commit.
func CommitFiles(repo *git.Repository, message string, files []RepoFile) (plumbing.Hash, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to get worktree: %w", err)
	}

	if err := AddRepoFiles(worktree, files); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to add files to git repository: %w", err)
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author:            testSignature,
		AllowEmptyCommits: true,
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to commit changes: %w", err)
	}

	return hash, nil
}

func AddRepoFiles(repoWorktree *git.Worktree, files []RepoFile) error {
	repoDir := repoWorktree.Filesystem.Root()

	for _, file := range files {
		filePath := filepath.Join(repoDir, file.Path)
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", file.Path, err)
		}
		if err := os.WriteFile(filePath, []byte(file.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", file.Path, err)
		}
		if _, err := repoWorktree.Add(file.Path); err != nil {
			return fmt.Errorf("failed to add file %s to git: %w", file.Path, err)
		}
	}

	return nil
}

// TagHead creates a lightweight tag pointing at HEAD.
func TagHead(repo *git.Repository, name string) error {
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	if _, err := repo.CreateTag(name, head.Hash(), nil); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", name, err)
	}
	return nil
}

// TagHeadAnnotated creates an annotated tag pointing at HEAD.
func TagHeadAnnotated(repo *git.Repository, name, message string) error {
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}
	if _, err := repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  testSignature,
		Message: message,
	}); err != nil {
		return fmt.Errorf("failed to create annotated tag %s: %w", name, err)
	}
	return nil
}

// ReleaseFiles returns a file set containing every artifact a deployable
// release must carry, suitable for InitGitRepo or WriteReleaseDir.
func ReleaseFiles() []RepoFile {
	return []RepoFile{
		{Path: "docker-compose.yml", Content: "services:\n  app:\n    image: scrappystats\n"},
		{Path: "Dockerfile", Content: "FROM python:3.12-slim\n"},
		{Path: "supervisord.conf", Content: "[supervisord]\nnodaemon=true\n"},
		{Path: "crontab", Content: "0 * * * * true\n"},
		{Path: "app/scrappystats/version.py", Content: "__version__ = \"0.0.0\"\n"},
	}
}

// WriteReleaseDir materializes the given files under dir without git.
func WriteReleaseDir(dir string, files []RepoFile) error {
	for _, file := range files {
		filePath := filepath.Join(dir, file.Path)
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", file.Path, err)
		}
		if err := os.WriteFile(filePath, []byte(file.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", file.Path, err)
		}
	}
	return nil
}

// Trim trims trailing spaces left by tablewriter on each line to make the lines length-aligned
func Trim(input string) string {
	lines := strings.Split(input, "\n")

	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \n")
	}

	return strings.Join(lines, "\n")
}
