// Package gitstore commits editor mutations to the content repository.
// Commit failures are logged, never surfaced to the editor request: the
// files on disk are the source of truth, git is an audit trail.
package gitstore

import (
	"fmt"
	"log/slog"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/inkwell/inkwell/internal/logfields"
)

// Committer stages and commits changes in the content worktree.
type Committer struct {
	repo   *git.Repository
	author object.Signature
	logger *slog.Logger
}

// Open opens the repository containing dir. Returns (nil, nil) when dir is
// not inside a git worktree, which callers treat as auto-commit disabled.
func Open(dir, authorName, authorEmail string) (*Committer, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if err == git.ErrRepositoryNotExists {
			return nil, nil
		}
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	if authorName == "" {
		authorName = "inkwell"
	}
	return &Committer{
		repo:   repo,
		author: object.Signature{Name: authorName, Email: authorEmail},
		logger: slog.Default(),
	}, nil
}

// Commit stages everything under the worktree and commits with the given
// message. A clean worktree is a no-op.
func (c *Committer) Commit(message string) error {
	if c == nil {
		return nil
	}

	w, err := c.repo.Worktree()
	if err != nil {
		return fmt.Errorf("get git worktree: %w", err)
	}
	if err := w.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("stage changes: %w", err)
	}

	status, err := w.Status()
	if err != nil {
		return fmt.Errorf("get git status: %w", err)
	}
	if status.IsClean() {
		return nil
	}

	author := c.author
	author.When = time.Now()
	hash, err := w.Commit(message, &git.CommitOptions{Author: &author})
	if err != nil {
		return fmt.Errorf("commit changes: %w", err)
	}
	c.logger.Debug("Committed content change",
		slog.String("hash", hash.String()[:8]), slog.String("message", message))
	return nil
}

// CommitQuietly commits and logs failures instead of returning them.
func (c *Committer) CommitQuietly(message string) {
	if c == nil {
		return
	}
	if err := c.Commit(message); err != nil {
		c.logger.Warn("Auto-commit failed", logfields.Error(err))
	}
}
