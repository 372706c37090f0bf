// Package git reads the commit history, release tags and remote of a
// repository for changelog generation. It uses the go-git library and never
// shells out to the git CLI; every operation is read-only.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// NotRepositoryError is returned when no repository is found at or above a path.
type NotRepositoryError struct {
	Path string
}

func (e *NotRepositoryError) Error() string {
	return fmt.Sprintf("not a git repository (or any parent): %s", e.Path)
}

// IsNotRepository returns true if the error is a NotRepositoryError.
func IsNotRepository(err error) bool {
	var nre *NotRepositoryError
	return errors.As(err, &nre)
}

// RawCommit is a commit as read from the history, before message parsing.
type RawCommit struct {
	Hash    string
	Message string
	Author  string
	Date    time.Time
}

// Reader reads history from one repository.
type Reader struct {
	repo *git.Repository
	root string
}

// Open opens the repository at path or any parent directory.
// An empty path means the current working directory.
func Open(path string) (*Reader, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, &NotRepositoryError{Path: path}
		}
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	r := &Reader{repo: repo}
	if wt, err := repo.Worktree(); err == nil {
		r.root = wt.Filesystem.Root()
	}

	logDebug("[git] repository opened successfully (root %q)", r.root)
	return r, nil
}

// Root returns the worktree root, or "" for bare repositories.
func (r *Reader) Root() string {
	return r.root
}

// Commits returns the commits reachable from to but not from from, newest
// first. An empty to means HEAD; an empty from means the whole history.
func (r *Reader) Commits(ctx context.Context, from, to string) ([]RawCommit, error) {
	if to == "" {
		to = "HEAD"
	}

	toHash, err := r.resolve(to)
	if err != nil {
		return nil, err
	}

	excluded := make(map[plumbing.Hash]bool)
	if from != "" {
		fromHash, err := r.resolve(from)
		if err != nil {
			return nil, err
		}
		if err := r.walk(ctx, *fromHash, func(c *object.Commit) {
			excluded[c.Hash] = true
		}); err != nil {
			return nil, fmt.Errorf("walking history from %s: %w", from, err)
		}
	}

	var commits []RawCommit
	err = r.walk(ctx, *toHash, func(c *object.Commit) {
		if excluded[c.Hash] {
			return
		}
		commits = append(commits, RawCommit{
			Hash:    c.Hash.String(),
			Message: c.Message,
			Author:  c.Author.Name,
			Date:    c.Author.When,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", to, err)
	}

	logDebug("[git] Commits(%q, %q): %d commits", from, to, len(commits))
	return commits, nil
}

func (r *Reader) resolve(rev string) (*plumbing.Hash, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	return hash, nil
}

func (r *Reader) walk(ctx context.Context, from plumbing.Hash, fn func(*object.Commit)) error {
	iter, err := r.repo.Log(&git.LogOptions{
		From:  from,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	return iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(c)
		return nil
	})
}
