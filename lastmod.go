package docsite

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
)

// GitDates resolves the time of the last commit that touched a file. Files
// outside a repository, or never committed, fall back to their mtime.
type GitDates struct {
	mu   sync.Mutex
	repo *git.Repository
	root string
	log  *slog.Logger
}

// NewGitDates opens the repository containing dir, if any.
func NewGitDates(dir string, logger *slog.Logger) *GitDates {
	if logger == nil {
		logger = slog.Default()
	}
	g := &GitDates{log: logger}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if !errors.Is(err, git.ErrRepositoryNotExists) {
			logger.Warn("Open git repository failed; using file times", "dir", dir, "error", err)
		}
		return g
	}
	wt, err := repo.Worktree()
	if err != nil {
		logger.Warn("Bare git repository; using file times", "dir", dir, "error", err)
		return g
	}
	g.repo = repo
	g.root = wt.Filesystem.Root()
	return g
}

// LastModified implements the lookup used by LoadSite.
func (g *GitDates) LastModified(path string) time.Time {
	if t, ok := g.commitTime(path); ok {
		return t
	}
	return modTime(path)
}

func (g *GitDates) commitTime(path string) (time.Time, bool) {
	if g.repo == nil {
		return time.Time{}, false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return time.Time{}, false
	}
	rel, err := filepath.Rel(g.root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return time.Time{}, false
	}
	rel = filepath.ToSlash(rel)

	// go-git repositories are not safe for concurrent log walks.
	g.mu.Lock()
	defer g.mu.Unlock()
	iter, err := g.repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		g.log.Debug("Git log failed", "path", rel, "error", err)
		return time.Time{}, false
	}
	defer iter.Close()
	c, err := iter.Next()
	if err != nil {
		return time.Time{}, false
	}
	return c.Committer.When, true
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
