package docsite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitDatesFallsBackToModTime(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"docs/index.md": "# hi\n"})
	file := filepath.Join(dir, "docs", "index.md")
	stamp := time.Date(2023, 11, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(file, stamp, stamp))

	g := NewGitDates(filepath.Join(dir, "docs"), nil)
	assert.True(t, g.LastModified(file).Equal(stamp))
	assert.True(t, g.LastModified(filepath.Join(dir, "missing.md")).IsZero())
}

func TestGitDatesUsesLastCommit(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"docs/index.md":   "# hi\n",
		"docs/install.md": "# install\n",
	})
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("docs/index.md")
	require.NoError(t, err)
	committed := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	_, err = wt.Commit("add index", &git.CommitOptions{
		Author: &object.Signature{Name: "docs", Email: "docs@example.com", When: committed},
	})
	require.NoError(t, err)

	untracked := filepath.Join(dir, "docs", "install.md")
	stamp := time.Date(2023, 11, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(untracked, stamp, stamp))

	g := NewGitDates(filepath.Join(dir, "docs"), nil)
	got := g.LastModified(filepath.Join(dir, "docs", "index.md"))
	assert.True(t, got.Equal(committed), "got %s", got)
	assert.True(t, g.LastModified(untracked).Equal(stamp))
}
