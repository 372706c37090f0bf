package changelog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ariel-frischer/emojilog/internal/config"
	"github.com/ariel-frischer/emojilog/internal/git"
	"github.com/ariel-frischer/emojilog/internal/preset"
	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var releaseDate = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

// newRepo creates a repository with one commit per message, oldest first,
// and returns its directory and the commit hashes.
func newRepo(t *testing.T, messages ...string) (string, *gogit.Repository, []plumbing.Hash) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	when := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var hashes []plumbing.Hash
	for i, msg := range messages {
		name := filepath.Join(dir, "file.txt")
		require.NoError(t, os.WriteFile(name, []byte(msg), 0o644))
		_, err := wt.Add("file.txt")
		require.NoError(t, err)

		hash, err := wt.Commit(msg, &gogit.CommitOptions{
			Author:            &object.Signature{Name: "Ada", Email: "ada@example.com", When: when.Add(time.Duration(i) * time.Hour)},
			AllowEmptyCommits: true,
		})
		require.NoError(t, err)
		hashes = append(hashes, hash)
	}
	return dir, repo, hashes
}

func defaultOptions(t *testing.T, dir string) Options {
	t.Helper()
	p, err := preset.Load(context.Background())
	require.NoError(t, err)

	cfg := &config.Configuration{
		Remote:           "origin",
		TagPrefix:        "v",
		GroupBy:          "type",
		CommitGroupsSort: "title",
		CommitsSort:      []string{"scope", "subject"},
		NoteGroupsSort:   "title",
		LinkReferences:   true,
	}
	return Options{Dir: dir, Config: cfg, Preset: p, Date: releaseDate}
}

func TestGenerate_SinceLatestTag(t *testing.T) {
	dir, repo, hashes := newRepo(t,
		"🎉 init: start",
		"✨ feat(api): add export",
		"🐛 fix: handle empty list #4",
		"📝 docs: explain config",
	)
	_, err := repo.CreateTag("v1.0.0", hashes[1], nil)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:octo/app.git"},
	})
	require.NoError(t, err)

	opts := defaultOptions(t, dir)
	opts.Version = "v1.0.1"

	result, err := Generate(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Commits)
	assert.Equal(t, "v1.0.0", result.Context.PreviousTag)
	assert.Equal(t, "v1.0.1", result.Context.CurrentTag)
	assert.Equal(t, "1.0.1", result.Context.Version)
	assert.True(t, result.Context.IsPatch)

	md := result.Markdown
	assert.Contains(t, md, "### [1.0.1](https://github.com/octo/app/compare/v1.0.0...v1.0.1) (2026-10-19)")
	assert.Contains(t, md, "### 🐛 Bug Fixes")
	assert.Contains(t, md, "handle empty list [#4](https://github.com/octo/app/issues/4)")
	assert.Contains(t, md, "### 📝 Documentation")
	assert.NotContains(t, md, "add export", "commits before the tag are excluded")
}

func TestGenerate_Unreleased(t *testing.T) {
	dir, _, _ := newRepo(t, "✨ feat: first", "not conventional")

	opts := defaultOptions(t, dir)
	result, err := Generate(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Commits)
	assert.Equal(t, UnreleasedVersion, result.Context.Version)
	assert.Equal(t, "HEAD", result.Context.CurrentTag)
	assert.Empty(t, result.Context.PreviousTag)
	assert.Contains(t, result.Markdown, "## Unreleased (2026-10-19)")
	assert.Contains(t, result.Markdown, "* first (")
	assert.NotContains(t, result.Markdown, "not conventional")
	assert.NotContains(t, result.Markdown, "https://", "no remote, no links")
}

func TestGenerate_ConfigOverridesLinks(t *testing.T) {
	dir, _, _ := newRepo(t, "✨ feat: first")

	opts := defaultOptions(t, dir)
	opts.Version = "2.0.0"
	opts.Config.Host = "https://git.example.com"
	opts.Config.Owner = "team"
	opts.Config.Repository = "tool"

	result, err := Generate(context.Background(), opts)
	require.NoError(t, err)
	assert.Contains(t, result.Markdown, "https://git.example.com/team/tool/commit/")
	assert.False(t, result.Context.IsPatch)
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("invalid version", func(t *testing.T) {
		dir, _, _ := newRepo(t, "✨ feat: first")
		opts := defaultOptions(t, dir)
		opts.Version = "one"

		_, err := Generate(context.Background(), opts)
		var ive *InvalidVersionError
		require.ErrorAs(t, err, &ive)
		assert.Equal(t, "one", ive.Version)
	})

	t.Run("not a repository", func(t *testing.T) {
		opts := defaultOptions(t, t.TempDir())
		_, err := Generate(context.Background(), opts)
		assert.True(t, git.IsNotRepository(err))
	})

	t.Run("missing config", func(t *testing.T) {
		_, err := Generate(context.Background(), Options{})
		assert.Error(t, err)
	})

	t.Run("unknown from revision", func(t *testing.T) {
		dir, _, _ := newRepo(t, "✨ feat: first")
		opts := defaultOptions(t, dir)
		opts.From = "v9.9.9"
		_, err := Generate(context.Background(), opts)
		assert.Error(t, err)
	})
}

func TestParseCommits(t *testing.T) {
	raw := []git.RawCommit{
		{Hash: "aaa", Message: "✨ feat(ui): one", Author: "Ada", Date: releaseDate},
		{Hash: "bbb", Message: "\n\n"},
		{Hash: "ccc", Message: "plain"},
	}

	commits, err := ParseCommits(raw, preset.NewParserOptions())
	require.NoError(t, err)
	require.Len(t, commits, 2)

	assert.Equal(t, "feat", commits[0].Type)
	assert.Equal(t, "ui", commits[0].Scope)
	assert.Equal(t, "aaa", commits[0].Hash)
	assert.Equal(t, "Ada", commits[0].Author)
	assert.Equal(t, releaseDate, commits[0].Date)

	assert.Empty(t, commits[1].Type)
	assert.Equal(t, "plain", commits[1].Header)
}
