package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepo wraps a throwaway repository created in a temp directory.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	when time.Time
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return &testRepo{
		t:    t,
		dir:  dir,
		repo: repo,
		when: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *testRepo) commit(message string) plumbing.Hash {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)

	path := filepath.Join(r.dir, "CHANGELOG.md")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(r.t, err)
	_, err = f.WriteString(message + "\n")
	require.NoError(r.t, err)
	require.NoError(r.t, f.Close())

	_, err = wt.Add("CHANGELOG.md")
	require.NoError(r.t, err)

	r.when = r.when.Add(time.Minute)
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "Ada", Email: "ada@example.com", When: r.when},
	})
	require.NoError(r.t, err)
	return hash
}

func (r *testRepo) lightweightTag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.repo.CreateTag(name, hash, nil)
	require.NoError(r.t, err)
}

func (r *testRepo) annotatedTag(name string, hash plumbing.Hash) {
	r.t.Helper()
	_, err := r.repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  &object.Signature{Name: "Ada", Email: "ada@example.com", When: r.when},
		Message: "release " + name,
	})
	require.NoError(r.t, err)
}

func (r *testRepo) open() *Reader {
	r.t.Helper()
	reader, err := Open(r.dir)
	require.NoError(r.t, err)
	return reader
}

func TestOpen(t *testing.T) {
	t.Run("subdirectory finds repository root", func(t *testing.T) {
		repo := newTestRepo(t)
		repo.commit("🎉 init: first")
		sub := filepath.Join(repo.dir, "nested", "dir")
		require.NoError(t, os.MkdirAll(sub, 0o755))

		reader, err := Open(sub)
		require.NoError(t, err)
		assert.Equal(t, repo.dir, reader.Root())
	})

	t.Run("plain directory is not a repository", func(t *testing.T) {
		dir := t.TempDir()
		_, err := Open(dir)
		require.Error(t, err)
		assert.True(t, IsNotRepository(err))
		assert.Contains(t, err.Error(), dir)
	})
}

func TestCommits(t *testing.T) {
	repo := newTestRepo(t)
	first := repo.commit("🎉 init: first")
	repo.lightweightTag("v0.1.0", first)
	repo.commit("✨ feat: second")
	third := repo.commit("🐛 fix: third")

	reader := repo.open()

	tests := map[string]struct {
		from string
		to   string
		want []string
	}{
		"whole history newest first": {
			want: []string{"🐛 fix: third\n", "✨ feat: second\n", "🎉 init: first\n"},
		},
		"from tag excludes tagged history": {
			from: "v0.1.0",
			want: []string{"🐛 fix: third\n", "✨ feat: second\n"},
		},
		"explicit to": {
			from: "v0.1.0",
			to:   "HEAD~1",
			want: []string{"✨ feat: second\n"},
		},
		"from equals to is empty": {
			from: third.String(),
			want: nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			commits, err := reader.Commits(context.Background(), tt.from, tt.to)
			require.NoError(t, err)

			var messages []string
			for _, c := range commits {
				messages = append(messages, c.Message)
				assert.Equal(t, "Ada", c.Author)
				assert.Len(t, c.Hash, 40)
			}
			assert.Equal(t, tt.want, messages)
		})
	}
}

func TestCommits_Errors(t *testing.T) {
	repo := newTestRepo(t)
	repo.commit("🎉 init: first")
	reader := repo.open()

	t.Run("unknown revision", func(t *testing.T) {
		_, err := reader.Commits(context.Background(), "v9.9.9", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `resolving revision "v9.9.9"`)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := reader.Commits(ctx, "", "")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLatestTag(t *testing.T) {
	t.Run("highest version wins over newest tag", func(t *testing.T) {
		repo := newTestRepo(t)
		a := repo.commit("🎉 init: a")
		b := repo.commit("✨ feat: b")
		c := repo.commit("✨ feat: c")
		repo.lightweightTag("v1.10.0", a)
		repo.annotatedTag("v1.9.0", c)
		repo.lightweightTag("not-a-version", b)

		tag, err := repo.open().LatestTag("v")
		require.NoError(t, err)
		require.NotNil(t, tag)
		assert.Equal(t, "v1.10.0", tag.Name)
		assert.Equal(t, "1.10.0", tag.Version.String())
		assert.Equal(t, a.String(), tag.Hash)
	})

	t.Run("annotated tag peels to commit", func(t *testing.T) {
		repo := newTestRepo(t)
		a := repo.commit("🎉 init: a")
		repo.annotatedTag("v2.0.0", a)

		tag, err := repo.open().LatestTag("v")
		require.NoError(t, err)
		require.NotNil(t, tag)
		assert.Equal(t, a.String(), tag.Hash)
	})

	t.Run("prefix filters tags", func(t *testing.T) {
		repo := newTestRepo(t)
		a := repo.commit("🎉 init: a")
		repo.lightweightTag("v3.0.0", a)
		repo.lightweightTag("api/v1.0.0", a)

		tag, err := repo.open().LatestTag("api/v")
		require.NoError(t, err)
		require.NotNil(t, tag)
		assert.Equal(t, "api/v1.0.0", tag.Name)
	})

	t.Run("no tags", func(t *testing.T) {
		repo := newTestRepo(t)
		repo.commit("🎉 init: a")

		tag, err := repo.open().LatestTag("v")
		require.NoError(t, err)
		assert.Nil(t, tag)
	})
}

func TestParseRemoteURL(t *testing.T) {
	tests := map[string]struct {
		url     string
		want    *Remote
		wantErr bool
	}{
		"https": {
			url:  "https://github.com/octo/app.git",
			want: &Remote{Host: "https://github.com", Owner: "octo", Repository: "app"},
		},
		"https without suffix": {
			url:  "https://github.com/octo/app",
			want: &Remote{Host: "https://github.com", Owner: "octo", Repository: "app"},
		},
		"scp-like ssh": {
			url:  "git@github.com:octo/app.git",
			want: &Remote{Host: "https://github.com", Owner: "octo", Repository: "app"},
		},
		"ssh url": {
			url:  "ssh://git@gitlab.example.com:2222/group/sub/app.git",
			want: &Remote{Host: "https://gitlab.example.com", Owner: "group/sub", Repository: "app"},
		},
		"http with port": {
			url:  "http://git.local:3000/team/app",
			want: &Remote{Host: "http://git.local:3000", Owner: "team", Repository: "app"},
		},
		"local path": {
			url:     "/srv/git/app.git",
			wantErr: true,
		},
		"missing owner": {
			url:     "https://github.com/app",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseRemoteURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReader_Remote(t *testing.T) {
	repo := newTestRepo(t)
	repo.commit("🎉 init: a")
	_, err := repo.repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:octo/app.git"},
	})
	require.NoError(t, err)

	reader := repo.open()

	remote, err := reader.Remote("origin")
	require.NoError(t, err)
	assert.Equal(t, &Remote{Host: "https://github.com", Owner: "octo", Repository: "app"}, remote)

	_, err = reader.Remote("upstream")
	assert.Error(t, err)
}
