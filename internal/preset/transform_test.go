package preset

import (
	"testing"

	"github.com/ariel-frischer/emojilog/internal/commit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hostedContext() *Context {
	return &Context{Host: "https://h", Owner: "o", Repository: "r"}
}

func TestTransform_TypeLabels(t *testing.T) {
	tests := map[string]struct {
		typ  string
		want string
	}{
		"feat":     {typ: "feat", want: "✨ Features"},
		"fix":      {typ: "fix", want: "✨ Bug Fixes"},
		"docs":     {typ: "docs", want: "✨ Documentation"},
		"style":    {typ: "style", want: "✨ Styles"},
		"refactor": {typ: "refactor", want: "✨ Code Refactoring"},
		"perf":     {typ: "perf", want: "✨ Performance Improvements"},
		"test":     {typ: "test", want: "✨ Tests"},
		"build":    {typ: "build", want: "✨ Build"},
		"ci":       {typ: "ci", want: "✨ Continuous Integration"},
		"chore":    {typ: "chore", want: "✨ Chores"},
		"revert":   {typ: "revert", want: "✨ Reverts"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := &commit.Commit{Type: tt.typ, Emoji: "✨"}
			got, ok := Transform(c, &Context{})
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Type)
		})
	}
}

func TestTransform_TypeTableCoversSections(t *testing.T) {
	for _, s := range TypeSections() {
		c := &commit.Commit{Type: s.Type, Emoji: "🔖"}
		got, ok := Transform(c, nil)
		require.True(t, ok, "type %s", s.Type)
		assert.Equal(t, "🔖 "+s.Title, got.Type)
	}
}

func TestTransform_UnknownType(t *testing.T) {
	tests := map[string]struct {
		commit      *commit.Commit
		wantKeep    bool
		wantType    string
		wantNoteTtl []string
	}{
		"unknown type without notes is discarded": {
			commit:   &commit.Commit{Type: "wip", Emoji: "🚧"},
			wantKeep: false,
		},
		"unmatched header is discarded": {
			commit:   &commit.Commit{Header: "Update README"},
			wantKeep: false,
		},
		"unknown type with notes is kept unmapped": {
			commit: &commit.Commit{
				Type:  "wip",
				Emoji: "🚧",
				Notes: []commit.Note{{Title: "BREAKING CHANGE", Text: "x"}},
			},
			wantKeep:    true,
			wantType:    "wip",
			wantNoteTtl: []string{"BREAKING CHANGES"},
		},
		"notes are retitled on known types": {
			commit: &commit.Commit{
				Type:  "feat",
				Emoji: "💥",
				Notes: []commit.Note{
					{Title: "BREAKING CHANGE", Text: "a"},
					{Title: "BREAKING CHANGES", Text: "b"},
				},
			},
			wantKeep:    true,
			wantType:    "💥 Features",
			wantNoteTtl: []string{"BREAKING CHANGES", "BREAKING CHANGES"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := Transform(tt.commit, hostedContext())
			assert.Equal(t, tt.wantKeep, ok)
			if !tt.wantKeep {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.wantType, got.Type)
			var titles []string
			for _, n := range got.Notes {
				titles = append(titles, n.Title)
			}
			assert.Equal(t, tt.wantNoteTtl, titles)
		})
	}
}

func TestTransform_ScopeAndHash(t *testing.T) {
	tests := map[string]struct {
		scope     string
		hash      string
		wantScope string
		wantHash  string
	}{
		"wildcard scope cleared": {
			scope:     "*",
			wantScope: "",
		},
		"regular scope kept": {
			scope:     "api",
			wantScope: "api",
		},
		"long hash truncated": {
			hash:     "abcdef1234567",
			wantHash: "abcdef1",
		},
		"short hash kept": {
			hash:     "abc",
			wantHash: "abc",
		},
		"empty hash kept": {
			hash:     "",
			wantHash: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := &commit.Commit{Type: "fix", Emoji: "🐛", Scope: tt.scope, Hash: tt.hash}
			got, ok := Transform(c, &Context{})
			require.True(t, ok)
			assert.Equal(t, tt.wantScope, got.Scope)
			assert.Equal(t, tt.wantHash, got.Hash)
		})
	}
}

func TestTransform_IssueLinks(t *testing.T) {
	tests := map[string]struct {
		ctx         *Context
		subject     string
		refs        []string
		wantSubject string
		wantRefs    []string
	}{
		"hosted context links issues and drops references": {
			ctx:         hostedContext(),
			subject:     "fixes #12 and #34",
			refs:        []string{"12", "34", "56"},
			wantSubject: "fixes [#12](https://h/o/r/issues/12) and [#34](https://h/o/r/issues/34)",
			wantRefs:    []string{"56"},
		},
		"repo url context": {
			ctx:         &Context{RepoURL: "https://git.example.com/team/app"},
			subject:     "closes #7",
			refs:        []string{"7"},
			wantSubject: "closes [#7](https://git.example.com/team/app/issues/7)",
			wantRefs:    []string{},
		},
		"repository takes precedence over repo url": {
			ctx:         &Context{Host: "https://h", Owner: "o", Repository: "r", RepoURL: "https://other"},
			subject:     "#1",
			wantSubject: "[#1](https://h/o/r/issues/1)",
		},
		"no base url leaves subject and references": {
			ctx:         &Context{},
			subject:     "fixes #12",
			refs:        []string{"12"},
			wantSubject: "fixes #12",
			wantRefs:    []string{"12"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := &commit.Commit{Type: "fix", Emoji: "🐛", Subject: tt.subject}
			for _, issue := range tt.refs {
				c.References = append(c.References, commit.Reference{Issue: issue, Prefix: "#"})
			}

			got, ok := Transform(c, tt.ctx)
			require.True(t, ok)
			assert.Equal(t, tt.wantSubject, got.Subject)

			if tt.refs == nil {
				assert.Empty(t, got.References)
				return
			}
			issues := []string{}
			for _, ref := range got.References {
				issues = append(issues, ref.Issue)
			}
			assert.Equal(t, tt.wantRefs, issues)
		})
	}
}

func TestTransform_MentionLinks(t *testing.T) {
	tests := map[string]struct {
		ctx         *Context
		subject     string
		wantSubject string
	}{
		"mention linked to host": {
			ctx:         &Context{Host: "https://h"},
			subject:     "thanks @alice-b",
			wantSubject: "thanks [@alice-b](https://h/alice-b)",
		},
		"email address is not a mention": {
			ctx:         &Context{Host: "https://h"},
			subject:     "mail dev@example.com",
			wantSubject: "mail dev@example.com",
		},
		"no host leaves mentions": {
			ctx:         &Context{RepoURL: "https://h/o/r"},
			subject:     "thanks @alice",
			wantSubject: "thanks @alice",
		},
		"issues and mentions together": {
			ctx:         hostedContext(),
			subject:     "@bob fixed #3",
			wantSubject: "[@bob](https://h/bob) fixed [#3](https://h/o/r/issues/3)",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := &commit.Commit{Type: "feat", Emoji: "✨", Subject: tt.subject}
			got, ok := Transform(c, tt.ctx)
			require.True(t, ok)
			assert.Equal(t, tt.wantSubject, got.Subject)
		})
	}
}

func TestTransform_MutatesInput(t *testing.T) {
	c := &commit.Commit{Type: "perf", Emoji: "⚡", Scope: "*", Hash: "0123456789"}

	got, ok := Transform(c, nil)
	require.True(t, ok)
	assert.Same(t, c, got)
	assert.Equal(t, "⚡ Performance Improvements", c.Type)
}

// A second pass sees the section label as an unknown type, so a commit
// without notes is dropped and link text is linked again.
func TestTransform_NotIdempotent(t *testing.T) {
	t.Run("second pass drops commit without notes", func(t *testing.T) {
		c := &commit.Commit{Type: "feat", Emoji: "✨", Subject: "x"}
		_, ok := Transform(c, hostedContext())
		require.True(t, ok)

		_, ok = Transform(c, hostedContext())
		assert.False(t, ok)
	})

	t.Run("second pass relinks issues", func(t *testing.T) {
		c := &commit.Commit{
			Type:    "feat",
			Emoji:   "✨",
			Subject: "see #5",
			Notes:   []commit.Note{{Title: "BREAKING CHANGE", Text: "x"}},
		}
		_, ok := Transform(c, hostedContext())
		require.True(t, ok)
		once := c.Subject

		_, ok = Transform(c, hostedContext())
		require.True(t, ok)
		assert.NotEqual(t, once, c.Subject)
		assert.Contains(t, c.Subject, "[[#5](https://h/o/r/issues/5)]")
	})
}

func TestTransform_NilCommit(t *testing.T) {
	got, ok := Transform(nil, hostedContext())
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSectionTitle(t *testing.T) {
	title, ok := SectionTitle("ci")
	assert.True(t, ok)
	assert.Equal(t, "Continuous Integration", title)

	_, ok = SectionTitle("wip")
	assert.False(t, ok)
}
