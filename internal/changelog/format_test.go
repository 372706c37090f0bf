package changelog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ariel-frischer/emojilog/internal/commit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCommit_Plain(t *testing.T) {
	c := &commit.Commit{
		Type:       "feat",
		Emoji:      "✨",
		Scope:      "api",
		Subject:    "add export",
		Hash:       "abc1234",
		Notes:      []commit.Note{{Title: "BREAKING CHANGE", Text: "old export removed"}},
		References: []commit.Reference{{Action: "Closes", Issue: "12", Prefix: "#"}, {Owner: "octo", Repository: "lib", Issue: "3", Prefix: "#"}},
		Mentions:   []string{"alice"},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatCommit(c, &buf, FormatOptions{Plain: true, MaxWidth: 80}))

	want := strings.Join([]string{
		"type        ✨ feat",
		"scope       api",
		"subject     add export",
		"hash        abc1234",
		"notes       BREAKING CHANGE: old export removed",
		"references  closes #12, octo/lib#3",
		"mentions    alice",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestFormatCommit_TransformedType(t *testing.T) {
	c := &commit.Commit{Type: "✨ Features", Emoji: "✨", Subject: "x"}

	var buf bytes.Buffer
	require.NoError(t, FormatCommit(c, &buf, FormatOptions{Plain: true, MaxWidth: 80}))
	assert.Contains(t, buf.String(), "type        ✨ Features\n")
}

func TestFormatCommit_Discarded(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatCommit(nil, &buf, FormatOptions{Plain: true}))
	assert.Equal(t, "(discarded)\n", buf.String())
}

func TestWrapText(t *testing.T) {
	tests := map[string]struct {
		text     string
		maxWidth int
		want     string
	}{
		"short text unchanged": {
			text:     "short",
			maxWidth: 10,
			want:     "short",
		},
		"wraps at spaces": {
			text:     "one two three",
			maxWidth: 8,
			want:     "one two\n  three",
		},
		"keeps line breaks": {
			text:     "a\nb",
			maxWidth: 8,
			want:     "a\n  b",
		},
		"zero width disables wrapping": {
			text:     "one two three",
			maxWidth: 0,
			want:     "one two three",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.maxWidth, "  "))
		})
	}
}
