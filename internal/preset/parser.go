package preset

import (
	"regexp"

	"github.com/ariel-frischer/emojilog/internal/commit"
)

var (
	// headerPattern matches "<emoji> <type>(<scope>): <subject>". The emoji
	// is one or two runes so variation selectors are accepted.
	headerPattern = regexp.MustCompile(`^(..?) (\w*)(?:\((.*)\))?: (.*)$`)

	mergePattern  = regexp.MustCompile(`^Merge pull request #(\d+) from (.*)$`)
	revertPattern = regexp.MustCompile(`^revert:\s([\s\S]*?)\s*This reverts commit (\w*)\.`)
)

// BreakingChangeTitle is the note group every note is filed under.
const BreakingChangeTitle = "BREAKING CHANGES"

// NewParserOptions returns the parser options of the preset.
func NewParserOptions() commit.ParserOptions {
	return commit.ParserOptions{
		HeaderPattern:        headerPattern,
		HeaderCorrespondence: []string{"emoji", "type", "scope", "subject"},
		MergePattern:         mergePattern,
		NoteKeywords:         []string{"BREAKING CHANGE", "BREAKING CHANGES"},
		RevertPattern:        revertPattern,
		RevertCorrespondence: []string{"header", "hash"},
		ReferenceActions:     commit.DefaultReferenceActions(),
		IssuePrefixes:        []string{"#"},
	}
}
