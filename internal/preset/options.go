package preset

import (
	"cmp"

	"github.com/ariel-frischer/emojilog/internal/commit"
)

// WriterOptions controls how transformed commits are grouped, sorted and
// rendered.
type WriterOptions struct {
	Transform TransformFunc `yaml:"-" json:"-"`

	// GroupBy is the commit field commits are grouped on.
	GroupBy string `yaml:"groupBy" json:"groupBy"`
	// CommitGroupsSort orders groups; "title" is the only key.
	CommitGroupsSort string `yaml:"commitGroupsSort" json:"commitGroupsSort"`
	// CommitsSort lists the commit fields commits in a group are ordered by.
	CommitsSort []string `yaml:"commitsSort" json:"commitsSort"`
	// NoteGroupsSort orders note groups; "title" is the only key.
	NoteGroupsSort string `yaml:"noteGroupsSort" json:"noteGroupsSort"`
	// NotesSort orders the notes inside a note group.
	NotesSort func(a, b commit.Note) int `yaml:"-" json:"-"`

	MainTemplate  string `yaml:"mainTemplate" json:"mainTemplate"`
	HeaderPartial string `yaml:"headerPartial" json:"headerPartial"`
	CommitPartial string `yaml:"commitPartial" json:"commitPartial"`
	FooterPartial string `yaml:"footerPartial" json:"footerPartial"`
}

// Config is the assembled preset.
type Config struct {
	ParserOpts commit.ParserOptions
	WriterOpts WriterOptions
}

// NewWriterOptions returns the writer options of the preset without
// templates. Load fills the templates in.
func NewWriterOptions() WriterOptions {
	return WriterOptions{
		Transform:        Transform,
		GroupBy:          "type",
		CommitGroupsSort: "title",
		CommitsSort:      []string{"scope", "subject"},
		NoteGroupsSort:   "title",
		NotesSort:        CompareNotes,
	}
}

// CompareNotes orders notes ascending by title then text, case-sensitive.
// Ties compare equal so stable sorts keep commit order.
func CompareNotes(a, b commit.Note) int {
	return CompareKeys([]string{a.Title, a.Text}, []string{b.Title, b.Text})
}

// CompareKeys compares two key tuples lexically, ascending. Missing keys
// sort first.
func CompareKeys(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}
