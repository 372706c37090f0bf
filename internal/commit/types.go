package commit

import "time"

// Note is a titled block from a commit body or footer, such as a
// BREAKING CHANGE annotation.
type Note struct {
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"text" json:"text"`
}

// Reference is an issue referenced from a commit message, optionally
// preceded by an action keyword ("closes #12").
type Reference struct {
	Action     string `yaml:"action,omitempty" json:"action,omitempty"`
	Owner      string `yaml:"owner,omitempty" json:"owner,omitempty"`
	Repository string `yaml:"repository,omitempty" json:"repository,omitempty"`
	Issue      string `yaml:"issue" json:"issue"`
	Raw        string `yaml:"raw" json:"raw"`
	Prefix     string `yaml:"prefix" json:"prefix"`
}

// Revert holds the header and hash of the commit a revert commit undoes.
type Revert struct {
	Header string `yaml:"header" json:"header"`
	Hash   string `yaml:"hash" json:"hash"`
}

// Commit is a parsed commit message plus the metadata the log reader
// attaches to it.
type Commit struct {
	Type    string `yaml:"type" json:"type"`
	Emoji   string `yaml:"emoji" json:"emoji"`
	Scope   string `yaml:"scope,omitempty" json:"scope,omitempty"`
	Subject string `yaml:"subject" json:"subject"`

	Header string `yaml:"header" json:"header"`
	Body   string `yaml:"body,omitempty" json:"body,omitempty"`
	Footer string `yaml:"footer,omitempty" json:"footer,omitempty"`

	// Merge is the original merge header when the message matched the merge
	// pattern; Header then holds the line that followed it.
	Merge string `yaml:"merge,omitempty" json:"merge,omitempty"`

	Hash   string    `yaml:"hash,omitempty" json:"hash,omitempty"`
	Author string    `yaml:"author,omitempty" json:"author,omitempty"`
	Date   time.Time `yaml:"date,omitempty" json:"date,omitempty"`

	Notes      []Note      `yaml:"notes" json:"notes"`
	References []Reference `yaml:"references" json:"references"`
	Mentions   []string    `yaml:"mentions,omitempty" json:"mentions,omitempty"`
	Revert     *Revert     `yaml:"revert,omitempty" json:"revert,omitempty"`
}

// Field returns the named string field, used by grouping and sort keys.
// Unknown names yield the empty string.
func (c *Commit) Field(name string) string {
	switch name {
	case "type":
		return c.Type
	case "emoji":
		return c.Emoji
	case "scope":
		return c.Scope
	case "subject":
		return c.Subject
	case "header":
		return c.Header
	case "hash":
		return c.Hash
	case "author":
		return c.Author
	default:
		return ""
	}
}

// FieldNames lists the names accepted by Field.
func FieldNames() []string {
	return []string{"type", "emoji", "scope", "subject", "header", "hash", "author"}
}

// HasNotes reports whether the commit carries any notes.
func (c *Commit) HasNotes() bool {
	return len(c.Notes) > 0
}

// Clone returns a deep copy of c.
func (c *Commit) Clone() *Commit {
	if c == nil {
		return nil
	}
	out := *c
	out.Notes = append([]Note(nil), c.Notes...)
	out.References = append([]Reference(nil), c.References...)
	out.Mentions = append([]string(nil), c.Mentions...)
	if c.Revert != nil {
		r := *c.Revert
		out.Revert = &r
	}
	return &out
}
