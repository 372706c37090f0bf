package commit

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyMessage is returned when a commit message has no content after
// comment lines and surrounding blank lines are removed.
var ErrEmptyMessage = errors.New("commit message is empty")

// ParserOptions describes a commit message convention.
type ParserOptions struct {
	// HeaderPattern is matched against the first line. Capture groups are
	// assigned to commit fields in HeaderCorrespondence order.
	HeaderPattern        *regexp.Regexp
	HeaderCorrespondence []string

	// MergePattern recognizes merge headers. On a match the next non-empty
	// line is parsed as the header instead.
	MergePattern *regexp.Regexp

	// RevertPattern is matched against the whole message. Capture groups are
	// assigned to Revert fields ("header", "hash") in RevertCorrespondence order.
	RevertPattern        *regexp.Regexp
	RevertCorrespondence []string

	// NoteKeywords start a note when they open a line followed by ':' or
	// space. They match case-insensitively.
	NoteKeywords []string

	// ReferenceActions are the verbs recognized before an issue reference.
	ReferenceActions []string

	// IssuePrefixes precede an issue number, "#" by default.
	IssuePrefixes []string

	// CommentChar drops lines starting with it. Empty keeps every line.
	CommentChar string
}

// DefaultReferenceActions returns the GitHub closing keywords.
func DefaultReferenceActions() []string {
	return []string{
		"close", "closes", "closed",
		"fix", "fixes", "fixed",
		"resolve", "resolves", "resolved",
	}
}

// Parser turns raw commit messages into Commit records.
type Parser struct {
	opts ParserOptions

	notePattern      *regexp.Regexp
	referencePattern *regexp.Regexp
	actionPattern    *regexp.Regexp
	mentionPattern   *regexp.Regexp
}

// NewParser compiles the derived patterns for opts.
func NewParser(opts ParserOptions) (*Parser, error) {
	if opts.HeaderPattern == nil {
		return nil, fmt.Errorf("parser options: header pattern is required")
	}
	if len(opts.IssuePrefixes) == 0 {
		opts.IssuePrefixes = []string{"#"}
	}

	p := &Parser{
		opts:           opts,
		mentionPattern: regexp.MustCompile(`@([\w-]+)`),
	}

	if len(opts.NoteKeywords) > 0 {
		p.notePattern = regexp.MustCompile(`(?i)^[\s|*]*(` + alternation(opts.NoteKeywords) + `)[:\s]+(.*)`)
	}

	prefixes := alternation(opts.IssuePrefixes)
	if len(opts.ReferenceActions) > 0 {
		actions := alternation(opts.ReferenceActions)
		p.referencePattern = regexp.MustCompile(`(?i)(?:\b(` + actions + `)\s+)?(?:\b([\w-]+)/([\w.-]+))?(` + prefixes + `)(\d+)`)
		p.actionPattern = regexp.MustCompile(`(?i)^\s*(?:` + actions + `)\s+(?:[\w-]+/[\w.-]+)?(?:` + prefixes + `)\d+`)
	} else {
		p.referencePattern = regexp.MustCompile(`()(?:\b([\w-]+)/([\w.-]+))?(` + prefixes + `)(\d+)`)
	}

	return p, nil
}

// Parse parses a single raw commit message.
func (p *Parser) Parse(message string) (*Commit, error) {
	lines := p.cleanLines(message)
	if len(lines) == 0 {
		return nil, ErrEmptyMessage
	}

	c := &Commit{
		Notes:      []Note{},
		References: []Reference{},
	}

	header, rest := lines[0], lines[1:]
	if p.opts.MergePattern != nil && p.opts.MergePattern.MatchString(header) {
		c.Merge = header
		header, rest = nextNonEmpty(rest)
	}

	c.Header = header
	p.applyHeader(c, header)
	c.References = append(c.References, p.findReferences(header)...)

	p.parseBodyAndFooter(c, rest)

	full := strings.Join(lines, "\n")
	for _, m := range p.mentionPattern.FindAllStringSubmatch(full, -1) {
		c.Mentions = append(c.Mentions, m[1])
	}
	p.applyRevert(c, full)

	return c, nil
}

// cleanLines normalizes line endings, drops comment lines and trims
// surrounding blank lines.
func (p *Parser) cleanLines(message string) []string {
	raw := strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n")

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if p.opts.CommentChar != "" && strings.HasPrefix(line, p.opts.CommentChar) {
			continue
		}
		lines = append(lines, line)
	}

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (p *Parser) applyHeader(c *Commit, header string) {
	m := p.opts.HeaderPattern.FindStringSubmatch(header)
	if m == nil {
		return
	}
	for i, field := range p.opts.HeaderCorrespondence {
		if i+1 >= len(m) {
			break
		}
		switch field {
		case "emoji":
			c.Emoji = m[i+1]
		case "type":
			c.Type = m[i+1]
		case "scope":
			c.Scope = m[i+1]
		case "subject":
			c.Subject = m[i+1]
		}
	}
}

// parseBodyAndFooter splits the lines after the header. The footer begins at
// the first note or action reference line.
func (p *Parser) parseBodyAndFooter(c *Commit, lines []string) {
	var body, footer []string
	inFooter := false
	note := -1

	for _, line := range lines {
		c.References = append(c.References, p.findReferences(line)...)

		if m := p.matchNote(line); m != nil {
			inFooter = true
			c.Notes = append(c.Notes, Note{Title: m[1], Text: m[2]})
			note = len(c.Notes) - 1
			footer = append(footer, line)
			continue
		}

		if p.actionPattern != nil && p.actionPattern.MatchString(line) {
			inFooter = true
			note = -1
			footer = append(footer, line)
			continue
		}

		if !inFooter {
			body = append(body, line)
			continue
		}

		footer = append(footer, line)
		if note >= 0 {
			c.Notes[note].Text = appendLine(c.Notes[note].Text, line)
		}
	}

	for i := range c.Notes {
		c.Notes[i].Text = strings.TrimSpace(c.Notes[i].Text)
	}
	c.Body = strings.TrimSpace(strings.Join(body, "\n"))
	c.Footer = strings.TrimSpace(strings.Join(footer, "\n"))
}

func (p *Parser) matchNote(line string) []string {
	if p.notePattern == nil {
		return nil
	}
	return p.notePattern.FindStringSubmatch(line)
}

func (p *Parser) findReferences(line string) []Reference {
	var refs []Reference
	for _, m := range p.referencePattern.FindAllStringSubmatch(line, -1) {
		refs = append(refs, Reference{
			Action:     m[1],
			Owner:      m[2],
			Repository: m[3],
			Prefix:     m[4],
			Issue:      m[5],
			Raw:        strings.TrimSpace(m[0]),
		})
	}
	return refs
}

func (p *Parser) applyRevert(c *Commit, message string) {
	if p.opts.RevertPattern == nil {
		return
	}
	m := p.opts.RevertPattern.FindStringSubmatch(message)
	if m == nil {
		return
	}
	revert := &Revert{}
	for i, field := range p.opts.RevertCorrespondence {
		if i+1 >= len(m) {
			break
		}
		switch field {
		case "header":
			revert.Header = m[i+1]
		case "hash":
			revert.Hash = m[i+1]
		}
	}
	c.Revert = revert
}

// alternation builds a regexp alternation, longest literal first so that
// "BREAKING CHANGES" is tried before "BREAKING CHANGE".
func alternation(words []string) string {
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}

func nextNonEmpty(lines []string) (string, []string) {
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			return line, lines[i+1:]
		}
	}
	return "", nil
}

func appendLine(text, line string) string {
	if text == "" {
		return line
	}
	return text + "\n" + line
}
