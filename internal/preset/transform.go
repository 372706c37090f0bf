package preset

import (
	"regexp"

	"github.com/ariel-frischer/emojilog/internal/commit"
)

// TypeSection maps a commit type code to its changelog section title.
type TypeSection struct {
	Type  string `yaml:"type" json:"type"`
	Title string `yaml:"title" json:"title"`
}

// typeSections is the fixed type table, in display order.
var typeSections = []TypeSection{
	{Type: "feat", Title: "Features"},
	{Type: "fix", Title: "Bug Fixes"},
	{Type: "docs", Title: "Documentation"},
	{Type: "style", Title: "Styles"},
	{Type: "refactor", Title: "Code Refactoring"},
	{Type: "perf", Title: "Performance Improvements"},
	{Type: "test", Title: "Tests"},
	{Type: "build", Title: "Build"},
	{Type: "ci", Title: "Continuous Integration"},
	{Type: "chore", Title: "Chores"},
	{Type: "revert", Title: "Reverts"},
}

var sectionTitles = func() map[string]string {
	m := make(map[string]string, len(typeSections))
	for _, s := range typeSections {
		m[s.Type] = s.Title
	}
	return m
}()

// TypeSections returns a copy of the type table.
func TypeSections() []TypeSection {
	return append([]TypeSection(nil), typeSections...)
}

// SectionTitle returns the section title for a type code.
func SectionTitle(typ string) (string, bool) {
	title, ok := sectionTitles[typ]
	return title, ok
}

var (
	issuePattern   = regexp.MustCompile(`#([0-9]+)`)
	mentionPattern = regexp.MustCompile(`\B@([a-z0-9](?:-?[a-z0-9]){0,38})`)
)

// TransformFunc rewrites a commit before rendering. Returning false drops
// the commit from the changelog.
type TransformFunc func(c *commit.Commit, ctx *Context) (*commit.Commit, bool)

// Transform is the preset's commit transform. It mutates c in place:
//   - every note is retitled BREAKING CHANGES and keeps the commit
//   - known types become "<emoji> <Section>"; unknown types without notes
//     are dropped
//   - the "*" scope is cleared and the hash shortened to 7 characters
//   - "#N" and "@handle" in the subject become markdown links when the
//     context can build URLs, and inline-linked issues leave References
//
// Applying Transform to an already transformed commit is not idempotent:
// the section label is no longer a known type, and linked text is linked
// again.
func Transform(c *commit.Commit, ctx *Context) (*commit.Commit, bool) {
	if c == nil {
		return nil, false
	}
	if ctx == nil {
		ctx = &Context{}
	}

	discard := true
	for i := range c.Notes {
		c.Notes[i].Title = BreakingChangeTitle
		discard = false
	}

	if title, ok := sectionTitles[c.Type]; ok {
		c.Type = c.Emoji + " " + title
	} else if discard {
		logDebug("[preset] discarding commit %q: unknown type %q", c.Hash, c.Type)
		return nil, false
	}

	if c.Scope == "*" {
		c.Scope = ""
	}

	if len(c.Hash) > 7 {
		c.Hash = c.Hash[:7]
	}

	issues := make(map[string]bool)
	if base, ok := ctx.BaseURL().URL(); ok {
		issueBase := base + "/issues/"
		c.Subject = issuePattern.ReplaceAllStringFunc(c.Subject, func(match string) string {
			issue := match[1:]
			issues[issue] = true
			return "[#" + issue + "](" + issueBase + issue + ")"
		})
	}
	if ctx.Host != "" {
		c.Subject = mentionPattern.ReplaceAllStringFunc(c.Subject, func(match string) string {
			user := match[1:]
			return "[@" + user + "](" + ctx.Host + "/" + user + ")"
		})
	}

	if c.References != nil {
		kept := c.References[:0]
		for _, ref := range c.References {
			if !issues[ref.Issue] {
				kept = append(kept, ref)
			}
		}
		c.References = kept
	}

	return c, true
}
