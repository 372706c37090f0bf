// Package writer turns parsed commits into a rendered changelog section.
//
// Generate runs the preset transform over every commit, groups and sorts the
// survivors, collects their notes, and renders the main handlebars template
// with the header, commit and footer partials.
package writer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ariel-frischer/emojilog/internal/commit"
	"github.com/ariel-frischer/emojilog/internal/preset"
	"github.com/aymerick/raymond"
)

// debugLogger receives debug output when set. It is a no-op by default.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for rendering.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// CommitGroup is a titled set of commits sharing the GroupBy field.
type CommitGroup struct {
	Title   string
	Commits []*commit.Commit
}

// NoteEntry is a note with the commit it came from.
type NoteEntry struct {
	commit.Note
	Commit *commit.Commit
}

// NoteGroup is a titled set of notes.
type NoteGroup struct {
	Title string
	Notes []NoteEntry
}

// Section is the grouped, sorted content of one changelog section.
type Section struct {
	Context      *preset.Context
	CommitGroups []CommitGroup
	NoteGroups   []NoteGroup
}

// Generate transforms, groups and renders commits into a changelog section.
// Commits are mutated by the transform.
func Generate(ctx *preset.Context, commits []*commit.Commit, opts preset.WriterOptions) (string, error) {
	if ctx == nil {
		ctx = preset.NewContext()
	}
	section := Build(ctx, commits, opts)
	return Render(section, opts)
}

// Build runs the transform and produces the grouped section without
// rendering it.
func Build(ctx *preset.Context, commits []*commit.Commit, opts preset.WriterOptions) *Section {
	kept := make([]*commit.Commit, 0, len(commits))
	for _, c := range commits {
		if c == nil {
			continue
		}
		if opts.Transform != nil {
			var ok bool
			c, ok = opts.Transform(c, ctx)
			if !ok {
				continue
			}
		}
		kept = append(kept, c)
	}
	logDebug("[writer] %d of %d commits kept after transform", len(kept), len(commits))

	return &Section{
		Context:      ctx,
		CommitGroups: groupCommits(kept, opts),
		NoteGroups:   groupNotes(kept, opts),
	}
}

// groupCommits groups by opts.GroupBy, keeping first-seen group order
// unless a group sort is configured.
func groupCommits(commits []*commit.Commit, opts preset.WriterOptions) []CommitGroup {
	groupBy := opts.GroupBy
	if groupBy == "" {
		groupBy = "type"
	}

	var groups []CommitGroup
	index := make(map[string]int)
	for _, c := range commits {
		key := c.Field(groupBy)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, CommitGroup{Title: key})
		}
		groups[i].Commits = append(groups[i].Commits, c)
	}

	if opts.CommitGroupsSort == "title" {
		slices.SortStableFunc(groups, func(a, b CommitGroup) int {
			return strings.Compare(a.Title, b.Title)
		})
	}

	if len(opts.CommitsSort) > 0 {
		for i := range groups {
			slices.SortStableFunc(groups[i].Commits, func(a, b *commit.Commit) int {
				return preset.CompareKeys(sortKeys(a, opts.CommitsSort), sortKeys(b, opts.CommitsSort))
			})
		}
	}

	return groups
}

func groupNotes(commits []*commit.Commit, opts preset.WriterOptions) []NoteGroup {
	var groups []NoteGroup
	index := make(map[string]int)
	for _, c := range commits {
		for _, n := range c.Notes {
			i, ok := index[n.Title]
			if !ok {
				i = len(groups)
				index[n.Title] = i
				groups = append(groups, NoteGroup{Title: n.Title})
			}
			groups[i].Notes = append(groups[i].Notes, NoteEntry{Note: n, Commit: c})
		}
	}

	if opts.NoteGroupsSort == "title" {
		slices.SortStableFunc(groups, func(a, b NoteGroup) int {
			return strings.Compare(a.Title, b.Title)
		})
	}

	if opts.NotesSort != nil {
		for i := range groups {
			slices.SortStableFunc(groups[i].Notes, func(a, b NoteEntry) int {
				return opts.NotesSort(a.Note, b.Note)
			})
		}
	}

	return groups
}

func sortKeys(c *commit.Commit, fields []string) []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = c.Field(f)
	}
	return keys
}

// Render executes the main template of opts against the section.
func Render(section *Section, opts preset.WriterOptions) (string, error) {
	if strings.TrimSpace(opts.MainTemplate) == "" {
		return "", fmt.Errorf("main template is empty")
	}

	tpl, err := raymond.Parse(opts.MainTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing main template: %w", err)
	}
	tpl.RegisterPartials(map[string]string{
		"header": opts.HeaderPartial,
		"commit": opts.CommitPartial,
		"footer": opts.FooterPartial,
	})

	out, err := tpl.Exec(templateData(section))
	if err != nil {
		return "", fmt.Errorf("rendering changelog: %w", err)
	}
	return out, nil
}
