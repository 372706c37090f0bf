package writer

import (
	"github.com/ariel-frischer/emojilog/internal/commit"
	"github.com/ariel-frischer/emojilog/internal/preset"
)

// templateData flattens a section into the map the templates see. Link
// URLs are precomputed here so templates never need the root context.
func templateData(s *Section) map[string]any {
	ctx := s.Context
	if ctx == nil {
		ctx = preset.NewContext()
	}

	data := map[string]any{
		"host":           ctx.Host,
		"owner":          ctx.Owner,
		"repository":     ctx.Repository,
		"repoUrl":        ctx.RepoURL,
		"version":        ctx.Version,
		"title":          ctx.Title,
		"date":           ctx.Date,
		"isPatch":        ctx.IsPatch,
		"previousTag":    ctx.PreviousTag,
		"currentTag":     ctx.CurrentTag,
		"linkReferences": ctx.LinkReferences,
	}
	if ctx.LinkReferences {
		if url, ok := ctx.CompareURL(); ok {
			data["versionUrl"] = url
		}
	}

	groups := make([]map[string]any, 0, len(s.CommitGroups))
	for _, g := range s.CommitGroups {
		commits := make([]map[string]any, 0, len(g.Commits))
		for _, c := range g.Commits {
			commits = append(commits, commitData(c, ctx))
		}
		groups = append(groups, map[string]any{
			"title":   g.Title,
			"commits": commits,
		})
	}
	data["commitGroups"] = groups

	noteGroups := make([]map[string]any, 0, len(s.NoteGroups))
	for _, g := range s.NoteGroups {
		notes := make([]map[string]any, 0, len(g.Notes))
		for _, n := range g.Notes {
			notes = append(notes, map[string]any{
				"title":  n.Title,
				"text":   n.Text,
				"commit": commitData(n.Commit, ctx),
			})
		}
		noteGroups = append(noteGroups, map[string]any{
			"title": g.Title,
			"notes": notes,
		})
	}
	data["noteGroups"] = noteGroups

	return data
}

func commitData(c *commit.Commit, ctx *preset.Context) map[string]any {
	d := map[string]any{
		"type":    c.Type,
		"emoji":   c.Emoji,
		"scope":   c.Scope,
		"subject": c.Subject,
		"header":  c.Header,
		"body":    c.Body,
		"footer":  c.Footer,
		"hash":    c.Hash,
		"author":  c.Author,
	}
	if ctx.LinkReferences && c.Hash != "" {
		if url, ok := ctx.CommitURL(c.Hash); ok {
			d["hashUrl"] = url
		}
	}

	refs := make([]map[string]any, 0, len(c.References))
	for _, r := range c.References {
		ref := map[string]any{
			"action":     r.Action,
			"owner":      r.Owner,
			"repository": r.Repository,
			"issue":      r.Issue,
			"prefix":     r.Prefix,
			"raw":        r.Raw,
		}
		if ctx.LinkReferences {
			if url, ok := referenceURL(r, ctx); ok {
				ref["url"] = url
			}
		}
		refs = append(refs, ref)
	}
	d["references"] = refs

	notes := make([]map[string]any, 0, len(c.Notes))
	for _, n := range c.Notes {
		notes = append(notes, map[string]any{"title": n.Title, "text": n.Text})
	}
	d["notes"] = notes

	return d
}

// referenceURL links a reference, pointing cross-repository references at
// their own repository on the same host.
func referenceURL(r commit.Reference, ctx *preset.Context) (string, bool) {
	if r.Owner != "" && r.Repository != "" {
		if ctx.Host == "" {
			return "", false
		}
		other := *ctx
		other.Owner = r.Owner
		other.Repository = r.Repository
		return other.IssueURL(r.Issue)
	}
	return ctx.IssueURL(r.Issue)
}
