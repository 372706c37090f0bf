package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# emojilog configuration
# Environment variables override this file: EMOJILOG_<KEY>, e.g. EMOJILOG_TAG_PREFIX=v

templates_dir: ""                     # Directory with template.hbs, header.hbs, commit.hbs, footer.hbs (empty = built-in)
remote: origin                        # Remote used to build links
tag_prefix: v                         # Release tag prefix stripped before semver parsing
outfile: ""                           # Output file (empty or - = stdout)

# Grouping and sorting
group_by: type                        # type | emoji | scope | subject | header | hash | author
commit_groups_sort: title             # title | "" (first seen)
commits_sort: [scope, subject]        # Commit fields compared in order
note_groups_sort: title               # title | "" (first seen)

# Links
link_references: true                 # Link hashes, issues and the version compare view
host: ""                              # e.g. https://github.com (default: from remote)
owner: ""                             # default: from remote
repository: ""                        # default: from remote
repo_url: ""                          # Link base when there is no repository
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]any {
	return map[string]any{
		"templates_dir":      "",
		"remote":             "origin",
		"tag_prefix":         "v",
		"outfile":            "",
		"group_by":           "type",
		"commit_groups_sort": "title",
		"commits_sort":       []string{"scope", "subject"},
		"note_groups_sort":   "title",
		"link_references":    true,
		"host":               "",
		"owner":              "",
		"repository":         "",
		"repo_url":           "",
	}
}
