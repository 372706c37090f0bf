package preset

// Context holds the render-time values for one changelog section.
// A fresh Context is built for every render.
type Context struct {
	Host       string `yaml:"host,omitempty" json:"host,omitempty"`
	Owner      string `yaml:"owner,omitempty" json:"owner,omitempty"`
	Repository string `yaml:"repository,omitempty" json:"repository,omitempty"`
	RepoURL    string `yaml:"repoUrl,omitempty" json:"repoUrl,omitempty"`

	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Date        string `yaml:"date,omitempty" json:"date,omitempty"`
	IsPatch     bool   `yaml:"isPatch,omitempty" json:"isPatch,omitempty"`
	PreviousTag string `yaml:"previousTag,omitempty" json:"previousTag,omitempty"`
	CurrentTag  string `yaml:"currentTag,omitempty" json:"currentTag,omitempty"`

	// LinkReferences enables hash, reference and compare links in templates.
	LinkReferences bool `yaml:"linkReferences" json:"linkReferences"`

	// CommitPath and IssuePath are the URL path segments for commits and
	// issues under the base URL.
	CommitPath string `yaml:"commit" json:"commit"`
	IssuePath  string `yaml:"issue" json:"issue"`
}

// NewContext returns a Context with the GitHub-style path segments.
func NewContext() *Context {
	return &Context{
		LinkReferences: true,
		CommitPath:     "commit",
		IssuePath:      "issues",
	}
}

// BaseURL is the resolved repository link target: Hosted, DirectURL or Unset.
type BaseURL interface {
	// URL returns the base URL and whether one is available.
	URL() (string, bool)
}

// Hosted is a repository addressed as host/owner/repo.
type Hosted struct {
	Host  string
	Owner string
	Repo  string
}

// URL implements BaseURL.
func (h Hosted) URL() (string, bool) {
	return h.Host + "/" + h.Owner + "/" + h.Repo, true
}

// DirectURL is a repository addressed by an explicit URL.
type DirectURL struct {
	Address string
}

// URL implements BaseURL.
func (d DirectURL) URL() (string, bool) {
	return d.Address, d.Address != ""
}

// Unset means no links can be built.
type Unset struct{}

// URL implements BaseURL.
func (Unset) URL() (string, bool) {
	return "", false
}

// BaseURL resolves the link base. A repository name selects the hosted form
// even when host or owner are empty; otherwise RepoURL is used.
func (c *Context) BaseURL() BaseURL {
	switch {
	case c == nil:
		return Unset{}
	case c.Repository != "":
		return Hosted{Host: c.Host, Owner: c.Owner, Repo: c.Repository}
	case c.RepoURL != "":
		return DirectURL{Address: c.RepoURL}
	default:
		return Unset{}
	}
}

// IssueURL returns the link for an issue number, if a base URL resolves.
func (c *Context) IssueURL(issue string) (string, bool) {
	base, ok := c.BaseURL().URL()
	if !ok {
		return "", false
	}
	return base + "/" + c.issuePath() + "/" + issue, true
}

// CommitURL returns the link for a commit hash, if a base URL resolves.
func (c *Context) CommitURL(hash string) (string, bool) {
	base, ok := c.BaseURL().URL()
	if !ok {
		return "", false
	}
	path := c.CommitPath
	if path == "" {
		path = "commit"
	}
	return base + "/" + path + "/" + hash, true
}

// CompareURL returns the link comparing PreviousTag to CurrentTag.
func (c *Context) CompareURL() (string, bool) {
	if c.PreviousTag == "" || c.CurrentTag == "" {
		return "", false
	}
	base, ok := c.BaseURL().URL()
	if !ok {
		return "", false
	}
	return base + "/compare/" + c.PreviousTag + "..." + c.CurrentTag, true
}

func (c *Context) issuePath() string {
	if c.IssuePath == "" {
		return "issues"
	}
	return c.IssuePath
}
