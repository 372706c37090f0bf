package changelog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/ariel-frischer/emojilog/internal/commit"
	"github.com/ariel-frischer/emojilog/internal/config"
	"github.com/ariel-frischer/emojilog/internal/git"
	"github.com/ariel-frischer/emojilog/internal/preset"
	"github.com/ariel-frischer/emojilog/internal/writer"
)

// UnreleasedVersion labels a section rendered without a release version.
const UnreleasedVersion = "Unreleased"

// debugLogger receives debug output when set. It is a no-op by default.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for the pipeline.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// InvalidVersionError is returned for a release version that is not semver.
type InvalidVersionError struct {
	Version string
	Err     error
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid release version %q: %v", e.Version, e.Err)
}

func (e *InvalidVersionError) Unwrap() error {
	return e.Err
}

// Options configures one Generate run.
type Options struct {
	// Dir is any path inside the repository. Empty means the working directory.
	Dir string
	// From is the exclusive start revision. Empty means the latest release
	// tag, or the whole history when there is none.
	From string
	// To is the inclusive end revision. Empty means HEAD.
	To string
	// Version is the release being described. Empty renders an unreleased
	// section.
	Version string
	// Title is an optional section title shown after the version.
	Title string
	// Date is the release date. Zero means now.
	Date time.Time

	Config *config.Configuration
	Preset *preset.Config
}

// Result is a rendered section plus the facts it was built from.
type Result struct {
	Markdown string
	Context  *preset.Context
	// Commits counts the commits read from history.
	Commits int
}

// Generate reads history and renders one changelog section.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, errors.New("changelog: configuration is required")
	}
	if opts.Preset == nil {
		return nil, errors.New("changelog: preset is required")
	}

	renderCtx, err := newContext(opts)
	if err != nil {
		return nil, err
	}

	reader, err := git.Open(opts.Dir)
	if err != nil {
		return nil, err
	}

	from := opts.From
	if from == "" {
		tag, err := reader.LatestTag(opts.Config.TagPrefix)
		if err != nil {
			return nil, err
		}
		if tag != nil {
			from = tag.Name
		}
	}
	renderCtx.PreviousTag = from

	if remote, err := reader.Remote(opts.Config.Remote); err == nil {
		renderCtx.Host = remote.Host
		renderCtx.Owner = remote.Owner
		renderCtx.Repository = remote.Repository
	} else {
		logDebug("[changelog] no remote links: %v", err)
	}
	opts.Config.ApplyContext(renderCtx)

	raw, err := reader.Commits(ctx, from, opts.To)
	if err != nil {
		return nil, err
	}

	commits, err := ParseCommits(raw, opts.Preset.ParserOpts)
	if err != nil {
		return nil, err
	}

	writerOpts := opts.Preset.WriterOpts
	opts.Config.Apply(&writerOpts)

	markdown, err := writer.Generate(renderCtx, commits, writerOpts)
	if err != nil {
		return nil, err
	}

	return &Result{Markdown: markdown, Context: renderCtx, Commits: len(raw)}, nil
}

// newContext builds the version and date part of the render context.
func newContext(opts Options) (*preset.Context, error) {
	c := preset.NewContext()
	c.Title = opts.Title

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}
	c.Date = date.Format(time.DateOnly)

	if opts.Version == "" {
		c.Version = UnreleasedVersion
		c.CurrentTag = opts.To
		if c.CurrentTag == "" {
			c.CurrentTag = "HEAD"
		}
		return c, nil
	}

	v, err := semver.NewVersion(opts.Version)
	if err != nil {
		return nil, &InvalidVersionError{Version: opts.Version, Err: err}
	}
	c.Version = v.String()
	c.IsPatch = v.Patch() != 0
	c.CurrentTag = opts.Config.TagPrefix + v.String()
	if opts.To != "" && !strings.EqualFold(opts.To, "HEAD") {
		c.CurrentTag = opts.To
	}
	return c, nil
}

// ParseCommits parses raw commits, skipping empty messages.
func ParseCommits(raw []git.RawCommit, opts commit.ParserOptions) ([]*commit.Commit, error) {
	parser, err := commit.NewParser(opts)
	if err != nil {
		return nil, fmt.Errorf("creating commit parser: %w", err)
	}

	commits := make([]*commit.Commit, 0, len(raw))
	for _, r := range raw {
		c, err := parser.Parse(r.Message)
		if errors.Is(err, commit.ErrEmptyMessage) {
			logDebug("[changelog] skipping %s: empty message", r.Hash)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("parsing commit %s: %w", r.Hash, err)
		}
		c.Hash = r.Hash
		c.Author = r.Author
		c.Date = r.Date
		commits = append(commits, c)
	}
	return commits, nil
}
