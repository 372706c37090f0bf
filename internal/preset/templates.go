package preset

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sync/errgroup"
)

//go:embed templates/*.hbs
var embeddedTemplates embed.FS

// Template file names, relative to the templates directory.
const (
	MainTemplateFile  = "template.hbs"
	HeaderPartialFile = "header.hbs"
	CommitPartialFile = "commit.hbs"
	FooterPartialFile = "footer.hbs"
)

// TemplateFiles lists the template files a templates directory must contain.
func TemplateFiles() []string {
	return []string{MainTemplateFile, HeaderPartialFile, CommitPartialFile, FooterPartialFile}
}

// TemplateError reports a template file that could not be read.
type TemplateError struct {
	Name string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("reading template %s: %v", e.Name, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// IsTemplateError returns true if the error is a TemplateError.
func IsTemplateError(err error) bool {
	var te *TemplateError
	return errors.As(err, &te)
}

// Load assembles the preset from the embedded templates.
func Load(ctx context.Context) (*Config, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("opening embedded templates: %w", err)
	}
	return LoadFS(ctx, sub)
}

// LoadDir assembles the preset from template files in dir.
func LoadDir(ctx context.Context, dir string) (*Config, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening templates directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("templates path %s is not a directory", dir)
	}
	return LoadFS(ctx, os.DirFS(dir))
}

// LoadFS reads the four templates from fsys concurrently. The Config is
// returned only when every read succeeded; the first failure cancels the
// remaining reads and is returned alone.
func LoadFS(ctx context.Context, fsys fs.FS) (*Config, error) {
	writer := NewWriterOptions()

	slots := []struct {
		name string
		dst  *string
	}{
		{MainTemplateFile, &writer.MainTemplate},
		{HeaderPartialFile, &writer.HeaderPartial},
		{CommitPartialFile, &writer.CommitPartial},
		{FooterPartialFile, &writer.FooterPartial},
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, slot := range slots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, slot.name)
			if err != nil {
				return &TemplateError{Name: slot.name, Err: err}
			}
			*slot.dst = string(data)
			logDebug("[preset] loaded %s (%d bytes)", slot.name, len(data))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Config{
		ParserOpts: NewParserOptions(),
		WriterOpts: writer,
	}, nil
}

// EmbeddedTemplate returns the raw content of an embedded template file.
func EmbeddedTemplate(name string) ([]byte, error) {
	return embeddedTemplates.ReadFile("templates/" + name)
}
