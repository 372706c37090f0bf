package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/emojilog/internal/config"
	"github.com/ariel-frischer/emojilog/internal/preset"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	presetTemplatesFlag      bool
	presetConfigTemplateFlag bool
)

// presetView is the YAML form of the effective preset.
type presetView struct {
	Parser struct {
		HeaderPattern        string   `yaml:"headerPattern"`
		HeaderCorrespondence []string `yaml:"headerCorrespondence"`
		MergePattern         string   `yaml:"mergePattern"`
		RevertPattern        string   `yaml:"revertPattern"`
		RevertCorrespondence []string `yaml:"revertCorrespondence"`
		NoteKeywords         []string `yaml:"noteKeywords"`
		ReferenceActions     []string `yaml:"referenceActions"`
		IssuePrefixes        []string `yaml:"issuePrefixes"`
	} `yaml:"parser"`
	Writer struct {
		GroupBy          string   `yaml:"groupBy"`
		CommitGroupsSort string   `yaml:"commitGroupsSort"`
		CommitsSort      []string `yaml:"commitsSort"`
		NoteGroupsSort   string   `yaml:"noteGroupsSort"`
		NotesSort        string   `yaml:"notesSort"`
	} `yaml:"writer"`
	Types     []preset.TypeSection `yaml:"types"`
	Templates string               `yaml:"templates"`
}

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Print the effective parser and writer options",
	Long: `Print the effective preset as YAML: the parser patterns, the writer
grouping and sorting after configuration is applied, and the commit
type table.

Use --templates to print the four template files instead, for example
to start a custom templates directory.`,
	Example: `  emojilog preset
  emojilog preset --templates
  emojilog preset --config-template > .emojilog/config.yml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreset(cmd)
	},
}

func init() {
	presetCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(presetCmd)

	presetCmd.Flags().BoolVar(&presetTemplatesFlag, "templates", false, "Print the template files")
	presetCmd.Flags().BoolVar(&presetConfigTemplateFlag, "config-template", false, "Print a documented config file")
	presetCmd.MarkFlagsMutuallyExclusive("templates", "config-template")
}

func runPreset(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	if presetConfigTemplateFlag {
		if _, err := fmt.Fprint(out, config.GetDefaultConfigTemplate()); err != nil {
			return reportErr(cmd, err)
		}
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return reportErr(cmd, err)
	}
	p, err := loadPreset(commandContext(cmd), cfg.TemplatesDir)
	if err != nil {
		return reportErr(cmd, err)
	}

	if presetTemplatesFlag {
		if err := writeTemplates(out, p.WriterOpts); err != nil {
			return reportErr(cmd, err)
		}
		return nil
	}

	opts := p.WriterOpts
	cfg.Apply(&opts)

	var view presetView
	po := p.ParserOpts
	view.Parser.HeaderPattern = po.HeaderPattern.String()
	view.Parser.HeaderCorrespondence = po.HeaderCorrespondence
	if po.MergePattern != nil {
		view.Parser.MergePattern = po.MergePattern.String()
	}
	if po.RevertPattern != nil {
		view.Parser.RevertPattern = po.RevertPattern.String()
	}
	view.Parser.RevertCorrespondence = po.RevertCorrespondence
	view.Parser.NoteKeywords = po.NoteKeywords
	view.Parser.ReferenceActions = po.ReferenceActions
	view.Parser.IssuePrefixes = po.IssuePrefixes

	view.Writer.GroupBy = opts.GroupBy
	view.Writer.CommitGroupsSort = opts.CommitGroupsSort
	view.Writer.CommitsSort = opts.CommitsSort
	view.Writer.NoteGroupsSort = opts.NoteGroupsSort
	view.Writer.NotesSort = "title, text"

	view.Types = preset.TypeSections()
	view.Templates = "built-in"
	if cfg.TemplatesDir != "" {
		view.Templates = cfg.TemplatesDir
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return reportErr(cmd, fmt.Errorf("encoding yaml: %w", err))
	}
	if err := enc.Close(); err != nil {
		return reportErr(cmd, err)
	}
	return nil
}

func writeTemplates(w io.Writer, opts preset.WriterOptions) error {
	files := []struct {
		name string
		body string
	}{
		{preset.MainTemplateFile, opts.MainTemplate},
		{preset.HeaderPartialFile, opts.HeaderPartial},
		{preset.CommitPartialFile, opts.CommitPartial},
		{preset.FooterPartialFile, opts.FooterPartial},
	}
	for i, f := range files {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if _, err := fmt.Fprintf(w, "==> %s <==\n%s", f.name, f.body); err != nil {
			return err
		}
	}
	return nil
}
