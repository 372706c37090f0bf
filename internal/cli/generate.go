package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ariel-frischer/emojilog/internal/changelog"
	clierrors "github.com/ariel-frischer/emojilog/internal/errors"
	"github.com/ariel-frischer/emojilog/internal/git"
	"github.com/ariel-frischer/emojilog/internal/progress"
	"github.com/ariel-frischer/emojilog/internal/watch"
	"github.com/spf13/cobra"
)

type generateFlags struct {
	from         string
	to           string
	version      string
	title        string
	outfile      string
	prepend      bool
	templatesDir string
	watch        bool
	repoDir      string
}

var genFlags generateFlags

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Render a changelog section from git history",
	Long: `Render a changelog section from the commits between two revisions.

By default the range starts after the highest semver tag carrying the
configured tag prefix and ends at HEAD. Without --release-version the
section is titled "Unreleased".

Links to commits, issues and the compare view are built from the
configured remote (origin by default), or from the host, owner,
repository and repo_url config keys.`,
	Example: `  emojilog generate
  emojilog generate --release-version 2.1.0 -o CHANGELOG.md --prepend
  emojilog generate --from v1.0.0 --to v1.1.0 --release-version 1.1.0
  emojilog generate --templates ./changelog-templates --watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, genFlags)
	},
}

func init() {
	generateCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.StringVar(&genFlags.from, "from", "", "Start revision, exclusive (default: latest release tag)")
	f.StringVar(&genFlags.to, "to", "", "End revision, inclusive (default: HEAD)")
	f.StringVarP(&genFlags.version, "release-version", "r", "", "Version of the release being described (semver)")
	f.StringVar(&genFlags.title, "title", "", "Optional section title")
	f.StringVarP(&genFlags.outfile, "outfile", "o", "", "Write to file instead of stdout (config: outfile)")
	f.BoolVarP(&genFlags.prepend, "prepend", "p", false, "Insert the section at the top of the existing outfile")
	f.StringVarP(&genFlags.templatesDir, "templates", "t", "", "Directory with custom templates (config: templates_dir)")
	f.BoolVarP(&genFlags.watch, "watch", "w", false, "Re-render when template files change")
	f.StringVarP(&genFlags.repoDir, "repo", "C", "", "Repository path (default: current directory)")
}

func runGenerate(cmd *cobra.Command, flags generateFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportErr(cmd, err)
	}

	if flags.templatesDir == "" {
		flags.templatesDir = cfg.TemplatesDir
	}
	if flags.outfile == "" {
		flags.outfile = cfg.Outfile
	}
	toStdout := flags.outfile == "" || flags.outfile == "-"

	if flags.prepend && toStdout {
		return report(cmd, clierrors.InvalidFlagCombination("--prepend", "--prepend needs --outfile (or the outfile config key)"))
	}
	if flags.watch && flags.templatesDir == "" {
		return report(cmd, clierrors.InvalidFlagCombination("--watch", "--watch needs --templates (or the templates_dir config key)"))
	}
	if flags.watch && flags.prepend {
		return report(cmd, clierrors.InvalidFlagCombination("--watch, --prepend", "re-rendering would prepend the section again on every change"))
	}

	spin := progress.NewSpinner(cmd.ErrOrStderr(), progress.DetectTerminalCapabilities(stderrFd()))

	render := func(ctx context.Context) error {
		p, err := loadPreset(ctx, flags.templatesDir)
		if err != nil {
			return err
		}

		spin.Start("Reading git history")
		result, err := changelog.Generate(ctx, changelog.Options{
			Dir:     flags.repoDir,
			From:    flags.from,
			To:      flags.to,
			Version: flags.version,
			Title:   flags.title,
			Config:  cfg,
			Preset:  p,
		})
		if err != nil {
			spin.Fail("Changelog generation failed")
			return generateError(flags, err)
		}
		spin.Success(fmt.Sprintf("Rendered %s from %d commits", result.Context.Version, result.Commits))

		if toStdout {
			_, err := fmt.Fprint(cmd.OutOrStdout(), result.Markdown)
			return err
		}
		if err := changelog.Write(flags.outfile, result.Markdown, flags.prepend); err != nil {
			return clierrors.FileNotWritable(flags.outfile, err)
		}
		return nil
	}

	if err := render(commandContext(cmd)); err != nil {
		return reportErr(cmd, err)
	}
	if !flags.watch {
		return nil
	}

	return watchTemplates(cmd, flags.templatesDir, render)
}

// watchTemplates re-renders on template changes until interrupted.
func watchTemplates(cmd *cobra.Command, dir string, render func(context.Context) error) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(watch.DefaultDebounce, dir)
	if err != nil {
		return reportErr(cmd, clierrors.TemplatesNotLoaded(dir, err))
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", dir)
	err = w.Run(ctx, func(path string) error {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s changed, re-rendering\n", filepath.Base(path))
		return render(ctx)
	}, func(err error) {
		if cliErr := clierrors.AsCLIError(err); cliErr != nil {
			clierrors.FprintError(cmd.ErrOrStderr(), cliErr)
			return
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	})
	if err != nil {
		return reportErr(cmd, err)
	}
	return nil
}

// generateError classifies a pipeline failure.
func generateError(flags generateFlags, err error) error {
	var versionErr *changelog.InvalidVersionError
	switch {
	case errors.As(err, &versionErr):
		return clierrors.InvalidVersion(versionErr.Version, versionErr.Err)
	case git.IsNotRepository(err):
		path := flags.repoDir
		if path == "" {
			path = "."
		}
		return clierrors.NotGitRepository(path, err)
	default:
		return clierrors.GenerationFailed(err)
	}
}

// reportErr reports CLIErrors with their category and anything else as a
// generation failure.
func reportErr(cmd *cobra.Command, err error) error {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return report(cmd, cliErr)
	}
	return report(cmd, clierrors.Wrap(err, clierrors.Runtime, ""))
}
