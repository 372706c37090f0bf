// Package cli implements the emojilog command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/emojilog/internal/changelog"
	"github.com/ariel-frischer/emojilog/internal/config"
	clierrors "github.com/ariel-frischer/emojilog/internal/errors"
	"github.com/ariel-frischer/emojilog/internal/git"
	"github.com/ariel-frischer/emojilog/internal/preset"
	"github.com/ariel-frischer/emojilog/internal/writer"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupChangelog = "changelog"
	GroupInternal  = "internal"
)

var (
	configPath string
	debugFlag  bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "emojilog",
	Short: "Generate changelogs from emoji conventional commits",
	Long: `emojilog turns a git history whose commit headers look like

  <emoji> <type>(<scope>): <subject>

into a grouped markdown changelog. Commits are grouped into sections
such as "✨ Features" and "🐛 Bug Fixes", breaking changes are collected
at the top, and hashes, issues and mentions are linked to the remote.

Configuration is read from ~/.config/emojilog/config.yml, then
.emojilog/config.yml, then EMOJILOG_* environment variables.`,
	Example: `  emojilog generate                          # Unreleased changes since the latest tag
  emojilog generate --release-version 1.4.0  # Section for the 1.4.0 release
  emojilog generate -o CHANGELOG.md --prepend --release-version 1.4.0
  git log -1 --format=%B | emojilog parse    # Inspect how a message is parsed`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
		configureDebug(cmd.ErrOrStderr(), debugFlag)
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupChangelog, Title: "Changelog Commands:"},
		&cobra.Group{ID: GroupInternal, Title: "Other Commands:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Project config file (default: .emojilog/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// Execute runs the root command. The returned error is already reported;
// pass it to ExitCode for the process status.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx. Commands report their own
// failures, so anything else comes from cobra's argument and flag checks.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !isReported(err) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Run 'emojilog --help' for usage.\n")
		return NewExitError(ExitInvalidArguments)
	}
	return err
}

func isReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// configureDebug routes package debug output to w when enabled.
func configureDebug(w io.Writer, enabled bool) {
	var logger func(format string, args ...any)
	if enabled {
		logger = func(format string, args ...any) {
			fmt.Fprintf(w, "[DEBUG] "+format+"\n", args...)
		}
	}
	git.SetDebugLogger(logger)
	preset.SetDebugLogger(logger)
	writer.SetDebugLogger(logger)
	changelog.SetDebugLogger(logger)
}

// report prints cliErr to the command's stderr and returns the matching
// ExitError.
func report(cmd *cobra.Command, cliErr *clierrors.CLIError) error {
	clierrors.FprintError(cmd.ErrOrStderr(), cliErr)
	return NewExitError(exitCodeFor(cliErr.Category))
}

// loadConfig loads the layered configuration honoring --config.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, clierrors.ConfigParseError(err)
	}
	return cfg, nil
}

// loadPreset loads the template set from dir, or the built-in one.
func loadPreset(ctx context.Context, dir string) (*preset.Config, error) {
	if dir == "" {
		p, err := preset.Load(ctx)
		if err != nil {
			return nil, clierrors.Wrap(err, clierrors.Runtime, "loading built-in templates")
		}
		return p, nil
	}
	p, err := preset.LoadDir(ctx, dir)
	if err != nil {
		return nil, clierrors.TemplatesNotLoaded(dir, err)
	}
	return p, nil
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func stderrFd() int {
	return int(os.Stderr.Fd())
}
