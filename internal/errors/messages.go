package errors

import "fmt"

// NotGitRepository reports a generate run outside any repository.
func NotGitRepository(path string, err error) *CLIError {
	return New(Prerequisite, fmt.Sprintf("not a git repository: %s", path),
		WithCause(err),
		WithRemediation(
			"Run emojilog from inside a git repository, or pass --repo <dir>",
			"Or initialize one with: git init",
		))
}

// TemplatesNotLoaded reports a templates directory that could not be read.
func TemplatesNotLoaded(dir string, err error) *CLIError {
	return Wrap(err, Prerequisite, fmt.Sprintf("failed to load templates from %s", dir),
		WithRemediation(
			"The directory must contain template.hbs, header.hbs, commit.hbs and footer.hbs",
			"Print the built-in templates with: emojilog preset --templates",
			"Or unset templates_dir to use the built-in templates",
		))
}

// InvalidVersion reports a --release-version that is not semver.
func InvalidVersion(version string, err error) *CLIError {
	return Wrap(err, Argument, fmt.Sprintf("invalid release version %q", version),
		WithUsage("emojilog generate --release-version 1.2.3"),
		WithRemediation("Use a semantic version such as 1.2.3 or v1.2.3-rc.1"))
}

// ConfigParseError reports a configuration that failed to load or validate.
func ConfigParseError(err error) *CLIError {
	return Wrap(err, Configuration, "failed to load configuration",
		WithRemediation(
			"Check .emojilog/config.yml and ~/.config/emojilog/config.yml",
			"Check EMOJILOG_* environment variables",
			"Print a documented config with: emojilog preset --config-template",
		))
}

// InvalidFlagCombination reports flags that cannot be used together.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return New(Argument, fmt.Sprintf("invalid flag combination: %s", flags),
		WithRemediation(reason))
}

// EmptyCommitMessage reports parse input without a message.
func EmptyCommitMessage() *CLIError {
	return New(Argument, "commit message is required",
		WithUsage("emojilog parse \"✨ feat(api): add endpoint\""),
		WithRemediation("Pass the message as arguments or pipe it on stdin"))
}

// FileNotWritable reports an outfile that cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return Wrap(err, Runtime, fmt.Sprintf("cannot write %s", path),
		WithRemediation(
			"Check file permissions",
			"Check that --outfile does not name a directory",
		))
}

// GenerationFailed reports a failure while reading history or rendering.
func GenerationFailed(err error) *CLIError {
	return Wrap(err, Runtime, "generating changelog",
		WithRemediation(
			"Check that --from and --to name existing revisions",
			"Run with --debug for details",
		))
}
