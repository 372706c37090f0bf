package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/emojilog/internal/changelog"
	"github.com/ariel-frischer/emojilog/internal/commit"
	clierrors "github.com/ariel-frischer/emojilog/internal/errors"
	"github.com/ariel-frischer/emojilog/internal/preset"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	parseJSONFlag   bool
	parsePrettyFlag bool
	parseRawFlag    bool
)

// parseResult is what parse prints: the parser output and the commit as
// the changelog would show it.
type parseResult struct {
	Parsed      *commit.Commit `yaml:"parsed" json:"parsed"`
	Transformed *commit.Commit `yaml:"transformed,omitempty" json:"transformed,omitempty"`
	Discarded   bool           `yaml:"discarded" json:"discarded"`
}

var parseCmd = &cobra.Command{
	Use:   "parse [message line...]",
	Short: "Show how a commit message is parsed and transformed",
	Long: `Parse a commit message with the emoji conventional-commit preset and
print the parsed commit and the transformed commit the changelog would
show. Each argument is one line of the message; without arguments the
message is read from stdin.

Links in the transformed commit use the host, owner, repository and
repo_url config keys.`,
	Example: `  emojilog parse "✨ feat(api): add export" "" "Closes #12"
  git log -1 --format=%B | emojilog parse --json
  emojilog parse --pretty "🐛 fix: crash on empty list"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(cmd, args)
	},
}

func init() {
	parseCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&parseJSONFlag, "json", false, "Print JSON instead of YAML")
	parseCmd.Flags().BoolVar(&parsePrettyFlag, "pretty", false, "Print the transformed commit as an aligned, colored field list")
	parseCmd.Flags().BoolVar(&parseRawFlag, "raw", false, "Skip the transform")
	parseCmd.MarkFlagsMutuallyExclusive("json", "pretty")
}

func runParse(cmd *cobra.Command, args []string) error {
	message, err := readMessage(cmd.InOrStdin(), args)
	if err != nil {
		return reportErr(cmd, err)
	}
	if strings.TrimSpace(message) == "" {
		return report(cmd, clierrors.EmptyCommitMessage())
	}

	cfg, err := loadConfig()
	if err != nil {
		return reportErr(cmd, err)
	}

	parser, err := commit.NewParser(preset.NewParserOptions())
	if err != nil {
		return reportErr(cmd, err)
	}
	parsed, err := parser.Parse(message)
	if err != nil {
		return report(cmd, clierrors.EmptyCommitMessage())
	}

	result := parseResult{Parsed: parsed}
	if !parseRawFlag {
		ctx := preset.NewContext()
		cfg.ApplyContext(ctx)
		transformed, ok := preset.Transform(parsed.Clone(), ctx)
		result.Transformed = transformed
		result.Discarded = !ok
	}

	if err := writeParseResult(cmd.OutOrStdout(), result); err != nil {
		return reportErr(cmd, err)
	}
	return nil
}

func writeParseResult(w io.Writer, result parseResult) error {
	switch {
	case parsePrettyFlag:
		shown := result.Parsed
		if !parseRawFlag {
			shown = result.Transformed
		}
		return changelog.FormatCommit(shown, w, changelog.FormatOptions{})
	case parseJSONFlag:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}
}

// readMessage joins args as lines, or reads stdin when there are none.
func readMessage(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, "\n"), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
