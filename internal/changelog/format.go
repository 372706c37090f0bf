package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ariel-frischer/emojilog/internal/commit"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// FieldStyle defines the color and label for one displayed commit field.
type FieldStyle struct {
	Color *color.Color
	Label string
}

// fieldStyles maps displayed commit parts to their terminal styling.
var fieldStyles = map[string]FieldStyle{
	"type":       {Color: color.New(color.FgGreen, color.Bold), Label: "type"},
	"scope":      {Color: color.New(color.FgBlue), Label: "scope"},
	"subject":    {Color: color.New(color.Bold), Label: "subject"},
	"hash":       {Color: color.New(color.FgYellow), Label: "hash"},
	"notes":      {Color: color.New(color.FgRed, color.Bold), Label: "notes"},
	"references": {Color: color.New(color.FgMagenta), Label: "references"},
	"mentions":   {Color: color.New(color.FgCyan), Label: "mentions"},
	"body":       {Color: color.New(color.Faint), Label: "body"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatCommit writes a parsed commit to w as an aligned field list.
// A nil commit is reported as discarded.
func FormatCommit(c *commit.Commit, w io.Writer, opts FormatOptions) error {
	if c == nil {
		_, err := fmt.Fprintln(w, "(discarded)")
		return err
	}

	width := resolveWidth(opts.MaxWidth)

	typ := c.Type
	if c.Emoji != "" && !strings.HasPrefix(typ, c.Emoji) {
		typ = c.Emoji + " " + typ
	}

	fields := []struct {
		key   string
		value string
	}{
		{"type", typ},
		{"scope", c.Scope},
		{"subject", c.Subject},
		{"hash", c.Hash},
		{"notes", joinNotes(c.Notes)},
		{"references", joinReferences(c.References)},
		{"mentions", strings.Join(c.Mentions, ", ")},
		{"body", c.Body},
	}

	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := writeField(f.key, f.value, w, opts, width); err != nil {
			return fmt.Errorf("writing %s: %w", f.key, err)
		}
	}
	return nil
}

const labelWidth = 12

// writeField writes one "label  value" line, wrapping long values.
func writeField(key, value string, w io.Writer, opts FormatOptions, width int) error {
	style := fieldStyles[key]
	label := fmt.Sprintf("%-*s", labelWidth, style.Label)
	wrapped := wrapText(value, width-labelWidth, strings.Repeat(" ", labelWidth))

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", label, wrapped)
		return err
	}

	faint := color.New(color.Faint).SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", faint(label), style.Color.Sprint(wrapped))
	return err
}

func joinNotes(notes []commit.Note) string {
	parts := make([]string, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, n.Title+": "+n.Text)
	}
	return strings.Join(parts, "; ")
}

func joinReferences(refs []commit.Reference) string {
	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		ref := r.Prefix + r.Issue
		if r.Owner != "" && r.Repository != "" {
			ref = r.Owner + "/" + r.Repository + ref
		}
		if r.Action != "" {
			ref = strings.ToLower(r.Action) + " " + ref
		}
		parts = append(parts, ref)
	}
	return strings.Join(parts, ", ")
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation
// lines. Existing line breaks are kept.
func wrapText(text string, maxWidth int, indent string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, wrapLine(line, maxWidth)...)
	}
	return strings.Join(out, "\n"+indent)
}

func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 || len(line) <= maxWidth {
		return []string{line}
	}

	var lines []string
	remaining := line
	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}
		for breakPoint > 1 && !utf8.RuneStart(remaining[breakPoint]) {
			breakPoint--
		}
		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}
	if remaining != "" {
		lines = append(lines, remaining)
	}
	return lines
}
