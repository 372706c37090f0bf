package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Write writes section to path. With prepend set, an existing file keeps
// its content below the new section and below its leading "# " title.
func Write(path, section string, prepend bool) error {
	content := section
	if prepend {
		existing, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		content = Prepend(string(existing), section)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Prepend places section above the entries of existing. A leading
// top-level heading (and the paragraph under it) stays at the top.
func Prepend(existing, section string) string {
	section = strings.TrimRight(section, "\n") + "\n"
	if strings.TrimSpace(existing) == "" {
		return section
	}

	head, rest := splitPreamble(existing)
	switch {
	case head == "":
		return section + "\n" + strings.TrimLeft(existing, "\n")
	case rest == "":
		return head + "\n" + section
	default:
		return head + "\n" + section + "\n" + rest
	}
}

// splitPreamble splits off a leading "# " heading and any text before
// the first "## " or "### " section heading.
func splitPreamble(s string) (head, rest string) {
	if !strings.HasPrefix(s, "# ") {
		return "", s
	}
	lines := strings.SplitAfter(s, "\n")
	for i, line := range lines {
		if i > 0 && strings.HasPrefix(line, "##") {
			return strings.TrimRight(strings.Join(lines[:i], ""), "\n") + "\n", strings.Join(lines[i:], "")
		}
	}
	return strings.TrimRight(s, "\n") + "\n", ""
}
