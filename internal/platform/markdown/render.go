package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderTerminal styles a note for terminal output. The frontmatter header
// and whole-line HTML comments are left out; width 0 disables wrapping.
func RenderTerminal(content string, width int) (string, error) {
	_, body, err := ParseFrontmatter(content)
	if err != nil {
		return "", err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("new markdown renderer: %w", err)
	}
	out, err := r.Render(stripCommentLines(body))
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

func stripCommentLines(body string) string {
	lines := strings.Split(body, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "<!--") && strings.HasSuffix(trimmed, "-->") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
