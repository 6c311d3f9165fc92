package markdown_test

import (
	"strings"
	"testing"

	"miftah/internal/platform/markdown"
)

func TestFrontmatterRoundTripKeepsKeyOrder(t *testing.T) {
	t.Parallel()
	fm, body, err := markdown.ParseFrontmatter("---\ntitle: Journal\ntags: [quran]\n---\n\n# Reading\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := fm.Set("streak", 4); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := fm.Set("title", "Reading journal"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got := strings.Join(fm.Keys(), ","); got != "title,tags,streak" {
		t.Fatalf("unexpected key order %s", got)
	}

	rendered, err := fm.Render(body)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\ntitle: Reading journal\n") || !strings.Contains(rendered, "streak: 4") {
		t.Fatalf("unexpected rendering: %s", rendered)
	}
	again, body, err := markdown.ParseFrontmatter(rendered)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	meta, err := again.Map()
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if meta["streak"] != 4 || meta["title"] != "Reading journal" {
		t.Fatalf("unexpected meta: %#v", meta)
	}
	if strings.TrimSpace(body) != "# Reading" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestParseFrontmatterEdgeCases(t *testing.T) {
	t.Parallel()
	fm, body, err := markdown.ParseFrontmatter("plain note")
	if err != nil || len(fm.Keys()) != 0 || body != "plain note" {
		t.Fatalf("plain note should pass through, got %v %q %v", fm.Keys(), body, err)
	}
	if out, _ := fm.Render(body); out != "plain note" {
		t.Fatalf("empty header should not be rendered: %q", out)
	}
	if _, _, err := markdown.ParseFrontmatter("---\nstreak: 1\nno closing"); err == nil {
		t.Fatalf("unterminated frontmatter should fail")
	}
	if _, _, err := markdown.ParseFrontmatter("---\n- a\n- b\n---\nbody"); err == nil {
		t.Fatalf("a list header should be rejected")
	}
}

func TestReplaceManagedBlock(t *testing.T) {
	t.Parallel()
	const start, end = "<!-- s -->", "<!-- e -->"

	if got := markdown.ReplaceManagedBlock("", start, end, "one"); got != start+"\none\n"+end+"\n" {
		t.Fatalf("empty body: %q", got)
	}
	withNotes := markdown.ReplaceManagedBlock("my notes", start, end, "one")
	if !strings.HasPrefix(withNotes, "my notes\n\n"+start) {
		t.Fatalf("block should be appended after user text: %q", withNotes)
	}
	replaced := markdown.ReplaceManagedBlock(withNotes+"tail\n", start, end, "two\n")
	if strings.Contains(replaced, "one") || !strings.Contains(replaced, start+"\ntwo\n"+end) {
		t.Fatalf("block not replaced: %q", replaced)
	}
	if !strings.HasPrefix(replaced, "my notes") || !strings.HasSuffix(replaced, "tail\n") {
		t.Fatalf("user text must survive: %q", replaced)
	}
}

func TestRenderTerminalHidesHeaderAndMarkers(t *testing.T) {
	t.Parallel()
	note := "---\nmiftah_streak: 3\n---\n# Reading progress\n\n<!-- miftah:stats:start -->\nStreak: 3 days\n<!-- miftah:stats:end -->\n"
	out, err := markdown.RenderTerminal(note, 60)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Reading progress") || !strings.Contains(out, "Streak: 3 days") {
		t.Fatalf("rendered note lost its content: %q", out)
	}
	if strings.Contains(out, "miftah_streak") || strings.Contains(out, "miftah:stats") {
		t.Fatalf("header and block markers should not be shown: %q", out)
	}
}
