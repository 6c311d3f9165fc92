package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestProgressCommandsPersistBetweenInvocations(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MIFTAH_LOG_LEVEL", "error")

	if _, err := run(t, "--home", home, "progress", "update", "18", "10"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := run(t, "--home", home, "progress", "goal", "20"); err != nil {
		t.Fatalf("goal: %v", err)
	}
	out, err := run(t, "--home", home, "progress", "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "position: 18:10") || !strings.Contains(out, "daily goal: 20 verses") {
		t.Fatalf("unexpected show output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(home, ".miftah", "miftah.db")); err != nil {
		t.Fatalf("expected sqlite database: %v", err)
	}
}

func TestGoalOutOfRangeFails(t *testing.T) {
	t.Setenv("MIFTAH_LOG_LEVEL", "error")
	if _, err := run(t, "--ephemeral", "--home", t.TempDir(), "progress", "goal", "0"); err == nil {
		t.Fatalf("goal 0 must be rejected")
	}
	if _, err := run(t, "--ephemeral", "--home", t.TempDir(), "progress", "update", "x", "1"); err == nil {
		t.Fatalf("non-numeric surah must be rejected")
	}
}

func TestSessionRecordAndExport(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MIFTAH_LOG_LEVEL", "error")

	if _, err := run(t, "--home", home, "session", "record", "36", "1", "12", "--minutes", "9"); err != nil {
		t.Fatalf("record: %v", err)
	}
	out, err := run(t, "--home", home, "stats", "today")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if !strings.Contains(out, "verses=12 time=9min goal=100%") {
		t.Fatalf("unexpected today output: %s", out)
	}

	note := filepath.Join(home, "notes", "progress.md")
	if _, err := run(t, "--home", home, "stats", "export", "--out", note); err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, err := os.ReadFile(note)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	if !strings.Contains(string(raw), "miftah_total_reading_minutes: 9") {
		t.Fatalf("note missing frontmatter:\n%s", raw)
	}
}

func TestSessionEndWithoutStart(t *testing.T) {
	t.Setenv("MIFTAH_LOG_LEVEL", "error")
	_, err := run(t, "--home", t.TempDir(), "session", "end", "5")
	if err == nil || !strings.Contains(err.Error(), "no active reading session") {
		t.Fatalf("expected no active session error, got %v", err)
	}
}

func TestExportToStdoutRendersUnlessRaw(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MIFTAH_LOG_LEVEL", "error")
	if _, err := run(t, "--home", home, "session", "record", "1", "1", "7", "--minutes", "9"); err != nil {
		t.Fatalf("record: %v", err)
	}

	rendered, err := run(t, "--home", home, "stats", "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(rendered, "Time spent: 9 min") || strings.Contains(rendered, "miftah_total_reading_minutes") {
		t.Fatalf("rendered export should show the body only:\n%s", rendered)
	}

	raw, err := run(t, "--home", home, "stats", "export", "--raw")
	if err != nil {
		t.Fatalf("export --raw: %v", err)
	}
	if !strings.HasPrefix(raw, "---\n") || !strings.Contains(raw, "miftah_total_reading_minutes: 9") {
		t.Fatalf("raw export should be the plain note:\n%s", raw)
	}
}

func TestBookmarkCommands(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MIFTAH_LOG_LEVEL", "error")

	if _, err := run(t, "--home", home, "bookmark", "add", "2", "255", "--name", "Al-Baqarah", "--note", "ayat al-kursi"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := run(t, "--home", home, "bookmark", "add", "2", "255")
	if err != nil || !strings.Contains(out, "already bookmarked") {
		t.Fatalf("duplicate add should be reported, got %q (%v)", out, err)
	}
	if _, err := run(t, "--home", home, "bookmark", "add", "18", "10"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err = run(t, "--home", home, "bookmark", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "2:255 Al-Baqarah") || !strings.Contains(out, "ayat al-kursi") || !strings.Contains(out, "18:10") {
		t.Fatalf("unexpected list output:\n%s", out)
	}

	if out, err := run(t, "--home", home, "bookmark", "remove", "18", "10"); err != nil || !strings.Contains(out, "removed 18:10") {
		t.Fatalf("remove: %q (%v)", out, err)
	}
	if _, err := run(t, "--home", home, "bookmark", "clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if out, _ := run(t, "--home", home, "bookmark", "list"); !strings.Contains(out, "no bookmarks") {
		t.Fatalf("expected empty list after clear, got:\n%s", out)
	}
	if _, err := run(t, "--home", home, "bookmark", "add", "115", "1"); err == nil {
		t.Fatalf("surah 115 must be rejected")
	}
}
