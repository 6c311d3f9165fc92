package components_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"miftah/internal/ui/components"
)

func TestSuggestMatchesCommandWordOnly(t *testing.T) {
	t.Parallel()
	hints := components.Suggest("goal 25")
	if len(hints) == 0 {
		t.Fatalf("expected a suggestion for goal")
	}
	if !strings.Contains(hints[0], "g") {
		t.Fatalf("unexpected first hint %q", hints[0])
	}
	if got := components.Suggest(""); len(got) != 5 {
		t.Fatalf("empty input should list the first five hints, got %d", len(got))
	}
	if got := components.Suggest("zzzz"); len(got) != 0 {
		t.Fatalf("expected no hints, got %v", got)
	}
}

func TestPaletteSubmitAndCancel(t *testing.T) {
	t.Parallel()
	p := components.NewPalette()
	p.Open()
	if !p.Visible() {
		t.Fatalf("palette should be visible after open")
	}
	for _, r := range "refresh" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("palette should close on enter")
	}
	msg, ok := cmd().(components.PaletteSubmitMsg)
	if !ok || msg.Input != "refresh" {
		t.Fatalf("unexpected submit message %#v", msg)
	}

	p.Open()
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatalf("palette should close on esc")
	}
	if _, ok := cmd().(components.PaletteCancelMsg); !ok {
		t.Fatalf("expected cancel message")
	}
}
