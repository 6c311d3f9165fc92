package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"miftah/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle  = lipgloss.NewStyle().Foreground(theme.Subtext0)
	matchStyle = lipgloss.NewStyle().Foreground(theme.Peach).Underline(true)
)

const maxHints = 5

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []string{
	"progress:update <surah> <ayah>",
	"surah:complete <surah>",
	"goal:set <verses>",
	"session:start <surah> <ayah>",
	"session:end <ayah>",
	"bookmark:add <surah> <ayah> [note]",
	"bookmark:remove <surah> <ayah>",
	"bookmark:clear",
	"refresh",
}

// Palette is a command-palette overlay backed by bubbles/textinput.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "progress:update 2 255"
	ti.CharLimit = 128
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if hints := Suggest(p.input.Value()); len(hints) > 0 {
		sb.WriteString("\n")
		for _, h := range hints {
			sb.WriteString("  " + h + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

// Suggest returns rendered hints for the command typed so far, best match
// first. Only the command word is matched; arguments are ignored.
func Suggest(input string) []string {
	word := strings.ToLower(strings.TrimSpace(input))
	if i := strings.IndexByte(word, ' '); i >= 0 {
		word = word[:i]
	}
	if word == "" {
		out := make([]string, 0, maxHints)
		for _, h := range paletteHints[:min(maxHints, len(paletteHints))] {
			out = append(out, hintStyle.Render(h))
		}
		return out
	}

	matches := fuzzy.Find(word, paletteHints)
	out := make([]string, 0, maxHints)
	for _, m := range matches {
		out = append(out, highlight(m))
		if len(out) == maxHints {
			break
		}
	}
	return out
}

func highlight(m fuzzy.Match) string {
	hit := make(map[int]bool, len(m.MatchedIndexes))
	for _, i := range m.MatchedIndexes {
		hit[i] = true
	}
	var sb strings.Builder
	for i, r := range m.Str {
		if hit[i] {
			sb.WriteString(matchStyle.Render(string(r)))
		} else {
			sb.WriteString(hintStyle.Render(string(r)))
		}
	}
	return sb.String()
}
