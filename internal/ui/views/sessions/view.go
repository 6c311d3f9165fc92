package sessions

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "miftah/internal/modules/progress/dto"
	"miftah/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SessionsPort interface {
	ListSessions(ctx context.Context) ([]progressdto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Sessions []progressdto.SessionOutput
	Err      error
}

// ─── list item ───────────────────────────────────────────────────────────────

type sessionItem struct {
	session progressdto.SessionOutput
}

func (i sessionItem) Title() string {
	s := i.session
	return fmt.Sprintf("Surah %d  %d–%d", s.SurahNumber, s.StartAyah, s.EndAyah)
}

func (i sessionItem) Description() string {
	s := i.session
	return fmt.Sprintf("%s  %d min  %d verses", s.Date.Format("Mon 02 Jan 15:04"), s.Duration, s.VersesRead)
}

func (i sessionItem) FilterValue() string { return fmt.Sprintf("surah %d", i.session.SurahNumber) }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   SessionsPort
	list   list.Model
	detail viewport.Model
	loaded bool
	err    error
	width  int
	height int
}

func New(port SessionsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Sessions (last 30 days)"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("session", "sessions")

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	return Model{port: port, list: l, detail: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.port.ListSessions(context.Background())
		return LoadedMsg{Sessions: sessions, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loaded = true
		m.err = msg.Err
		if msg.Err != nil {
			m.list.Title = "Sessions: " + msg.Err.Error()
			return m, nil
		}
		// newest first
		items := make([]list.Item, len(msg.Sessions))
		for i, s := range msg.Sessions {
			items[len(msg.Sessions)-1-i] = sessionItem{session: s}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.list.Select(0)
		m.detail.SetContent(m.renderDetail())
		return m, tea.Batch(cmds...)
	}

	prevIdx := m.list.Index()
	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prevIdx {
		m.detail.SetContent(m.renderDetail())
	}
	var vCmd tea.Cmd
	m.detail, vCmd = m.detail.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width / 2
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width / 2
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(sessionItem)
	if !ok {
		if m.loaded {
			return theme.Muted.Render("No sessions logged yet.\nUse : session:start to begin one.")
		}
		return ""
	}
	s := item.session
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("Surah %d", s.SurahNumber)) + "\n\n")
	sb.WriteString(theme.Muted.Render("ended:    ") + s.Date.Format("Monday 02 January 2006 15:04") + "\n")
	sb.WriteString(theme.Muted.Render("ayahs:    ") + fmt.Sprintf("%d to %d\n", s.StartAyah, s.EndAyah))
	sb.WriteString(theme.Muted.Render("verses:   ") + fmt.Sprintf("%d\n", s.VersesRead))
	sb.WriteString(theme.Muted.Render("duration: ") + fmt.Sprintf("%d min\n", s.Duration))
	if s.Duration > 0 && s.VersesRead > 0 {
		sb.WriteString(theme.Muted.Render("pace:     ") + fmt.Sprintf("%.1f verses/min\n", float64(s.VersesRead)/float64(s.Duration)))
	}
	return sb.String()
}
