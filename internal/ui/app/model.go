package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bookmarkdto "miftah/internal/modules/bookmark/dto"
	progressdto "miftah/internal/modules/progress/dto"
	sessiondto "miftah/internal/modules/session/dto"
	apperrors "miftah/internal/platform/errors"
	"miftah/internal/ui/components"
	"miftah/internal/ui/theme"
	bookmarksview "miftah/internal/ui/views/bookmarks"
	overviewview "miftah/internal/ui/views/overview"
	sessionsview "miftah/internal/ui/views/sessions"
	statsview "miftah/internal/ui/views/stats"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type progressPort interface {
	UpdateProgress(ctx context.Context, surah, ayah int) error
	MarkSurahCompleted(ctx context.Context, surah int) error
	SetDailyGoal(ctx context.Context, goal int) error
	GetProgress(ctx context.Context) progressdto.ProgressOutput
	ListSessions(ctx context.Context) ([]progressdto.SessionOutput, error)
	Today(ctx context.Context) (progressdto.TodayStatsOutput, error)
	Week(ctx context.Context) (progressdto.WeeklyStatsOutput, error)
	Overview(ctx context.Context) (progressdto.OverviewOutput, error)
}

type sessionPort interface {
	Start(ctx context.Context, surah, startAyah int) (sessiondto.StartOutput, error)
	End(ctx context.Context, endAyah int) (sessiondto.EndOutput, error)
	GetActive(ctx context.Context) (sessiondto.ActiveSessionOutput, error)
}

type bookmarkPort interface {
	Add(ctx context.Context, surah, ayah int, name, notes string) (bookmarkdto.AddOutput, error)
	Remove(ctx context.Context, surah, ayah int) (bool, error)
	ListBookmarks(ctx context.Context) ([]bookmarkdto.BookmarkOutput, error)
	Clear(ctx context.Context) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabStats tabID = iota
	tabSessions
	tabOverview
	tabBookmarks
	tabCount
)

var tabLabels = [tabCount]string{
	"Stats", "Sessions", "Overview", "Bookmarks",
}

// ─── async messages ───────────────────────────────────────────────────────────

type activeLoadedMsg struct {
	active sessiondto.ActiveSessionOutput
	err    error
}

type sessionStartedMsg struct {
	out sessiondto.StartOutput
	err error
}

type sessionEndedMsg struct {
	out sessiondto.EndOutput
	err error
}

// mutatedMsg reports the outcome of a palette command that changed progress.
type mutatedMsg struct {
	status string
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the running
// session indicator, the help overlay and the command palette. Reads and
// writes go through the ports; rendering is left to the sub-views.
type Model struct {
	progress  progressPort
	session   sessionPort
	bookmarks bookmarkPort

	statsView     statsview.Model
	sessionsView  sessionsview.Model
	overviewView  overviewview.Model
	bookmarksView bookmarksview.Model

	activeTab     tabID
	keys          keyMap
	help          help.Model
	showHelp      bool
	palette       components.Palette
	activeSession sessiondto.ActiveSessionOutput
	hasActive     bool
	status        string
	width         int
	height        int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(progress progressPort, session sessionPort, bookmarks bookmarkPort) Model {
	return Model{
		progress:      progress,
		session:       session,
		bookmarks:     bookmarks,
		statsView:     statsview.New(progress),
		sessionsView:  sessionsview.New(progress),
		overviewView:  overviewview.New(progress),
		bookmarksView: bookmarksview.New(bookmarks),
		activeTab:     tabStats,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.statsView.Init(),
		m.sessionsView.Init(),
		m.overviewView.Init(),
		m.bookmarksView.Init(),
		m.loadActiveCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Loaded messages go to their owning view whichever tab is showing.
	case statsview.LoadedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd
	case sessionsview.LoadedMsg:
		var cmd tea.Cmd
		m.sessionsView, cmd = m.sessionsView.Update(msg)
		return m, cmd
	case overviewview.LoadedMsg:
		var cmd tea.Cmd
		m.overviewView, cmd = m.overviewView.Update(msg)
		return m, cmd
	case bookmarksview.LoadedMsg:
		var cmd tea.Cmd
		m.bookmarksView, cmd = m.bookmarksView.Update(msg)
		return m, cmd

	case activeLoadedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, apperrors.ErrNoActiveSession) {
				m.status = "active session check: " + msg.err.Error()
			}
			m.hasActive = false
		} else {
			m.hasActive = true
			m.activeSession = msg.active
			m.status = fmt.Sprintf("session recovered: surah %d from ayah %d", msg.active.SurahNumber, msg.active.StartAyah)
		}

	case sessionStartedMsg:
		if msg.err != nil {
			m.status = "session start failed: " + msg.err.Error()
			return m, nil
		}
		m.hasActive = true
		m.activeSession = sessiondto.ActiveSessionOutput{
			SessionID:   msg.out.SessionID,
			SurahNumber: msg.out.SurahNumber,
			StartAyah:   msg.out.StartAyah,
			StartedAt:   msg.out.StartedAt,
		}
		m.status = fmt.Sprintf("session started: surah %d", msg.out.SurahNumber)
		return m, m.refreshAll()

	case sessionEndedMsg:
		if msg.err != nil {
			m.status = "session end failed: " + msg.err.Error()
			return m, nil
		}
		m.hasActive = false
		m.activeSession = sessiondto.ActiveSessionOutput{}
		m.status = fmt.Sprintf("session ended: %d verses in %d min, goal %.0f%%",
			msg.out.VersesRead, msg.out.DurationMin, msg.out.GoalProgress)
		return m, m.refreshAll()

	case mutatedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		return m, m.refreshAll()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to a list while its filter is being typed.
		if (m.activeTab == tabSessions && m.sessionsView.Filtering()) ||
			(m.activeTab == tabBookmarks && m.bookmarksView.Filtering()) {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "r":
			m.status = "refreshing"
			return m, m.refreshAll()
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	case tabSessions:
		m.sessionsView, tabCmd = m.sessionsView.Update(msg)
	case tabOverview:
		m.overviewView, tabCmd = m.overviewView.Update(msg)
	case tabBookmarks:
		m.bookmarksView, tabCmd = m.bookmarksView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(1, m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar))

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabStats:
		return m.statsView.View()
	case tabSessions:
		return m.sessionsView.View()
	case tabOverview:
		return m.overviewView.View()
	case tabBookmarks:
		return m.bookmarksView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "miftah  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.hasActive {
		left = theme.Hot.Render(fmt.Sprintf("● surah %d:%d", m.activeSession.SurahNumber, m.activeSession.StartAyah)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  r:refresh  q:quit")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	// Everything after the verse of bookmark:add is a free-text note.
	var note string
	if parts[0] == "bookmark:add" && len(parts) > 3 {
		note = strings.Join(parts[3:], " ")
		parts = parts[:3]
	}
	args, err := atoiAll(parts[1:])
	if err != nil {
		m.status = parts[0] + ": " + err.Error()
		return m, nil
	}

	switch parts[0] {
	case "progress:update":
		if len(args) != 2 {
			m.status = "usage: progress:update <surah> <ayah>"
			return m, nil
		}
		return m, m.mutateCmd(fmt.Sprintf("position set to %d:%d", args[0], args[1]), func(ctx context.Context) error {
			return m.progress.UpdateProgress(ctx, args[0], args[1])
		})

	case "surah:complete":
		if len(args) != 1 {
			m.status = "usage: surah:complete <surah>"
			return m, nil
		}
		return m, m.mutateCmd(fmt.Sprintf("surah %d marked complete", args[0]), func(ctx context.Context) error {
			return m.progress.MarkSurahCompleted(ctx, args[0])
		})

	case "goal:set":
		if len(args) != 1 {
			m.status = "usage: goal:set <verses>"
			return m, nil
		}
		return m, m.mutateCmd(fmt.Sprintf("daily goal set to %d verses", args[0]), func(ctx context.Context) error {
			return m.progress.SetDailyGoal(ctx, args[0])
		})

	case "session:start":
		if len(args) != 2 {
			m.status = "usage: session:start <surah> <ayah>"
			return m, nil
		}
		return m, m.startSessionCmd(args[0], args[1])

	case "session:end":
		if len(args) != 1 {
			m.status = "usage: session:end <ayah>"
			return m, nil
		}
		return m, m.endSessionCmd(args[0])

	case "bookmark:add":
		if len(args) != 2 {
			m.status = "usage: bookmark:add <surah> <ayah> [note]"
			return m, nil
		}
		return m, m.mutateCmd(fmt.Sprintf("bookmarked %d:%d", args[0], args[1]), func(ctx context.Context) error {
			_, err := m.bookmarks.Add(ctx, args[0], args[1], "", note)
			return err
		})

	case "bookmark:remove":
		if len(args) != 2 {
			m.status = "usage: bookmark:remove <surah> <ayah>"
			return m, nil
		}
		return m, m.mutateCmd(fmt.Sprintf("bookmark %d:%d removed", args[0], args[1]), func(ctx context.Context) error {
			_, err := m.bookmarks.Remove(ctx, args[0], args[1])
			return err
		})

	case "bookmark:clear":
		return m, m.mutateCmd("bookmarks cleared", func(ctx context.Context) error {
			return m.bookmarks.Clear(ctx)
		})

	case "refresh":
		m.status = "refreshing"
		return m, m.refreshAll()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func atoiAll(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", f)
		}
		out[i] = n
	}
	return out, nil
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.statsView, _ = m.statsView.Update(sz)
	m.sessionsView, _ = m.sessionsView.Update(sz)
	m.overviewView, _ = m.overviewView.Update(sz)
	m.bookmarksView, _ = m.bookmarksView.Update(sz)
}

func (m Model) refreshAll() tea.Cmd {
	return tea.Batch(m.statsView.Refresh(), m.sessionsView.Refresh(), m.overviewView.Refresh(), m.bookmarksView.Refresh())
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadActiveCmd() tea.Cmd {
	return func() tea.Msg {
		active, err := m.session.GetActive(context.Background())
		return activeLoadedMsg{active: active, err: err}
	}
}

func (m Model) mutateCmd(status string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return mutatedMsg{status: status, err: fn(context.Background())}
	}
}

func (m Model) startSessionCmd(surah, ayah int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Start(context.Background(), surah, ayah)
		return sessionStartedMsg{out: out, err: err}
	}
}

func (m Model) endSessionCmd(ayah int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.End(context.Background(), ayah)
		return sessionEndedMsg{out: out, err: err}
	}
}
