package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "miftah/internal/modules/progress/dto"
	"miftah/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type StatsPort interface {
	GetProgress(ctx context.Context) progressdto.ProgressOutput
	Today(ctx context.Context) (progressdto.TodayStatsOutput, error)
	Week(ctx context.Context) (progressdto.WeeklyStatsOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Progress progressdto.ProgressOutput
	Today    progressdto.TodayStatsOutput
	Week     progressdto.WeeklyStatsOutput
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     StatsPort
	goalBar  progress.Model
	weekBar  progress.Model
	spinner  spinner.Model
	loading  bool
	err      error
	progress progressdto.ProgressOutput
	today    progressdto.TodayStatsOutput
	week     progressdto.WeeklyStatsOutput
	width    int
	height   int
}

func New(port StatsPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		goalBar: progress.New(progress.WithGradient(string(theme.Teal), string(theme.Green))),
		weekBar: progress.New(progress.WithSolidFill(string(theme.Lavender))),
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

// Refresh reloads the progress record and both stat windows.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		out := LoadedMsg{Progress: m.port.GetProgress(ctx)}
		if out.Today, out.Err = m.port.Today(ctx); out.Err != nil {
			return out
		}
		out.Week, out.Err = m.port.Week(ctx)
		return out
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barW := max(10, min(60, m.width/2-8))
		m.goalBar.Width = barW
		m.weekBar.Width = barW

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		m.progress = msg.Progress
		m.today = msg.Today
		m.week = msg.Week

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading progress…")
	}
	if m.err != nil {
		return theme.Bad.Render("stats unavailable: " + m.err.Error())
	}

	paneW := max(20, m.width/2-2)
	today := theme.Pane.Width(paneW).Render(m.renderToday())
	week := theme.Pane.Width(paneW).Render(m.renderWeek())
	return lipgloss.JoinHorizontal(lipgloss.Top, today, week)
}

func (m Model) renderToday() string {
	t := m.today
	p := m.progress
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Today") + "\n\n")
	sb.WriteString(fmt.Sprintf("%d / %d verses\n", t.VersesRead, p.DailyGoal))
	sb.WriteString(m.goalBar.ViewAs(t.GoalProgress/100) + "\n\n")
	if t.GoalProgress >= 100 {
		sb.WriteString(theme.Good.Render("Daily goal reached") + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("time:     ") + fmt.Sprintf("%d min\n", t.TimeSpent))
	sb.WriteString(theme.Muted.Render("sessions: ") + fmt.Sprintf("%d\n", t.SessionsCount))
	sb.WriteString(theme.Muted.Render("streak:   ") + theme.Streak(p.Streak).Render(fmt.Sprintf("%d days", p.Streak)) + "\n")
	sb.WriteString(theme.Muted.Render("position: ") + fmt.Sprintf("%d:%d\n", p.LastSurah, p.LastAyah))
	return sb.String()
}

func (m Model) renderWeek() string {
	w := m.week
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Last 7 days") + "\n\n")
	sb.WriteString(fmt.Sprintf("%d / 7 days read\n", w.DaysRead))
	sb.WriteString(m.weekBar.ViewAs(float64(w.DaysRead)/7) + "\n\n")
	sb.WriteString(theme.Muted.Render("verses:   ") + fmt.Sprintf("%d\n", w.TotalVerses))
	sb.WriteString(theme.Muted.Render("average:  ") + fmt.Sprintf("%.0f min/day\n", w.AverageTime))
	return sb.String()
}
