package overview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	progressdto "miftah/internal/modules/progress/dto"
	"miftah/internal/ui/theme"
)

type OverviewPort interface {
	Overview(ctx context.Context) (progressdto.OverviewOutput, error)
	GetProgress(ctx context.Context) progressdto.ProgressOutput
}

type LoadedMsg struct {
	Overview progressdto.OverviewOutput
	Progress progressdto.ProgressOutput
	Err      error
}

type Model struct {
	port     OverviewPort
	body     viewport.Model
	bar      progress.Model
	overview progressdto.OverviewOutput
	progress progressdto.ProgressOutput
	err      error
	width    int
	height   int
}

func New(port OverviewPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = theme.Pane
	return Model{
		port: port,
		body: vp,
		bar:  progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Lavender))),
	}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		o, err := m.port.Overview(ctx)
		return LoadedMsg{Overview: o, Progress: m.port.GetProgress(ctx), Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = m.width
		m.body.Height = m.height
		m.bar.Width = max(10, min(60, m.width-12))
		m.body.SetContent(m.render())

	case LoadedMsg:
		m.err = msg.Err
		m.overview = msg.Overview
		m.progress = msg.Progress
		m.body.SetContent(m.render())
		return m, nil
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.body.View()
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render("overview unavailable: " + m.err.Error())
	}
	o := m.overview
	p := m.progress
	var sb strings.Builder

	sb.WriteString(theme.Title.Render("Journey") + "\n\n")
	sb.WriteString(fmt.Sprintf("Surahs completed  %d / 114\n", o.CompletedCount))
	sb.WriteString(m.bar.ViewAs(o.CompletionPercent/100) + "\n")
	sb.WriteString(fmt.Sprintf("Reading position  %d:%d\n", p.LastSurah, p.LastAyah))
	sb.WriteString(m.bar.ViewAs(o.PositionPercent/100) + "\n\n")

	sb.WriteString(theme.Title.Render("Streak") + "\n\n")
	sb.WriteString(theme.Streak(p.Streak).Render(fmt.Sprintf("%d days", p.Streak)))
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("  next milestone %d (%d to go)", o.NextMilestone, o.MilestoneRemaining)) + "\n")
	sb.WriteString(m.bar.ViewAs(o.MilestonePercent/100) + "\n")
	sb.WriteString(theme.Hot.Render(o.Motivation) + "\n\n")

	sb.WriteString(theme.Title.Render("Totals") + "\n\n")
	sb.WriteString(theme.Muted.Render("reading time: ") + fmt.Sprintf("%dh (%d min)\n", o.TotalHours, p.TotalReadingTime))
	if o.EstimatedWeeksToComplete > 0 {
		sb.WriteString(theme.Muted.Render("at this pace: ") + fmt.Sprintf("about %d weeks to finish\n", o.EstimatedWeeksToComplete))
	}

	if len(o.Achievements) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Achievements") + "\n\n")
		badges := make([]string, len(o.Achievements))
		for i, a := range o.Achievements {
			badges[i] = theme.Badge.Render(a)
		}
		sb.WriteString(strings.Join(badges, " ") + "\n")
	}
	return sb.String()
}
