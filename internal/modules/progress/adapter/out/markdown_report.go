package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"miftah/internal/modules/progress/domain"
	progressout "miftah/internal/modules/progress/port/out"
	"miftah/internal/platform/markdown"
)

const (
	reportBlockStart = "<!-- miftah:stats:start -->"
	reportBlockEnd   = "<!-- miftah:stats:end -->"
)

// MarkdownReportWriter keeps a progress summary inside a markdown note. Only
// the managed block and the miftah_* frontmatter keys are rewritten; anything
// else in the note is left alone.
type MarkdownReportWriter struct{}

func NewMarkdownReportWriter() progressout.ReportWriter {
	return MarkdownReportWriter{}
}

func (MarkdownReportWriter) Write(_ context.Context, path string, report domain.Report) (string, error) {
	fm := markdown.NewFrontmatter()
	body := "# Reading progress\n"
	if path != "" {
		existing, err := os.ReadFile(path)
		switch {
		case err == nil:
			fm, body, err = markdown.ParseFrontmatter(string(existing))
			if err != nil {
				return "", fmt.Errorf("parse %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return "", fmt.Errorf("read report note: %w", err)
		}
	}

	p := report.Progress
	fields := []struct {
		key   string
		value any
	}{
		{"miftah_schema_version", domain.SchemaVersion},
		{"miftah_generated_at", report.GeneratedAt.UTC().Format(time.RFC3339)},
		{"miftah_streak", p.Streak},
		{"miftah_daily_goal", p.DailyGoal},
		{"miftah_total_reading_minutes", p.TotalReadingTime},
		{"miftah_completed_surahs", p.CompletedSurahs},
	}
	for _, f := range fields {
		if err := fm.Set(f.key, f.value); err != nil {
			return "", err
		}
	}

	body = markdown.ReplaceManagedBlock(body, reportBlockStart, reportBlockEnd, renderReportBody(report))
	rendered, err := fm.Render(body)
	if err != nil {
		return "", err
	}
	if path == "" {
		return rendered, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write report note: %w", err)
	}
	return rendered, nil
}

func renderReportBody(r domain.Report) string {
	var sb strings.Builder
	p := r.Progress
	fmt.Fprintf(&sb, "## Today\n\n")
	fmt.Fprintf(&sb, "- Verses read: %d / %d (%.0f%%)\n", r.Today.VersesRead, p.DailyGoal, r.Today.GoalProgress)
	fmt.Fprintf(&sb, "- Time spent: %d min\n", r.Today.TimeSpent)
	fmt.Fprintf(&sb, "- Sessions: %d\n\n", r.Today.SessionsCount)

	fmt.Fprintf(&sb, "## This week\n\n")
	fmt.Fprintf(&sb, "- Days read: %d/7\n", r.Weekly.DaysRead)
	fmt.Fprintf(&sb, "- Total verses: %d\n", r.Weekly.TotalVerses)
	fmt.Fprintf(&sb, "- Average time: %.0f min/day\n\n", r.Weekly.AverageTime)

	o := r.Overview
	fmt.Fprintf(&sb, "## Overall\n\n")
	fmt.Fprintf(&sb, "- Streak: %d days (next milestone %d, %d to go)\n", p.Streak, o.NextMilestone, o.MilestoneRemaining)
	fmt.Fprintf(&sb, "- Last read: %d:%d\n", p.LastSurah, p.LastAyah)
	fmt.Fprintf(&sb, "- Completed surahs: %d/%d (%.0f%%)\n", o.CompletedCount, domain.TotalSurahs, o.CompletionPercent)
	fmt.Fprintf(&sb, "- Reading time: %dh (%d min)\n", o.TotalHours, p.TotalReadingTime)
	if o.EstimatedWeeksToComplete > 0 {
		fmt.Fprintf(&sb, "- Estimated weeks to complete: %d\n", o.EstimatedWeeksToComplete)
	}
	if len(o.Achievements) > 0 {
		names := make([]string, len(o.Achievements))
		for i, a := range o.Achievements {
			names[i] = string(a)
		}
		fmt.Fprintf(&sb, "- Achievements: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(&sb, "\n_%s_\n", o.Motivation)
	return sb.String()
}
