package usecase

import (
	"context"

	"miftah/internal/modules/progress/domain"
	"miftah/internal/modules/progress/dto"
	progressin "miftah/internal/modules/progress/port/in"
	progressout "miftah/internal/modules/progress/port/out"
	"miftah/internal/modules/progress/service"
)

type Interactor struct {
	tracker *service.Tracker
	reports progressout.ReportWriter
}

func NewInteractor(tracker *service.Tracker, reports progressout.ReportWriter) progressin.Usecase {
	return &Interactor{tracker: tracker, reports: reports}
}

func (i *Interactor) UpdateProgress(ctx context.Context, input dto.UpdateProgressInput) error {
	return i.tracker.UpdateProgress(ctx, input.SurahNumber, input.AyahNumber)
}

func (i *Interactor) AddReadingSession(ctx context.Context, input dto.AddSessionInput) error {
	return i.tracker.AddReadingSession(ctx, toSession(input))
}

func (i *Interactor) FinishSession(ctx context.Context, input dto.AddSessionInput) error {
	return i.tracker.FinishSession(ctx, toSession(input))
}

func (i *Interactor) MarkSurahCompleted(ctx context.Context, surahNumber int) error {
	return i.tracker.MarkSurahCompleted(ctx, surahNumber)
}

func (i *Interactor) SetDailyGoal(ctx context.Context, goal int) error {
	return i.tracker.SetDailyGoal(ctx, goal)
}

func (i *Interactor) GetProgress(ctx context.Context) dto.ProgressOutput {
	p := i.tracker.Current(ctx)
	return dto.ProgressOutput{
		LastSurah:        p.LastSurah,
		LastAyah:         p.LastAyah,
		CompletedSurahs:  p.CompletedSurahs,
		TotalReadingTime: p.TotalReadingTime,
		DailyGoal:        p.DailyGoal,
		Streak:           p.Streak,
		LastReadDate:     p.LastReadDate,
		SessionsToday:    p.SessionsToday,
	}
}

func (i *Interactor) GetReadingSessions(ctx context.Context) ([]dto.SessionOutput, error) {
	sessions, err := i.tracker.GetReadingSessions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		at, ok := s.At()
		if !ok {
			continue
		}
		out = append(out, dto.SessionOutput{
			Date:        at.In(i.tracker.Location()),
			SurahNumber: s.SurahNumber,
			StartAyah:   s.StartAyah,
			EndAyah:     s.EndAyah,
			Duration:    s.Duration,
			VersesRead:  s.VersesRead,
		})
	}
	return out, nil
}

func (i *Interactor) GetTodayStats(ctx context.Context) (dto.TodayStatsOutput, error) {
	stats, err := i.tracker.TodayStats(ctx)
	if err != nil {
		return dto.TodayStatsOutput{}, err
	}
	return toTodayOutput(stats), nil
}

func (i *Interactor) GetWeeklyStats(ctx context.Context) (dto.WeeklyStatsOutput, error) {
	stats, err := i.tracker.WeeklyStats(ctx)
	if err != nil {
		return dto.WeeklyStatsOutput{}, err
	}
	return toWeeklyOutput(stats), nil
}

func (i *Interactor) GetOverview(ctx context.Context) (dto.OverviewOutput, error) {
	report, err := i.tracker.Report(ctx)
	if err != nil {
		return dto.OverviewOutput{}, err
	}
	o := report.Overview
	achievements := make([]string, 0, len(o.Achievements))
	for _, a := range o.Achievements {
		achievements = append(achievements, string(a))
	}
	return dto.OverviewOutput{
		CompletedCount:           o.CompletedCount,
		CompletionPercent:        o.CompletionPercent,
		PositionPercent:          o.PositionPercent,
		TotalHours:               o.TotalHours,
		EstimatedWeeksToComplete: o.EstimatedWeeksToComplete,
		Motivation:               o.Motivation,
		NextMilestone:            o.NextMilestone,
		MilestoneRemaining:       o.MilestoneRemaining,
		MilestonePercent:         o.MilestonePercent,
		Achievements:             achievements,
	}, nil
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	report, err := i.tracker.Report(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	content, err := i.reports.Write(ctx, input.Path, report)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Path: input.Path, Content: content}, nil
}

func toSession(input dto.AddSessionInput) domain.ReadingSession {
	return domain.ReadingSession{
		SurahNumber: input.SurahNumber,
		StartAyah:   input.StartAyah,
		EndAyah:     input.EndAyah,
		Duration:    input.Duration,
		VersesRead:  input.VersesRead,
	}
}

func toTodayOutput(s domain.TodayStats) dto.TodayStatsOutput {
	return dto.TodayStatsOutput{
		VersesRead:    s.VersesRead,
		TimeSpent:     s.TimeSpent,
		GoalProgress:  s.GoalProgress,
		SessionsCount: s.SessionsCount,
	}
}

func toWeeklyOutput(s domain.WeeklyStats) dto.WeeklyStatsOutput {
	return dto.WeeklyStatsOutput{
		DaysRead:    s.DaysRead,
		TotalVerses: s.TotalVerses,
		AverageTime: s.AverageTime,
	}
}
