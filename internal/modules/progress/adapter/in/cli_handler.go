package in

import (
	"context"

	"miftah/internal/modules/progress/dto"
	progressin "miftah/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) UpdateProgress(ctx context.Context, surah, ayah int) error {
	return h.usecase.UpdateProgress(ctx, dto.UpdateProgressInput{SurahNumber: surah, AyahNumber: ayah})
}

// RecordSession logs a session timed outside the tracker. Durations under a
// minute are counted as one.
func (h CLIHandler) RecordSession(ctx context.Context, surah, startAyah, endAyah, duration, versesRead int) error {
	return h.usecase.AddReadingSession(ctx, dto.AddSessionInput{
		SurahNumber: surah,
		StartAyah:   startAyah,
		EndAyah:     endAyah,
		Duration:    max(1, duration),
		VersesRead:  max(0, versesRead),
	})
}

func (h CLIHandler) MarkSurahCompleted(ctx context.Context, surah int) error {
	return h.usecase.MarkSurahCompleted(ctx, surah)
}

func (h CLIHandler) SetDailyGoal(ctx context.Context, goal int) error {
	return h.usecase.SetDailyGoal(ctx, goal)
}

func (h CLIHandler) GetProgress(ctx context.Context) dto.ProgressOutput {
	return h.usecase.GetProgress(ctx)
}

func (h CLIHandler) ListSessions(ctx context.Context) ([]dto.SessionOutput, error) {
	return h.usecase.GetReadingSessions(ctx)
}

func (h CLIHandler) Today(ctx context.Context) (dto.TodayStatsOutput, error) {
	return h.usecase.GetTodayStats(ctx)
}

func (h CLIHandler) Week(ctx context.Context) (dto.WeeklyStatsOutput, error) {
	return h.usecase.GetWeeklyStats(ctx)
}

func (h CLIHandler) Overview(ctx context.Context) (dto.OverviewOutput, error) {
	return h.usecase.GetOverview(ctx)
}

func (h CLIHandler) Export(ctx context.Context, path string) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dto.ExportInput{Path: path})
}
