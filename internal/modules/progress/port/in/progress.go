package in

import (
	"context"

	"miftah/internal/modules/progress/dto"
)

type Usecase interface {
	UpdateProgress(ctx context.Context, input dto.UpdateProgressInput) error
	AddReadingSession(ctx context.Context, input dto.AddSessionInput) error
	// FinishSession moves the position to SurahNumber:EndAyah and logs the
	// session in one write.
	FinishSession(ctx context.Context, input dto.AddSessionInput) error
	MarkSurahCompleted(ctx context.Context, surahNumber int) error
	SetDailyGoal(ctx context.Context, goal int) error
	GetProgress(ctx context.Context) dto.ProgressOutput
	GetReadingSessions(ctx context.Context) ([]dto.SessionOutput, error)
	GetTodayStats(ctx context.Context) (dto.TodayStatsOutput, error)
	GetWeeklyStats(ctx context.Context) (dto.WeeklyStatsOutput, error)
	GetOverview(ctx context.Context) (dto.OverviewOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
