package dto

import "time"

type UpdateProgressInput struct {
	SurahNumber int
	AyahNumber  int
}

type AddSessionInput struct {
	SurahNumber int
	StartAyah   int
	EndAyah     int
	Duration    int
	VersesRead  int
}

type ExportInput struct {
	// Path of the note to create or refresh; empty renders without writing.
	Path string
}

type ProgressOutput struct {
	LastSurah        int
	LastAyah         int
	CompletedSurahs  []int
	TotalReadingTime int
	DailyGoal        int
	Streak           int
	LastReadDate     string
	SessionsToday    int
}

type SessionOutput struct {
	Date        time.Time
	SurahNumber int
	StartAyah   int
	EndAyah     int
	Duration    int
	VersesRead  int
}

type TodayStatsOutput struct {
	VersesRead    int
	TimeSpent     int
	GoalProgress  float64
	SessionsCount int
}

type WeeklyStatsOutput struct {
	DaysRead    int
	TotalVerses int
	AverageTime float64
}

type OverviewOutput struct {
	CompletedCount           int
	CompletionPercent        float64
	PositionPercent          float64
	TotalHours               int
	EstimatedWeeksToComplete int
	Motivation               string
	NextMilestone            int
	MilestoneRemaining       int
	MilestonePercent         float64
	Achievements             []string
}

type ExportOutput struct {
	Path    string
	Content string
}
