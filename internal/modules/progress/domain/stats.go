package domain

import (
	"math"
	"time"
)

const (
	TotalSurahs = 114
	TotalAyahs  = 6236
)

type TodayStats struct {
	VersesRead    int
	TimeSpent     int
	GoalProgress  float64
	SessionsCount int
}

type WeeklyStats struct {
	DaysRead    int
	TotalVerses int
	AverageTime float64
}

func ComputeTodayStats(progress ReadingProgress, sessions []ReadingSession, now time.Time, loc *time.Location) TodayStats {
	today := DayOf(now, loc)
	stats := TodayStats{SessionsCount: progress.SessionsOn(today, loc)}
	for _, s := range sessions {
		at, ok := s.At()
		if !ok || DayOf(at, loc) != today {
			continue
		}
		stats.VersesRead += s.VersesRead
		stats.TimeSpent += s.Duration
	}
	stats.GoalProgress = GoalProgress(stats.VersesRead, progress.DailyGoal)
	return stats
}

// GoalProgress is the percentage of goal reached, capped at 100.
func GoalProgress(versesRead, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(100, float64(versesRead)/float64(goal)*100)
}

func ComputeWeeklyStats(sessions []ReadingSession, now time.Time, loc *time.Location) WeeklyStats {
	cutoff := DaysBefore(now, loc, WeeklyWindowDays)
	days := map[Day]struct{}{}
	totalTime := 0
	stats := WeeklyStats{}
	for _, s := range sessions {
		at, ok := s.At()
		if !ok || !at.After(cutoff) {
			continue
		}
		days[DayOf(at, loc)] = struct{}{}
		stats.TotalVerses += s.VersesRead
		totalTime += s.Duration
	}
	stats.DaysRead = len(days)
	if stats.DaysRead > 0 {
		stats.AverageTime = float64(totalTime) / float64(stats.DaysRead)
	}
	return stats
}
