package domain

import "math"

type Achievement string

const (
	AchievementWeeklyReader    Achievement = "Weekly Reader"
	AchievementMonthlyMaster   Achievement = "Monthly Master"
	AchievementChapterChampion Achievement = "Chapter Champion"
	AchievementTimeDevotee     Achievement = "Time Devotee"
)

var streakMilestones = []int{7, 14, 30, 60, 100, 365}

const finalMilestone = 500

// assumedVersesPerSurah approximates how far LastSurah is into the text when
// estimating the time left.
const assumedVersesPerSurah = 10

type Overview struct {
	CompletedCount           int
	CompletionPercent        float64
	PositionPercent          float64
	TotalHours               int
	EstimatedWeeksToComplete int
	Motivation               string
	NextMilestone            int
	MilestoneRemaining       int
	MilestonePercent         float64
	Achievements             []Achievement
}

func BuildOverview(progress ReadingProgress, weekly WeeklyStats) Overview {
	next := NextMilestone(progress.Streak)
	out := Overview{
		CompletedCount:     len(progress.CompletedSurahs),
		CompletionPercent:  float64(len(progress.CompletedSurahs)) / TotalSurahs * 100,
		PositionPercent:    float64(progress.LastSurah-1) / TotalSurahs * 100,
		TotalHours:         int(math.Round(float64(progress.TotalReadingTime) / 60)),
		Motivation:         Motivation(progress.Streak),
		NextMilestone:      next,
		MilestoneRemaining: max(0, next-progress.Streak),
		MilestonePercent:   math.Min(100, float64(progress.Streak)/float64(next)*100),
		Achievements:       Achievements(progress),
	}
	if weekly.TotalVerses > 0 {
		remaining := TotalAyahs - progress.LastSurah*assumedVersesPerSurah
		out.EstimatedWeeksToComplete = int(math.Ceil(float64(remaining) / float64(weekly.TotalVerses)))
	}
	return out
}

func Motivation(streak int) string {
	switch {
	case streak >= 30:
		return "Mashallah! Your consistency is inspiring"
	case streak >= 14:
		return "Excellent dedication! Keep it up"
	case streak >= 7:
		return "Great weekly habit!"
	case streak >= 3:
		return "Building momentum!"
	default:
		return "Every step counts in your journey"
	}
}

func NextMilestone(streak int) int {
	for _, m := range streakMilestones {
		if m > streak {
			return m
		}
	}
	return finalMilestone
}

func Achievements(progress ReadingProgress) []Achievement {
	out := []Achievement{}
	if progress.Streak >= 7 {
		out = append(out, AchievementWeeklyReader)
	}
	if progress.Streak >= 30 {
		out = append(out, AchievementMonthlyMaster)
	}
	if len(progress.CompletedSurahs) >= 5 {
		out = append(out, AchievementChapterChampion)
	}
	if progress.TotalReadingTime >= 300 {
		out = append(out, AchievementTimeDevotee)
	}
	return out
}
