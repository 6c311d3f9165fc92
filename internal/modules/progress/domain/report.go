package domain

import "time"

// Report is a point-in-time snapshot of all derived progress views.
type Report struct {
	GeneratedAt time.Time
	Progress    ReadingProgress
	Today       TodayStats
	Weekly      WeeklyStats
	Overview    Overview
}
