package domain

import (
	"math"
	"time"
)

const MaxSurah = 114

// ActiveSession is a timer started on a surah and not yet ended.
type ActiveSession struct {
	SessionID   string    `json:"session_id"`
	SurahNumber int       `json:"surah_number"`
	StartAyah   int       `json:"start_ayah"`
	StartedAt   time.Time `json:"started_at"`
}

type Session struct {
	ID          string
	SurahNumber int
	StartAyah   int
	EndAyah     int
	StartedAt   time.Time
	EndedAt     time.Time
	DurationMin int
	VersesRead  int
}

// DurationMinutes rounds elapsed wall time to whole minutes, never below one.
func DurationMinutes(startedAt, endedAt time.Time) int {
	minutes := int(math.Round(endedAt.Sub(startedAt).Minutes()))
	return max(1, minutes)
}

func VersesRead(startAyah, endAyah int) int {
	return max(0, endAyah-startAyah+1)
}
