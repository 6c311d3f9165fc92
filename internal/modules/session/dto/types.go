package dto

import "time"

type StartInput struct {
	SurahNumber int
	StartAyah   int
}

type StartOutput struct {
	SessionID   string
	SurahNumber int
	StartAyah   int
	StartedAt   time.Time
}

type EndInput struct {
	EndAyah int
}

type EndOutput struct {
	SessionID    string
	SurahNumber  int
	StartAyah    int
	EndAyah      int
	DurationMin  int
	VersesRead   int
	GoalProgress float64
}

type ActiveSessionOutput struct {
	SessionID   string
	SurahNumber int
	StartAyah   int
	StartedAt   time.Time
}
