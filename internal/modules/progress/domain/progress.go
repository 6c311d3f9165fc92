package domain

import (
	"slices"
	"time"
)

const (
	SchemaVersion = 1

	ProgressKey = "miftah-reading-progress"
	SessionsKey = "miftah-reading-sessions"

	DefaultDailyGoal = 10
	MinDailyGoal     = 1
	MaxDailyGoal     = 100

	// SessionRetentionDays bounds the session log; older entries are pruned
	// on every write.
	SessionRetentionDays = 30
	WeeklyWindowDays     = 7
)

// ReadingProgress is the single per-device progress record. JSON names match
// the persisted layout so existing records stay readable.
type ReadingProgress struct {
	LastSurah        int    `json:"lastSurah"`
	LastAyah         int    `json:"lastAyah"`
	CompletedSurahs  []int  `json:"completedSurahs"`
	TotalReadingTime int    `json:"totalReadingTime"`
	DailyGoal        int    `json:"dailyGoal"`
	Streak           int    `json:"streak"`
	LastReadDate     string `json:"lastReadDate"`
	SessionsToday    int    `json:"sessionsToday"`
}

func DefaultProgress(dailyGoal int) ReadingProgress {
	if dailyGoal < MinDailyGoal || dailyGoal > MaxDailyGoal {
		dailyGoal = DefaultDailyGoal
	}
	return ReadingProgress{
		LastSurah:       1,
		LastAyah:        1,
		CompletedSurahs: []int{},
		DailyGoal:       dailyGoal,
	}
}

// Clone returns a copy that shares no memory with p.
func (p ReadingProgress) Clone() ReadingProgress {
	out := p
	out.CompletedSurahs = slices.Clone(p.CompletedSurahs)
	if out.CompletedSurahs == nil {
		out.CompletedSurahs = []int{}
	}
	return out
}

// RecordVisit applies one progress update at now. Calendar days are taken in
// loc. The streak grows only when now falls on the day right after the last
// read; any other new day restarts it at 1.
func (p *ReadingProgress) RecordVisit(surah, ayah int, now time.Time, loc *time.Location) {
	p.LastSurah = surah
	p.LastAyah = ayah

	today := DayOf(now, loc)
	last, ok := p.LastReadDay(loc)
	if ok && last == today {
		p.SessionsToday++
	} else {
		if ok && last.Next() == today {
			p.Streak++
		} else {
			p.Streak = 1
		}
		p.SessionsToday = 1
	}
	p.LastReadDate = FormatTimestamp(now)
}

// LastReadDay reports the calendar day of the last update, if any.
func (p ReadingProgress) LastReadDay(loc *time.Location) (Day, bool) {
	at, ok := ParseTimestamp(p.LastReadDate)
	if !ok {
		return Day{}, false
	}
	return DayOf(at, loc), true
}

// MarkCompleted adds surah to the completed set and reports whether it was new.
func (p *ReadingProgress) MarkCompleted(surah int) bool {
	if slices.Contains(p.CompletedSurahs, surah) {
		return false
	}
	p.CompletedSurahs = append(p.CompletedSurahs, surah)
	return true
}

// AddReadingTime accumulates session minutes. Negative durations are ignored
// so the total never decreases.
func (p *ReadingProgress) AddReadingTime(minutes int) {
	if minutes > 0 {
		p.TotalReadingTime += minutes
	}
}

// SessionsOn is the update count for day; a counter left over from an
// earlier day reads as zero.
func (p ReadingProgress) SessionsOn(day Day, loc *time.Location) int {
	last, ok := p.LastReadDay(loc)
	if !ok || last != day {
		return 0
	}
	return p.SessionsToday
}

// Normalize repairs fields a hand-edited or older record may lack.
func (p *ReadingProgress) Normalize() {
	if p.CompletedSurahs == nil {
		p.CompletedSurahs = []int{}
	}
}

func ValidateDailyGoal(goal int) bool {
	return goal >= MinDailyGoal && goal <= MaxDailyGoal
}
