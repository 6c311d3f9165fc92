package domain

import "time"

// ReadingSession is one entry of the append-only session log.
type ReadingSession struct {
	Date        string `json:"date"`
	SurahNumber int    `json:"surahNumber"`
	StartAyah   int    `json:"startAyah"`
	EndAyah     int    `json:"endAyah"`
	Duration    int    `json:"duration"`
	VersesRead  int    `json:"versesRead"`
}

// At is the session end time; entries with an unreadable date report false.
func (s ReadingSession) At() (time.Time, bool) {
	return ParseTimestamp(s.Date)
}

// PruneSessions keeps the entries dated strictly after now minus days.
// Undated entries are dropped.
func PruneSessions(sessions []ReadingSession, now time.Time, loc *time.Location, days int) []ReadingSession {
	cutoff := DaysBefore(now, loc, days)
	kept := make([]ReadingSession, 0, len(sessions))
	for _, s := range sessions {
		at, ok := s.At()
		if ok && at.After(cutoff) {
			kept = append(kept, s)
		}
	}
	return kept
}
