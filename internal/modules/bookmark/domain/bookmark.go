package domain

import (
	"fmt"
	"slices"
	"time"
)

// StorageKey is where the bookmark list lives in the key-value store.
const StorageKey = "miftah-bookmarks"

const MaxSurah = 114

const timestampLayout = "2006-01-02T15:04:05.000Z"

// Bookmark is a saved verse. At most one bookmark exists per verse.
type Bookmark struct {
	ID             string `json:"id"`
	SurahNumber    int    `json:"surahNumber"`
	SurahName      string `json:"surahName,omitempty"`
	AyahNumber     int    `json:"ayahNumber"`
	DateBookmarked string `json:"dateBookmarked"`
	Notes          string `json:"notes,omitempty"`
}

func New(surah, ayah int, name, notes string, now time.Time) Bookmark {
	return Bookmark{
		ID:             fmt.Sprintf("%d-%d-%d", surah, ayah, now.UnixMilli()),
		SurahNumber:    surah,
		SurahName:      name,
		AyahNumber:     ayah,
		DateBookmarked: now.UTC().Format(timestampLayout),
		Notes:          notes,
	}
}

func (b Bookmark) Matches(surah, ayah int) bool {
	return b.SurahNumber == surah && b.AyahNumber == ayah
}

// At is when the verse was bookmarked; false for an unreadable date.
func (b Bookmark) At() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, b.DateBookmarked)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Add appends b unless its verse is already bookmarked.
func Add(list []Bookmark, b Bookmark) ([]Bookmark, bool) {
	if Contains(list, b.SurahNumber, b.AyahNumber) {
		return list, false
	}
	return append(list, b), true
}

// Remove drops the bookmark for surah:ayah and reports whether one existed.
func Remove(list []Bookmark, surah, ayah int) ([]Bookmark, bool) {
	kept := slices.DeleteFunc(slices.Clone(list), func(b Bookmark) bool { return b.Matches(surah, ayah) })
	return kept, len(kept) != len(list)
}

func Contains(list []Bookmark, surah, ayah int) bool {
	return slices.ContainsFunc(list, func(b Bookmark) bool { return b.Matches(surah, ayah) })
}

func ValidateVerse(surah, ayah int) error {
	if surah < 1 || surah > MaxSurah {
		return fmt.Errorf("surah %d out of range 1-%d", surah, MaxSurah)
	}
	if ayah < 1 {
		return fmt.Errorf("ayah must be positive, got %d", ayah)
	}
	return nil
}
