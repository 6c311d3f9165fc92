package dto

import "time"

type AddInput struct {
	SurahNumber int
	AyahNumber  int
	SurahName   string
	Notes       string
}

type AddOutput struct {
	Bookmark BookmarkOutput
	// Added is false when the verse was already bookmarked.
	Added bool
}

type BookmarkOutput struct {
	ID           string
	SurahNumber  int
	SurahName    string
	AyahNumber   int
	Notes        string
	BookmarkedAt time.Time
}
