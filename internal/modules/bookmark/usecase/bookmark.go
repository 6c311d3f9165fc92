package usecase

import (
	"context"

	"miftah/internal/modules/bookmark/domain"
	"miftah/internal/modules/bookmark/dto"
	bookmarkin "miftah/internal/modules/bookmark/port/in"
	"miftah/internal/modules/bookmark/service"
)

type Interactor struct {
	svc *service.Bookmarks
}

func NewInteractor(svc *service.Bookmarks) bookmarkin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.AddOutput, error) {
	b, added, err := i.svc.Add(ctx, input.SurahNumber, input.AyahNumber, input.SurahName, input.Notes)
	if err != nil {
		return dto.AddOutput{}, err
	}
	return dto.AddOutput{Bookmark: toOutput(b), Added: added}, nil
}

func (i *Interactor) Remove(ctx context.Context, surahNumber, ayahNumber int) (bool, error) {
	return i.svc.Remove(ctx, surahNumber, ayahNumber)
}

func (i *Interactor) List(ctx context.Context) ([]dto.BookmarkOutput, error) {
	list, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BookmarkOutput, 0, len(list))
	for _, b := range list {
		out = append(out, toOutput(b))
	}
	return out, nil
}

func (i *Interactor) IsBookmarked(ctx context.Context, surahNumber, ayahNumber int) (bool, error) {
	return i.svc.Contains(ctx, surahNumber, ayahNumber)
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.svc.Clear(ctx)
}

func toOutput(b domain.Bookmark) dto.BookmarkOutput {
	at, _ := b.At()
	return dto.BookmarkOutput{
		ID:           b.ID,
		SurahNumber:  b.SurahNumber,
		SurahName:    b.SurahName,
		AyahNumber:   b.AyahNumber,
		Notes:        b.Notes,
		BookmarkedAt: at,
	}
}
