package in

import (
	"context"

	"miftah/internal/modules/bookmark/dto"
	bookmarkin "miftah/internal/modules/bookmark/port/in"
)

type CLIHandler struct {
	usecase bookmarkin.Usecase
}

func NewCLIHandler(usecase bookmarkin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, surah, ayah int, name, notes string) (dto.AddOutput, error) {
	return h.usecase.Add(ctx, dto.AddInput{SurahNumber: surah, AyahNumber: ayah, SurahName: name, Notes: notes})
}

func (h CLIHandler) Remove(ctx context.Context, surah, ayah int) (bool, error) {
	return h.usecase.Remove(ctx, surah, ayah)
}

func (h CLIHandler) ListBookmarks(ctx context.Context) ([]dto.BookmarkOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) IsBookmarked(ctx context.Context, surah, ayah int) (bool, error) {
	return h.usecase.IsBookmarked(ctx, surah, ayah)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}
