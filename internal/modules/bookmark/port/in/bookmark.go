package in

import (
	"context"

	"miftah/internal/modules/bookmark/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.AddOutput, error)
	Remove(ctx context.Context, surahNumber, ayahNumber int) (bool, error)
	List(ctx context.Context) ([]dto.BookmarkOutput, error)
	IsBookmarked(ctx context.Context, surahNumber, ayahNumber int) (bool, error)
	Clear(ctx context.Context) error
}
