package hadith

import (
	"context"

	"hadithapi/internal/domain"
)

type HadithRepository interface {
	GetByID(ctx context.Context, id string, viewerID int64) (*domain.HadithDetails, error)
}

type CollectionRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type ChapterRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Chapter, error)
}
