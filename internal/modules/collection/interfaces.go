package collection

import (
	"context"

	"hadithapi/internal/domain"
)

type CollectionRepository interface {
	List(ctx context.Context, offset, limit int) ([]domain.Collection, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Collection, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type ChapterRepository interface {
	ListByCollection(ctx context.Context, collectionID string, offset, limit int) ([]domain.Chapter, int64, error)
	GetInCollection(ctx context.Context, collectionID, id string) (*domain.Chapter, error)
}
