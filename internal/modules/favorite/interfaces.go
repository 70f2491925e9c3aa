package favorite

import (
	"context"

	"hadithapi/internal/domain"
)

// FavoriteRepository: методы репозитория, нужные сервису
type FavoriteRepository interface {
	Create(ctx context.Context, fav *domain.Favorite) error
	Toggle(ctx context.Context, userID int64, hadithID string) (*domain.Favorite, bool, error)
	GetByID(ctx context.Context, userID, id int64) (*domain.Favorite, error)
	UpdateNotes(ctx context.Context, userID, id int64, notes *string) (*domain.Favorite, error)
	DeleteByID(ctx context.Context, userID, id int64) error
	DeleteByHadith(ctx context.Context, userID int64, hadithID string) error
	ListByUser(ctx context.Context, userID int64, collectionID string, offset, limit int) ([]domain.FavoriteWithHadith, int64, error)
}

type HadithRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string, viewerID int64) (*domain.HadithDetails, error)
}
