package repository

import (
	"context"

	"hadithapi/internal/database"
	"hadithapi/internal/domain"

	"gorm.io/gorm"
)

type ChapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{db: db}
}

// ListByCollection returns chapters ordered by chapter_number.
func (r *ChapterRepository) ListByCollection(ctx context.Context, collectionID string, offset, limit int) ([]domain.Chapter, int64, error) {
	items := []domain.Chapter{}
	var total int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&domain.Chapter{}).Where("collection_id = ?", collectionID)
		if err := q.Count(&total).Error; err != nil {
			return err
		}
		if int64(offset) >= total {
			return nil
		}
		return tx.Where("collection_id = ?", collectionID).
			Order("chapter_number ASC, id ASC").
			Offset(offset).
			Limit(limit).
			Find(&items).Error
	}, database.SnapshotTxOptions(r.db))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ChapterRepository) GetByID(ctx context.Context, id string) (*domain.Chapter, error) {
	var ch domain.Chapter
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ch).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

// GetInCollection finds a chapter only if it belongs to collectionID.
func (r *ChapterRepository) GetInCollection(ctx context.Context, collectionID, id string) (*domain.Chapter, error) {
	var ch domain.Chapter
	err := r.db.WithContext(ctx).
		Where("id = ? AND collection_id = ?", id, collectionID).
		First(&ch).Error
	if err != nil {
		return nil, err
	}
	return &ch, nil
}
