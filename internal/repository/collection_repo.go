package repository

import (
	"context"

	"hadithapi/internal/database"
	"hadithapi/internal/domain"

	"gorm.io/gorm"
)

type CollectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// List возвращает страницу коллекций по name_en и общее количество.
func (r *CollectionRepository) List(ctx context.Context, offset, limit int) ([]domain.Collection, int64, error) {
	items := []domain.Collection{}
	var total int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Collection{}).Count(&total).Error; err != nil {
			return err
		}
		if int64(offset) >= total {
			return nil
		}
		return tx.Order("name_en ASC, id ASC").
			Offset(offset).
			Limit(limit).
			Find(&items).Error
	}, database.SnapshotTxOptions(r.db))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *CollectionRepository) GetByID(ctx context.Context, id string) (*domain.Collection, error) {
	var c domain.Collection
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CollectionRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Collection{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
