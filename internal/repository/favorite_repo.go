package repository

import (
	"context"
	"errors"
	"fmt"

	"hadithapi/internal/database"
	"hadithapi/internal/domain"

	"gorm.io/gorm"
)

// toggleAttempts ограничивает число циклов delete/insert в Toggle.
const toggleAttempts = 5

var ErrToggleContention = errors.New("favorite toggle did not settle")

// FavoriteRepository работает с избранными хадисами пользователя.
// Уникальный индекс (user_id, hadith_id) не даёт создать дубль даже при
// конкурентных запросах, поэтому отдельных проверок существования нет.
type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create добавляет хадис в избранное.
// Возвращает ErrDuplicate, если пара уже существует.
func (r *FavoriteRepository) Create(ctx context.Context, fav *domain.Favorite) error {
	if err := r.db.WithContext(ctx).Create(fav).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("favorite %d/%s: %w", fav.UserID, fav.HadithID, ErrDuplicate)
		}
		return err
	}
	return nil
}

// Toggle переключает состояние пары (user, hadith).
// Если запись была удалена, возвращает (nil, false). Если создана, то (fav, true).
//
// Каждый шаг атомарен сам по себе: DELETE либо удаляет строку, либо нет;
// INSERT либо проходит, либо упирается в уникальный индекс. Во втором случае
// параллельный toggle успел вставить строку, и цикл повторяется.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID int64, hadithID string) (*domain.Favorite, bool, error) {
	db := r.db.WithContext(ctx)

	for attempt := 0; attempt < toggleAttempts; attempt++ {
		res := db.Where("user_id = ? AND hadith_id = ?", userID, hadithID).
			Delete(&domain.Favorite{})
		if res.Error != nil {
			return nil, false, res.Error
		}
		if res.RowsAffected > 0 {
			return nil, false, nil
		}

		fav := &domain.Favorite{UserID: userID, HadithID: hadithID}
		err := db.Create(fav).Error
		if err == nil {
			return fav, true, nil
		}
		if !database.IsUniqueViolation(err) {
			return nil, false, err
		}
	}

	return nil, false, ErrToggleContention
}

// GetByID возвращает избранное только если оно принадлежит пользователю.
func (r *FavoriteRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Favorite, error) {
	var fav domain.Favorite
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&fav).Error
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

func (r *FavoriteRepository) UpdateNotes(ctx context.Context, userID, id int64, notes *string) (*domain.Favorite, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("notes", notes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, userID, id)
}

func (r *FavoriteRepository) DeleteByID(ctx context.Context, userID, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *FavoriteRepository) DeleteByHadith(ctx context.Context, userID int64, hadithID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND hadith_id = ?", userID, hadithID).
		Delete(&domain.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountPair is used by tests and diagnostics to check the pair is never duplicated.
func (r *FavoriteRepository) CountPair(ctx context.Context, userID int64, hadithID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("user_id = ? AND hadith_id = ?", userID, hadithID).
		Count(&count).Error
	return count, err
}

// ListByUser возвращает избранное пользователя с деталями хадиса, новые сверху.
// collectionID сужает выборку до одной коллекции.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64, collectionID string, offset, limit int) ([]domain.FavoriteWithHadith, int64, error) {
	items := []domain.FavoriteWithHadith{}
	var total int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped := func() *gorm.DB {
			q := tx.Model(&domain.Favorite{}).Where("favorites.user_id = ?", userID)
			if collectionID != "" {
				q = q.Joins("JOIN hadiths ON hadiths.id = favorites.hadith_id").
					Where("hadiths.collection_id = ?", collectionID)
			}
			return q
		}

		if err := scoped().Count(&total).Error; err != nil {
			return err
		}
		if int64(offset) >= total {
			return nil
		}

		var favs []domain.Favorite
		err := scoped().
			Select("favorites.*").
			Order("favorites.added_at DESC, favorites.id DESC").
			Offset(offset).
			Limit(limit).
			Find(&favs).Error
		if err != nil {
			return err
		}
		if len(favs) == 0 {
			return nil
		}

		ids := make([]string, 0, len(favs))
		for _, f := range favs {
			ids = append(ids, f.HadithID)
		}
		var details []domain.HadithDetails
		err = joinedHadiths(tx).
			Select(hadithDetailsColumns, userID).
			Where("hadiths.id IN ?", ids).
			Scan(&details).Error
		if err != nil {
			return err
		}
		if err := attachTags(tx, details); err != nil {
			return err
		}

		byID := make(map[string]*domain.HadithDetails, len(details))
		for i := range details {
			byID[details[i].ID] = &details[i]
		}
		for _, f := range favs {
			items = append(items, domain.FavoriteWithHadith{
				ID:       f.ID,
				UserID:   f.UserID,
				HadithID: f.HadithID,
				Notes:    f.Notes,
				AddedAt:  f.AddedAt,
				Hadith:   byID[f.HadithID],
			})
		}
		return nil
	}, database.SnapshotTxOptions(r.db))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
