package domain

import (
	"time"
)

// Favorite связывает пользователя с хадисом. Пара (user_id, hadith_id)
// уникальна: уникальный индекс защищает от дублей при конкурентных запросах.
type Favorite struct {
	ID       int64     `json:"id" gorm:"primaryKey"`
	UserID   int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_favorites_user_hadith"`
	HadithID string    `json:"hadith_id" gorm:"not null;size:64;index;uniqueIndex:idx_favorites_user_hadith"`
	Notes    *string   `json:"notes"`
	AddedAt  time.Time `json:"added_at" gorm:"autoCreateTime"`

	User   *User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Hadith *Hadith `json:"-" gorm:"foreignKey:HadithID;constraint:OnDelete:CASCADE"`
}

// TableName возвращает имя таблицы в БД
func (Favorite) TableName() string {
	return "favorites"
}

// FavoriteWithHadith используется для ответа API с полной информацией о хадисе
type FavoriteWithHadith struct {
	ID       int64          `json:"id"`
	UserID   int64          `json:"user_id"`
	HadithID string         `json:"hadith_id"`
	Notes    *string        `json:"notes"`
	AddedAt  time.Time      `json:"added_at"`
	Hadith   *HadithDetails `json:"hadith"`
}
