package favorite

import "hadithapi/internal/domain"

// AddFavoriteRequest это запрос на добавление в избранное
type AddFavoriteRequest struct {
	HadithID string  `json:"hadith_id" validate:"required,max=64"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateNotesRequest: notes = null очищает заметку
type UpdateNotesRequest struct {
	Notes *string `json:"notes" validate:"omitempty,max=2000"`
}

// ToggleResponse результат переключения избранного
type ToggleResponse struct {
	IsFavorite bool                       `json:"is_favorite"`
	Favorite   *domain.FavoriteWithHadith `json:"favorite"`
}
