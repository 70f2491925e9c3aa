package favorite

import "hadithapi/internal/pkg/apperror"

var (
	ErrHadithNotFound   = apperror.NotFound("HADITH_NOT_FOUND", "Hadith not found")
	ErrFavoriteNotFound = apperror.NotFound("FAVORITE_NOT_FOUND", "Favorite not found")
	ErrNotInFavorites   = apperror.NotFound("FAVORITE_NOT_FOUND", "Hadith not in favorites")
	ErrAlreadyFavorite  = apperror.Conflict("ALREADY_FAVORITE", "Hadith already in favorites")
)
