package hadith

import "hadithapi/internal/pkg/apperror"

var (
	ErrHadithNotFound     = apperror.NotFound("HADITH_NOT_FOUND", "Hadith not found")
	ErrCollectionNotFound = apperror.NotFound("COLLECTION_NOT_FOUND", "Collection not found")
	ErrChapterNotFound    = apperror.NotFound("CHAPTER_NOT_FOUND", "Chapter not found")
	ErrInvalidGrade       = apperror.Validation("VALIDATION_ERROR", "Invalid grade").
				WithDetails(map[string]string{"grade": "oneof=Sahih Hasan Da'if Mawdu' Unknown"})
)
