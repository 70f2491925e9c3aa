package collection

import "hadithapi/internal/pkg/apperror"

var (
	ErrCollectionNotFound = apperror.NotFound("COLLECTION_NOT_FOUND", "Collection not found")
	ErrChapterNotFound    = apperror.NotFound("CHAPTER_NOT_FOUND", "Chapter not found")
)
