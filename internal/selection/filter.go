package selection

import (
	"context"

	"hadithapi/internal/domain"
)

// Filter is a conjunction of optional criteria over the hadith relation.
// Zero values impose no constraint.
type Filter struct {
	CollectionID string
	ChapterID    string
	Grades       []domain.Grade
	Narrator     string // case-insensitive substring
	Query        string // case-insensitive substring over texts, narrator, collection and chapter names
	Tags         []string

	// ViewerID annotates is_favorite; 0 means anonymous.
	ViewerID int64
	// ExcludeFavorites drops rows the viewer already favorited. Ignored for
	// anonymous viewers.
	ExcludeFavorites bool
}

// Reader evaluates a filter against one consistent view of the data.
type Reader interface {
	Count(ctx context.Context, f Filter) (int64, error)
	// Slice returns rows ordered by hadith_number then id.
	Slice(ctx context.Context, f Filter, offset, limit int) ([]domain.HadithDetails, error)
}

// Store hands out a Reader bound to a single snapshot. Everything fn does
// through the Reader observes the same data.
type Store interface {
	Snapshot(ctx context.Context, fn func(r Reader) error) error
}
