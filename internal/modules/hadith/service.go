package hadith

import (
	"context"
	"errors"
	"strings"
	"time"

	"hadithapi/internal/domain"
	"hadithapi/internal/pkg/pagination"
	"hadithapi/internal/selection"

	"gorm.io/gorm"
)

type Service struct {
	engine      *selection.Engine
	hadiths     HadithRepository
	collections CollectionRepository
	chapters    ChapterRepository
	loc         *time.Location
	now         func() time.Time
}

// NewService wires the selection engine with lookups used for 404 checks.
// loc decides what "today" is for the daily pick.
func NewService(
	engine *selection.Engine,
	hadiths HadithRepository,
	collections CollectionRepository,
	chapters ChapterRepository,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		engine:      engine,
		hadiths:     hadiths,
		collections: collections,
		chapters:    chapters,
		loc:         loc,
		now:         time.Now,
	}
}

func (s *Service) List(ctx context.Context, q ListQuery, p pagination.Params, viewerID int64) ([]domain.HadithDetails, pagination.Meta, error) {
	grades, err := parseGrades(q.Grade)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	f := selection.Filter{
		CollectionID: strings.TrimSpace(q.CollectionID),
		ChapterID:    strings.TrimSpace(q.ChapterID),
		Grades:       grades,
		Narrator:     strings.TrimSpace(q.Narrator),
		Query:        strings.TrimSpace(q.Q),
		Tags:         q.Tags,
		ViewerID:     viewerID,
	}
	return s.engine.Page(ctx, f, p)
}

func (s *Service) Get(ctx context.Context, id string, viewerID int64) (*domain.HadithDetails, error) {
	h, err := s.hadiths.GetByID(ctx, id, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHadithNotFound
		}
		return nil, err
	}
	return h, nil
}

// Daily returns the hadith of the day for dateParam (YYYY-MM-DD, empty for
// today) together with the resolved date.
func (s *Service) Daily(ctx context.Context, dateParam string, viewerID int64) (*domain.HadithDetails, time.Time, error) {
	day, err := selection.ParseDay(strings.TrimSpace(dateParam), s.now(), s.loc)
	if err != nil {
		return nil, time.Time{}, err
	}

	h, err := s.engine.Daily(ctx, day, viewerID)
	if err != nil {
		return nil, time.Time{}, err
	}
	return h, day, nil
}

func (s *Service) Random(ctx context.Context, q RandomQuery, viewerID int64) (*domain.HadithDetails, error) {
	grades, err := parseGrades(q.Grade)
	if err != nil {
		return nil, err
	}

	return s.engine.Random(ctx, selection.Filter{
		CollectionID:     strings.TrimSpace(q.CollectionID),
		Grades:           grades,
		ViewerID:         viewerID,
		ExcludeFavorites: q.ExcludeFavorites,
	})
}

func (s *Service) ByCollection(ctx context.Context, collectionID, grade string, p pagination.Params, viewerID int64) ([]domain.HadithDetails, pagination.Meta, error) {
	grades, err := parseGrades(grade)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	ok, err := s.collections.Exists(ctx, collectionID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if !ok {
		return nil, pagination.Meta{}, ErrCollectionNotFound
	}

	return s.engine.Page(ctx, selection.Filter{
		CollectionID: collectionID,
		Grades:       grades,
		ViewerID:     viewerID,
	}, p)
}

func (s *Service) ByChapter(ctx context.Context, chapterID string, p pagination.Params, viewerID int64) ([]domain.HadithDetails, pagination.Meta, error) {
	if _, err := s.chapters.GetByID(ctx, chapterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pagination.Meta{}, ErrChapterNotFound
		}
		return nil, pagination.Meta{}, err
	}

	return s.engine.Page(ctx, selection.Filter{
		ChapterID: chapterID,
		ViewerID:  viewerID,
	}, p)
}

func parseGrades(raw string) ([]domain.Grade, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	g, err := domain.ParseGrade(raw)
	if err != nil {
		return nil, ErrInvalidGrade
	}
	return []domain.Grade{g}, nil
}
