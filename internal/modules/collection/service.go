package collection

import (
	"context"
	"errors"

	"hadithapi/internal/domain"
	"hadithapi/internal/pkg/pagination"

	"gorm.io/gorm"
)

type Service struct {
	collections CollectionRepository
	chapters    ChapterRepository
}

func NewService(collections CollectionRepository, chapters ChapterRepository) *Service {
	return &Service{collections: collections, chapters: chapters}
}

func (s *Service) List(ctx context.Context, p pagination.Params) ([]domain.Collection, pagination.Meta, error) {
	items, total, err := s.collections.List(ctx, p.Offset(), p.Limit())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, pagination.NewMeta(p, total), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Collection, error) {
	c, err := s.collections.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListChapters fails with ErrCollectionNotFound for an unknown collection
// instead of returning an empty page.
func (s *Service) ListChapters(ctx context.Context, collectionID string, p pagination.Params) ([]domain.Chapter, pagination.Meta, error) {
	ok, err := s.collections.Exists(ctx, collectionID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if !ok {
		return nil, pagination.Meta{}, ErrCollectionNotFound
	}

	items, total, err := s.chapters.ListByCollection(ctx, collectionID, p.Offset(), p.Limit())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, pagination.NewMeta(p, total), nil
}

func (s *Service) GetChapter(ctx context.Context, collectionID, chapterID string) (*domain.Chapter, error) {
	ch, err := s.chapters.GetInCollection(ctx, collectionID, chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, err
	}
	return ch, nil
}
