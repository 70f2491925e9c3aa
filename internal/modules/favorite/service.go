package favorite

import (
	"context"
	"errors"

	"hadithapi/internal/domain"
	"hadithapi/internal/pkg/pagination"
	"hadithapi/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	favorites FavoriteRepository
	hadiths   HadithRepository
}

func NewService(favorites FavoriteRepository, hadiths HadithRepository) *Service {
	return &Service{favorites: favorites, hadiths: hadiths}
}

func (s *Service) List(ctx context.Context, userID int64, collectionID string, p pagination.Params) ([]domain.FavoriteWithHadith, pagination.Meta, error) {
	items, total, err := s.favorites.ListByUser(ctx, userID, collectionID, p.Offset(), p.Limit())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, pagination.NewMeta(p, total), nil
}

// Add fails with ErrAlreadyFavorite when the pair exists. The unique index
// decides, so two concurrent adds yield one row and one conflict.
func (s *Service) Add(ctx context.Context, userID int64, req AddFavoriteRequest) (*domain.FavoriteWithHadith, error) {
	if err := s.ensureHadith(ctx, req.HadithID); err != nil {
		return nil, err
	}

	fav := &domain.Favorite{UserID: userID, HadithID: req.HadithID, Notes: req.Notes}
	if err := s.favorites.Create(ctx, fav); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyFavorite
		}
		return nil, err
	}
	return s.withHadith(ctx, fav)
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*domain.FavoriteWithHadith, error) {
	fav, err := s.favorites.GetByID(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, ErrFavoriteNotFound)
	}
	return s.withHadith(ctx, fav)
}

func (s *Service) UpdateNotes(ctx context.Context, userID, id int64, notes *string) (*domain.FavoriteWithHadith, error) {
	fav, err := s.favorites.UpdateNotes(ctx, userID, id, notes)
	if err != nil {
		return nil, notFound(err, ErrFavoriteNotFound)
	}
	return s.withHadith(ctx, fav)
}

func (s *Service) Remove(ctx context.Context, userID, id int64) error {
	return notFound(s.favorites.DeleteByID(ctx, userID, id), ErrFavoriteNotFound)
}

func (s *Service) RemoveByHadith(ctx context.Context, userID int64, hadithID string) error {
	return notFound(s.favorites.DeleteByHadith(ctx, userID, hadithID), ErrNotInFavorites)
}

// Toggle adds the hadith when absent and removes it when present.
func (s *Service) Toggle(ctx context.Context, userID int64, hadithID string) (*ToggleResponse, error) {
	if err := s.ensureHadith(ctx, hadithID); err != nil {
		return nil, err
	}

	fav, added, err := s.favorites.Toggle(ctx, userID, hadithID)
	if err != nil {
		return nil, err
	}
	if !added {
		return &ToggleResponse{IsFavorite: false}, nil
	}

	full, err := s.withHadith(ctx, fav)
	if err != nil {
		return nil, err
	}
	return &ToggleResponse{IsFavorite: true, Favorite: full}, nil
}

func (s *Service) ensureHadith(ctx context.Context, hadithID string) error {
	ok, err := s.hadiths.Exists(ctx, hadithID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrHadithNotFound
	}
	return nil
}

func (s *Service) withHadith(ctx context.Context, fav *domain.Favorite) (*domain.FavoriteWithHadith, error) {
	h, err := s.hadiths.GetByID(ctx, fav.HadithID, fav.UserID)
	if err != nil {
		return nil, notFound(err, ErrHadithNotFound)
	}
	return &domain.FavoriteWithHadith{
		ID:       fav.ID,
		UserID:   fav.UserID,
		HadithID: fav.HadithID,
		Notes:    fav.Notes,
		AddedAt:  fav.AddedAt,
		Hadith:   h,
	}, nil
}

// notFound maps gorm's not-found to the module error and passes the rest through.
func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
