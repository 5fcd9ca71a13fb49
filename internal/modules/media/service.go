package media

import (
	"context"
	"errors"

	"cinetrack/internal/domain"
	"cinetrack/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	media *repository.MediaRepository
}

func NewService(media *repository.MediaRepository) *Service {
	return &Service{media: media}
}

func (s *Service) List(ctx context.Context, ownerID int64, f repository.MediaFilter) ([]domain.Media, error) {
	return s.media.ListByOwner(ctx, ownerID, f)
}

func (s *Service) Get(ctx context.Context, id, ownerID int64) (*domain.Media, error) {
	m, err := s.media.GetByIDAndOwner(ctx, id, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return m, err
}

func (s *Service) SearchLocal(ctx context.Context, ownerID int64, q string) ([]domain.Media, error) {
	return s.media.SearchLocal(ctx, ownerID, q)
}

// Create runs the duplicate checks and the insert inside one transaction so
// two concurrent adds of the same title cannot both pass. The tier order is
// imdb_id, then title+year, then title alone.
func (s *Service) Create(ctx context.Context, ownerID int64, req CreateMediaRequest) (*domain.Media, error) {
	m := &domain.Media{
		UserID:      ownerID,
		Title:       req.Title,
		Type:        domain.MediaType(req.Type),
		Genre:       req.Genre,
		Status:      domain.StatusWantToWatch,
		Rating:      req.Rating,
		Notes:       req.Notes,
		DateWatched: req.DateWatched,
		ImdbID:      req.ImdbID,
		ImdbRating:  req.ImdbRating,
		PosterURL:   req.PosterURL,
		Plot:        req.Plot,
		Year:        req.Year,
		Director:    req.Director,
		Actors:      req.Actors,
		Runtime:     req.Runtime,
		Country:     req.Country,
	}
	if req.Status != nil && domain.MediaStatus(*req.Status).Valid() {
		m.Status = domain.MediaStatus(*req.Status)
	}

	err := s.media.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dup, err := s.findDuplicate(tx, ownerID, req); err != nil {
			return err
		} else if dup != nil {
			return dup
		}
		return tx.Create(m).Error
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) findDuplicate(tx *gorm.DB, ownerID int64, req CreateMediaRequest) (*DuplicateError, error) {
	if req.ImdbID != nil && *req.ImdbID != "" {
		existing, err := repository.FindByImdbID(tx, ownerID, *req.ImdbID)
		if err == nil {
			return &DuplicateError{Tier: "imdb_id", Existing: existing}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if req.Year != nil && *req.Year != "" {
		existing, err := repository.FindByTitleYear(tx, ownerID, req.Title, *req.Year)
		if err == nil {
			return &DuplicateError{Tier: "title_year", Existing: existing}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	existing, err := repository.FindByTitle(tx, ownerID, req.Title)
	if err == nil {
		return &DuplicateError{Tier: "title", Existing: existing}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return nil, nil
}

func (s *Service) Update(ctx context.Context, id, ownerID int64, req UpdateMediaRequest) (*domain.Media, error) {
	m, err := s.media.GetByIDAndOwner(ctx, id, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Type != nil && domain.MediaType(*req.Type).Valid() {
		m.Type = domain.MediaType(*req.Type)
	}
	if req.Status != nil && domain.MediaStatus(*req.Status).Valid() {
		m.Status = domain.MediaStatus(*req.Status)
	}
	if req.Genre != nil {
		m.Genre = req.Genre
	}
	if req.Rating != nil {
		m.Rating = req.Rating
	}
	if req.Notes != nil {
		m.Notes = req.Notes
	}
	if req.DateWatched != nil {
		m.DateWatched = req.DateWatched
	}
	if req.ImdbID != nil {
		m.ImdbID = req.ImdbID
	}
	if req.ImdbRating != nil {
		m.ImdbRating = req.ImdbRating
	}
	if req.PosterURL != nil {
		m.PosterURL = req.PosterURL
	}
	if req.Plot != nil {
		m.Plot = req.Plot
	}
	if req.Year != nil {
		m.Year = req.Year
	}
	if req.Director != nil {
		m.Director = req.Director
	}
	if req.Actors != nil {
		m.Actors = req.Actors
	}
	if req.Runtime != nil {
		m.Runtime = req.Runtime
	}
	if req.Country != nil {
		m.Country = req.Country
	}

	if err := s.media.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id, ownerID int64) error {
	affected, err := s.media.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
