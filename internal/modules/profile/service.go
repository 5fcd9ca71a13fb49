package profile

import (
	"context"

	"cinetrack/internal/domain"
)

type ProfileRepositoryInterface interface {
	GetOrCreate(ctx context.Context, userID int64) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
}

type Service struct {
	profiles ProfileRepositoryInterface
}

func NewService(profiles ProfileRepositoryInterface) *Service {
	return &Service{profiles: profiles}
}

func (s *Service) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	return s.profiles.GetOrCreate(ctx, userID)
}

// Update is a full replacement of the five free-text fields; nil clears.
func (s *Service) Update(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.Profile, error) {
	if _, err := s.profiles.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	p := &domain.Profile{
		UserID:            userID,
		FavoriteGenres:    req.FavoriteGenres,
		FavoriteMovies:    req.FavoriteMovies,
		FavoriteDirectors: req.FavoriteDirectors,
		FavoriteActors:    req.FavoriteActors,
		Bio:               req.Bio,
	}
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}

	return s.profiles.GetOrCreate(ctx, userID)
}
