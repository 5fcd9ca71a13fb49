package repository

import (
	"context"
	"errors"

	"cinetrack/internal/domain"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// GetOrCreate returns the user's profile, inserting an empty row for accounts
// that predate the profiles table.
func (r *ProfileRepository) GetOrCreate(ctx context.Context, userID int64) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = domain.Profile{UserID: userID}
		if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	return r.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("user_id = ?", p.UserID).
		Updates(map[string]any{
			"favorite_genres":    p.FavoriteGenres,
			"favorite_movies":    p.FavoriteMovies,
			"favorite_directors": p.FavoriteDirectors,
			"favorite_actors":    p.FavoriteActors,
			"bio":                p.Bio,
		}).Error
}
