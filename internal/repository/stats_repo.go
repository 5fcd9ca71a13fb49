package repository

import (
	"context"
	"time"

	"cinetrack/internal/domain"

	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Totals is the site-wide aggregate block of the admin dashboard.
type Totals struct {
	TotalUsers  int64    `gorm:"column:total_users" json:"total_users"`
	TotalMedia  int64    `gorm:"column:total_media" json:"total_media"`
	TotalMovies int64    `gorm:"column:total_movies" json:"total_movies"`
	TotalSeries int64    `gorm:"column:total_series" json:"total_series"`
	AvgRating   *float64 `gorm:"column:avg_rating" json:"avg_rating"`
}

func (r *StatsRepository) Totals(ctx context.Context) (*Totals, error) {
	var t Totals
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			COUNT(m.id) AS total_media,
			COALESCE(SUM(CASE WHEN m.type = 'movie' THEN 1 ELSE 0 END), 0) AS total_movies,
			COALESCE(SUM(CASE WHEN m.type = 'series' THEN 1 ELSE 0 END), 0) AS total_series,
			AVG(m.rating) AS avg_rating
		FROM media m`).Scan(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UserStatsRow is one user of the per-user breakdown, heaviest library first.
type UserStatsRow struct {
	ID         int64     `gorm:"column:id" json:"id"`
	Name       string    `gorm:"column:name" json:"name"`
	Email      string    `gorm:"column:email" json:"email"`
	MediaCount int64     `gorm:"column:media_count" json:"media_count"`
	AvgRating  *float64  `gorm:"column:avg_rating" json:"avg_rating"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

// PerUser orders by library size, then by who registered most recently, so
// the top row is a stable "most active user" pick even on ties.
func (r *StatsRepository) PerUser(ctx context.Context) ([]UserStatsRow, error) {
	var rows []UserStatsRow
	err := r.db.WithContext(ctx).
		Table("users u").
		Select(`u.id, u.name, u.email, u.created_at,
			COUNT(m.id) AS media_count, AVG(m.rating) AS avg_rating`).
		Joins("LEFT JOIN media m ON m.user_id = u.id").
		Group("u.id, u.name, u.email, u.created_at").
		Order("media_count DESC").
		Order("u.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// StatusBreakdown counts media per watch status across all users.
func (r *StatsRepository) StatusBreakdown(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status domain.MediaStatus `gorm:"column:status"`
		N      int64              `gorm:"column:n"`
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Media{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[string(row.Status)] = row.N
	}
	return out, nil
}
