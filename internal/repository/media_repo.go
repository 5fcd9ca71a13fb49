package repository

import (
	"context"
	"strings"

	"cinetrack/internal/domain"

	"gorm.io/gorm"
)

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) DB() *gorm.DB { return r.db }

type MediaFilter struct {
	Status string
	Type   string
	Genre  string
}

func (r *MediaRepository) ListByOwner(ctx context.Context, ownerID int64, f MediaFilter) ([]domain.Media, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Genre != "" {
		q = q.Where("genre LIKE ?", "%"+f.Genre+"%")
	}

	var items []domain.Media
	err := q.Order(domain.StatusOrderSQL).Order(domain.DateOrderSQL).Find(&items).Error
	return items, err
}

func (r *MediaRepository) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Media, error) {
	var m domain.Media
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SearchLocal matches the query against title, actors and director.
func (r *MediaRepository) SearchLocal(ctx context.Context, ownerID int64, q string) ([]domain.Media, error) {
	term := "%" + strings.ToLower(q) + "%"
	var items []domain.Media
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Where("LOWER(title) LIKE ? OR LOWER(actors) LIKE ? OR LOWER(director) LIKE ?", term, term, term).
		Order(domain.StatusOrderSQL).
		Order("date_added DESC").
		Find(&items).Error
	return items, err
}

func (r *MediaRepository) Create(ctx context.Context, m *domain.Media) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MediaRepository) Update(ctx context.Context, m *domain.Media) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MediaRepository) Delete(ctx context.Context, id, ownerID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&domain.Media{})
	return result.RowsAffected, result.Error
}

// Duplicate lookups used by the three-tier policy. Each runs against the
// given tx so check-then-insert stays inside one transaction.

func FindByImdbID(tx *gorm.DB, ownerID int64, imdbID string) (*domain.Media, error) {
	var m domain.Media
	err := tx.Where("user_id = ? AND imdb_id = ?", ownerID, imdbID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func FindByTitleYear(tx *gorm.DB, ownerID int64, title, year string) (*domain.Media, error) {
	var m domain.Media
	err := tx.Where("user_id = ? AND LOWER(title) = ? AND year = ?",
		ownerID, strings.ToLower(strings.TrimSpace(title)), year).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func FindByTitle(tx *gorm.DB, ownerID int64, title string) (*domain.Media, error) {
	var m domain.Media
	err := tx.Where("user_id = ? AND LOWER(title) = ?",
		ownerID, strings.ToLower(strings.TrimSpace(title))).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindEquivalent implements the accept-time ownership check: imdb_id match OR
// title+year match.
func FindEquivalent(tx *gorm.DB, ownerID int64, imdbID, title, year *string) (*domain.Media, error) {
	q := tx.Where("user_id = ?", ownerID)
	if imdbID != nil && *imdbID != "" {
		q = q.Where("(imdb_id IS NOT NULL AND imdb_id = ?) OR (LOWER(title) = ? AND year = ?)",
			*imdbID, lowerOrEmpty(title), derefOrEmpty(year))
	} else {
		q = q.Where("LOWER(title) = ? AND year = ?", lowerOrEmpty(title), derefOrEmpty(year))
	}
	var m domain.Media
	if err := q.First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func lowerOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*s))
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
