package repository

import (
	"context"

	"cinetrack/internal/domain"

	"gorm.io/gorm"
)

type SuggestionRepository struct {
	db *gorm.DB
}

func NewSuggestionRepository(db *gorm.DB) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

func (r *SuggestionRepository) DB() *gorm.DB { return r.db }

func (r *SuggestionRepository) GetByID(ctx context.Context, id int64) (*domain.Suggestion, error) {
	var s domain.Suggestion
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SuggestionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Suggestion{}, "id = ?", id).Error
}

func (r *SuggestionRepository) CountPendingForReceiver(ctx context.Context, receiverID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Suggestion{}).
		Where("receiver_id = ? AND status = ?", receiverID, domain.SuggestionPending).
		Count(&count).Error
	return count, err
}

// ReceivedRow carries a suggestion joined with sender identity and the
// suggested media's metadata, as listed on the receiving side.
type ReceivedRow struct {
	domain.Suggestion
	SenderName   string  `gorm:"column:sender_name" json:"sender_name"`
	SenderEmail  string  `gorm:"column:sender_email" json:"sender_email"`
	Title        string  `gorm:"column:title" json:"title"`
	Type         string  `gorm:"column:type" json:"type"`
	Genre        *string `gorm:"column:genre" json:"genre"`
	Year         *string `gorm:"column:year" json:"year"`
	PosterURL    *string `gorm:"column:poster_url" json:"poster_url"`
	Plot         *string `gorm:"column:plot" json:"plot"`
	ImdbRating   *string `gorm:"column:imdb_rating" json:"imdb_rating"`
	SenderRating *int    `gorm:"column:sender_rating" json:"sender_rating"`
	Director     *string `gorm:"column:director" json:"director"`
	Actors       *string `gorm:"column:actors" json:"actors"`
	Runtime      *string `gorm:"column:runtime" json:"runtime"`
	Country      *string `gorm:"column:country" json:"country"`
	ImdbID       *string `gorm:"column:imdb_id" json:"imdb_id"`
}

const suggestionStatusOrder = `CASE suggestions.status
	WHEN 'pending' THEN 1
	WHEN 'accepted' THEN 2
	WHEN 'rejected' THEN 3
	END`

func (r *SuggestionRepository) ListReceived(ctx context.Context, receiverID int64, status string) ([]ReceivedRow, error) {
	q := r.db.WithContext(ctx).
		Table("suggestions").
		Select(`suggestions.*,
			u.name AS sender_name, u.email AS sender_email,
			m.title, m.type, m.genre, m.year, m.poster_url, m.plot,
			m.imdb_rating, m.rating AS sender_rating,
			m.director, m.actors, m.runtime, m.country, m.imdb_id`).
		Joins("JOIN users u ON u.id = suggestions.sender_id").
		Joins("JOIN media m ON m.id = suggestions.media_id").
		Where("suggestions.receiver_id = ?", receiverID)
	if status != "" {
		q = q.Where("suggestions.status = ?", status)
	}

	var rows []ReceivedRow
	err := q.Order(suggestionStatusOrder).Order("suggestions.created_at DESC").Scan(&rows).Error
	return rows, err
}

// SentRow is the sender-side listing: receiver identity plus a thin media summary.
type SentRow struct {
	domain.Suggestion
	ReceiverName  string  `gorm:"column:receiver_name" json:"receiver_name"`
	ReceiverEmail string  `gorm:"column:receiver_email" json:"receiver_email"`
	Title         string  `gorm:"column:title" json:"title"`
	Type          string  `gorm:"column:type" json:"type"`
	Year          *string `gorm:"column:year" json:"year"`
	PosterURL     *string `gorm:"column:poster_url" json:"poster_url"`
}

func (r *SuggestionRepository) ListSent(ctx context.Context, senderID int64) ([]SentRow, error) {
	var rows []SentRow
	err := r.db.WithContext(ctx).
		Table("suggestions").
		Select(`suggestions.*,
			u.name AS receiver_name, u.email AS receiver_email,
			m.title, m.type, m.year, m.poster_url`).
		Joins("JOIN users u ON u.id = suggestions.receiver_id").
		Joins("JOIN media m ON m.id = suggestions.media_id").
		Where("suggestions.sender_id = ?", senderID).
		Order(suggestionStatusOrder).
		Order("suggestions.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
