package repository

import (
	"context"
	"errors"
	"time"

	"cinetrack/internal/domain"

	"gorm.io/gorm"
)

type FriendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

func (r *FriendshipRepository) DB() *gorm.DB { return r.db }

// GetByPair returns the single row for an unordered user pair, nil when none
// exists. Canonical storage means one query regardless of who initiated.
func (r *FriendshipRepository) GetByPair(ctx context.Context, a, b int64) (*domain.Friendship, error) {
	lo, hi := domain.CanonicalPair(a, b)
	var f domain.Friendship
	err := r.db.WithContext(ctx).
		Where("user_lo_id = ? AND user_hi_id = ?", lo, hi).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FriendshipRepository) GetByID(ctx context.Context, id int64) (*domain.Friendship, error) {
	var f domain.Friendship
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FriendshipRepository) Create(ctx context.Context, f *domain.Friendship) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FriendshipRepository) UpdateStatus(ctx context.Context, id int64, status domain.FriendshipStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Friendship{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *FriendshipRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Friendship{}, "id = ?", id).Error
}

// AreFriends is symmetric by construction.
func (r *FriendshipRepository) AreFriends(ctx context.Context, a, b int64) (bool, error) {
	lo, hi := domain.CanonicalPair(a, b)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Friendship{}).
		Where("user_lo_id = ? AND user_hi_id = ? AND status = ?", lo, hi, domain.FriendshipAccepted).
		Count(&count).Error
	return count > 0, err
}

// ListAccepted returns all accepted rows involving the user.
func (r *FriendshipRepository) ListAccepted(ctx context.Context, userID int64) ([]domain.Friendship, error) {
	var rows []domain.Friendship
	err := r.db.WithContext(ctx).
		Where("(user_lo_id = ? OR user_hi_id = ?) AND status = ?", userID, userID, domain.FriendshipAccepted).
		Find(&rows).Error
	return rows, err
}

// FriendRow is one accepted friendship collapsed to "the other person".
type FriendRow struct {
	FriendID     int64     `gorm:"column:friend_id" json:"friend_id"`
	Name         string    `gorm:"column:name" json:"name"`
	Email        string    `gorm:"column:email" json:"email"`
	FriendsSince time.Time `gorm:"column:friends_since" json:"friends_since"`
}

func (r *FriendshipRepository) ListFriendRows(ctx context.Context, userID int64) ([]FriendRow, error) {
	var rows []FriendRow
	err := r.db.WithContext(ctx).
		Table("friendships f").
		Select(`CASE WHEN f.user_lo_id = ? THEN f.user_hi_id ELSE f.user_lo_id END AS friend_id,
			u.name, u.email, f.updated_at AS friends_since`, userID).
		Joins(`JOIN users u ON u.id = CASE WHEN f.user_lo_id = ? THEN f.user_hi_id ELSE f.user_lo_id END`, userID).
		Where("(f.user_lo_id = ? OR f.user_hi_id = ?) AND f.status = ?",
			userID, userID, domain.FriendshipAccepted).
		Order("u.name").
		Scan(&rows).Error
	return rows, err
}

// RequestRow is a pending request joined with the counterparty's identity.
type RequestRow struct {
	ID        int64     `gorm:"column:id" json:"id"`
	UserID    int64     `gorm:"column:other_id" json:"user_id"`
	Name      string    `gorm:"column:name" json:"name"`
	Email     string    `gorm:"column:email" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (r *FriendshipRepository) ListReceivedRequests(ctx context.Context, userID int64) ([]RequestRow, error) {
	var rows []RequestRow
	err := r.db.WithContext(ctx).
		Table("friendships f").
		Select("f.id, f.requester_id AS other_id, u.name, u.email, f.created_at").
		Joins("JOIN users u ON u.id = f.requester_id").
		Where("(f.user_lo_id = ? OR f.user_hi_id = ?) AND f.requester_id != ? AND f.status = ?",
			userID, userID, userID, domain.FriendshipPending).
		Order("f.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *FriendshipRepository) ListSentRequests(ctx context.Context, userID int64) ([]RequestRow, error) {
	var rows []RequestRow
	err := r.db.WithContext(ctx).
		Table("friendships f").
		Select(`f.id,
			CASE WHEN f.requester_id = f.user_lo_id THEN f.user_hi_id ELSE f.user_lo_id END AS other_id,
			u.name, u.email, f.created_at`).
		Joins(`JOIN users u ON u.id = CASE WHEN f.requester_id = f.user_lo_id THEN f.user_hi_id ELSE f.user_lo_id END`).
		Where("f.requester_id = ? AND f.status = ?", userID, domain.FriendshipPending).
		Order("f.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// ListPendingReceived returns pending rows where the user is the addressee.
func (r *FriendshipRepository) ListPendingReceived(ctx context.Context, userID int64) ([]domain.Friendship, error) {
	var rows []domain.Friendship
	err := r.db.WithContext(ctx).
		Where("(user_lo_id = ? OR user_hi_id = ?) AND requester_id != ? AND status = ?",
			userID, userID, userID, domain.FriendshipPending).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListPendingSent returns pending rows the user initiated.
func (r *FriendshipRepository) ListPendingSent(ctx context.Context, userID int64) ([]domain.Friendship, error) {
	var rows []domain.Friendship
	err := r.db.WithContext(ctx).
		Where("requester_id = ? AND status = ?", userID, domain.FriendshipPending).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
