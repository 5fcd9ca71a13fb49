package friendship

import (
	"context"

	"cinetrack/internal/domain"
	"cinetrack/internal/notification"
	"cinetrack/internal/repository"

	"gorm.io/gorm"
)

type FriendshipRepositoryInterface interface {
	GetByPair(ctx context.Context, a, b int64) (*domain.Friendship, error)
	GetByID(ctx context.Context, id int64) (*domain.Friendship, error)
	Create(ctx context.Context, f *domain.Friendship) error
	UpdateStatus(ctx context.Context, id int64, status domain.FriendshipStatus) error
	Delete(ctx context.Context, id int64) error
	AreFriends(ctx context.Context, a, b int64) (bool, error)
	ListFriendRows(ctx context.Context, userID int64) ([]repository.FriendRow, error)
	ListReceivedRequests(ctx context.Context, userID int64) ([]repository.RequestRow, error)
	ListSentRequests(ctx context.Context, userID int64) ([]repository.RequestRow, error)
	DB() *gorm.DB
}

type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Search(ctx context.Context, q string, excludeID int64, limit int) ([]domain.User, error)
}

type MediaRepositoryInterface interface {
	ListByOwner(ctx context.Context, ownerID int64, f repository.MediaFilter) ([]domain.Media, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Media, error)
}

// Notifier decouples the service from the dispatcher goroutine in tests.
type Notifier interface {
	Enqueue(ev notification.Event)
}
