package suggestion

import (
	"context"

	"cinetrack/internal/domain"
	"cinetrack/internal/notification"
	"cinetrack/internal/repository"

	"gorm.io/gorm"
)

type SuggestionRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Suggestion, error)
	Delete(ctx context.Context, id int64) error
	CountPendingForReceiver(ctx context.Context, receiverID int64) (int64, error)
	ListReceived(ctx context.Context, receiverID int64, status string) ([]repository.ReceivedRow, error)
	ListSent(ctx context.Context, senderID int64) ([]repository.SentRow, error)
	DB() *gorm.DB
}

type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type FriendshipChecker interface {
	AreFriends(ctx context.Context, a, b int64) (bool, error)
}

type MediaRepositoryInterface interface {
	GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Media, error)
}

type Notifier interface {
	Enqueue(ev notification.Event)
}
