package friendship

import (
	"context"
	"errors"

	"cinetrack/internal/domain"
	"cinetrack/internal/notification"
	"cinetrack/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	friendships FriendshipRepositoryInterface
	users       UserRepositoryInterface
	media       MediaRepositoryInterface
	notifier    Notifier
}

func NewService(friendships FriendshipRepositoryInterface, users UserRepositoryInterface, media MediaRepositoryInterface, notifier Notifier) *Service {
	return &Service{
		friendships: friendships,
		users:       users,
		media:       media,
		notifier:    notifier,
	}
}

const searchLimit = 10

// SendRequest creates a pending row for the pair. A rejected row does not
// block a new attempt; it is replaced inside the same transaction so the
// unique pair index never sees two rows.
func (s *Service) SendRequest(ctx context.Context, userID, friendID int64) (*domain.Friendship, error) {
	if userID == friendID {
		return nil, ErrSelfRequest
	}

	target, err := s.users.GetByID(ctx, friendID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	sender, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.friendships.GetByPair(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}

	lo, hi := domain.CanonicalPair(userID, friendID)
	f := &domain.Friendship{
		UserLoID:    lo,
		UserHiID:    hi,
		RequesterID: userID,
		Status:      domain.FriendshipPending,
	}

	switch {
	case existing == nil:
		if err := s.friendships.Create(ctx, f); err != nil {
			return nil, err
		}
	case existing.Status == domain.FriendshipAccepted:
		return nil, ErrAlreadyFriends
	case existing.Status == domain.FriendshipPending:
		return nil, ErrRequestPending
	default:
		// rejected: drop the stale row and start over
		err = s.friendships.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&domain.Friendship{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
			return tx.Create(f).Error
		})
		if err != nil {
			return nil, err
		}
	}

	ev := notification.NewEvent(notification.KindFriendRequest, target.ID, target.Email)
	ev.ActorName = sender.Name
	ev.ActorEmail = sender.Email
	s.notifier.Enqueue(ev)

	return f, nil
}

// Respond accepts or rejects a pending request. Anything the responder is not
// allowed to act on, including a request they sent themselves, reads as not
// found so the endpoint leaks nothing about other users' rows.
func (s *Service) Respond(ctx context.Context, requestID, responderID int64, action string) (*domain.Friendship, error) {
	f, err := s.friendships.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if f.Status != domain.FriendshipPending || f.AddresseeID() != responderID {
		return nil, ErrRequestNotFound
	}

	status := domain.FriendshipRejected
	if action == "accept" {
		status = domain.FriendshipAccepted
	}

	if err := s.friendships.UpdateStatus(ctx, f.ID, status); err != nil {
		return nil, err
	}
	f.Status = status

	if status == domain.FriendshipAccepted {
		requester, err := s.users.GetByID(ctx, f.RequesterID)
		if err == nil {
			responder, rerr := s.users.GetByID(ctx, responderID)
			if rerr == nil {
				ev := notification.NewEvent(notification.KindFriendAccepted, requester.ID, requester.Email)
				ev.ActorName = responder.Name
				ev.ActorEmail = responder.Email
				s.notifier.Enqueue(ev)
			}
		}
	}

	return f, nil
}

func (s *Service) ListFriends(ctx context.Context, userID int64) ([]FriendResponse, error) {
	rows, err := s.friendships.ListFriendRows(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]FriendResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FriendResponse{
			ID:           r.FriendID,
			Name:         r.Name,
			Email:        domain.MaskEmail(r.Email),
			FriendsSince: r.FriendsSince,
		})
	}
	return out, nil
}

func (s *Service) ListRequests(ctx context.Context, userID int64) (*RequestsResponse, error) {
	received, err := s.friendships.ListReceivedRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	sent, err := s.friendships.ListSentRequests(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range received {
		received[i].Email = domain.MaskEmail(received[i].Email)
	}
	for i := range sent {
		sent[i].Email = domain.MaskEmail(sent[i].Email)
	}

	return &RequestsResponse{Received: received, Sent: sent}, nil
}

// Remove deletes an accepted friendship. Either side can remove it.
func (s *Service) Remove(ctx context.Context, userID, friendID int64) error {
	f, err := s.friendships.GetByPair(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if f == nil || f.Status != domain.FriendshipAccepted {
		return ErrNotFound
	}
	return s.friendships.Delete(ctx, f.ID)
}

func (s *Service) AreFriends(ctx context.Context, userID, otherID int64) (bool, error) {
	return s.friendships.AreFriends(ctx, userID, otherID)
}

// SearchUsers finds users by name or email substring and annotates each hit
// with the caller's relationship to them.
func (s *Service) SearchUsers(ctx context.Context, userID int64, q string) ([]SearchResult, error) {
	users, err := s.users.Search(ctx, q, userID, searchLimit)
	if err != nil {
		return nil, err
	}

	out := make([]SearchResult, 0, len(users))
	for _, u := range users {
		status := ConnectionNone
		f, err := s.friendships.GetByPair(ctx, userID, u.ID)
		if err != nil {
			return nil, err
		}
		if f != nil {
			switch f.Status {
			case domain.FriendshipAccepted:
				status = ConnectionFriends
			case domain.FriendshipPending:
				if f.RequesterID == userID {
					status = ConnectionPendingSent
				} else {
					status = ConnectionPendingReceived
				}
			}
		}
		out = append(out, SearchResult{
			ID:               u.ID,
			Name:             u.Name,
			Email:            domain.MaskEmail(u.Email),
			ConnectionStatus: status,
		})
	}
	return out, nil
}

// FriendMedia returns a friend's library. Access requires an accepted
// friendship; a pending or absent one reads as forbidden, not empty.
func (s *Service) FriendMedia(ctx context.Context, userID, friendID int64, filter repository.MediaFilter) (*domain.PublicUser, []domain.Media, error) {
	ok, err := s.friendships.AreFriends(ctx, userID, friendID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrNotFriends
	}

	friend, err := s.users.GetByID(ctx, friendID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	items, err := s.media.ListByOwner(ctx, friendID, filter)
	if err != nil {
		return nil, nil, err
	}

	pub := friend.Public()
	return &pub, items, nil
}

func (s *Service) FriendMediaItem(ctx context.Context, userID, friendID, mediaID int64) (*domain.Media, error) {
	ok, err := s.friendships.AreFriends(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFriends
	}

	m, err := s.media.GetByIDAndOwner(ctx, mediaID, friendID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return m, nil
}
