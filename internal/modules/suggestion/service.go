package suggestion

import (
	"context"
	"errors"
	"time"

	"cinetrack/internal/domain"
	"cinetrack/internal/notification"
	"cinetrack/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	suggestions SuggestionRepositoryInterface
	users       UserRepositoryInterface
	friendships FriendshipChecker
	media       MediaRepositoryInterface
	notifier    Notifier
}

func NewService(suggestions SuggestionRepositoryInterface, users UserRepositoryInterface, friendships FriendshipChecker, media MediaRepositoryInterface, notifier Notifier) *Service {
	return &Service{
		suggestions: suggestions,
		users:       users,
		friendships: friendships,
		media:       media,
		notifier:    notifier,
	}
}

// Send suggests one of the sender's items to a friend. Only one pending
// suggestion may exist per sender/receiver/media triple; an accepted or
// rejected one does not block suggesting again.
func (s *Service) Send(ctx context.Context, senderID int64, req SendSuggestionRequest) (*domain.Suggestion, error) {
	if senderID == req.ReceiverID {
		return nil, ErrSelfSuggestion
	}

	receiver, err := s.users.GetByID(ctx, req.ReceiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ok, err := s.friendships.AreFriends(ctx, senderID, req.ReceiverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFriends
	}

	m, err := s.media.GetByIDAndOwner(ctx, req.MediaID, senderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	sug := &domain.Suggestion{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		MediaID:    req.MediaID,
		Message:    truncateMessage(req.Message),
		Status:     domain.SuggestionPending,
	}

	err = s.suggestions.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prior domain.Suggestion
		err := tx.Where("sender_id = ? AND receiver_id = ? AND media_id = ?",
			senderID, req.ReceiverID, req.MediaID).First(&prior).Error
		switch {
		case err == nil:
			if prior.Status == domain.SuggestionPending {
				return ErrAlreadySuggested
			}
			// responded: the new suggestion supersedes it
			if err := tx.Delete(&domain.Suggestion{}, "id = ?", prior.ID).Error; err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		return tx.Create(sug).Error
	})
	if err != nil {
		return nil, err
	}

	ev := notification.NewEvent(notification.KindMediaSuggested, receiver.ID, receiver.Email)
	ev.ActorName = sender.Name
	ev.ActorEmail = sender.Email
	ev.MediaTitle = m.Title
	ev.MediaYear = deref(m.Year)
	ev.MediaGenre = deref(m.Genre)
	ev.PosterURL = deref(m.PosterURL)
	if sug.Message != nil {
		ev.Message = *sug.Message
	}
	s.notifier.Enqueue(ev)

	return sug, nil
}

func (s *Service) ListReceived(ctx context.Context, receiverID int64, status string) ([]repository.ReceivedRow, error) {
	if status != "" && !domain.SuggestionStatus(status).Valid() {
		status = ""
	}
	rows, err := s.suggestions.ListReceived(ctx, receiverID, status)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].SenderEmail = domain.MaskEmail(rows[i].SenderEmail)
	}
	return rows, nil
}

func (s *Service) ListSent(ctx context.Context, senderID int64) ([]repository.SentRow, error) {
	rows, err := s.suggestions.ListSent(ctx, senderID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].ReceiverEmail = domain.MaskEmail(rows[i].ReceiverEmail)
	}
	return rows, nil
}

func (s *Service) CountPending(ctx context.Context, receiverID int64) (int64, error) {
	return s.suggestions.CountPendingForReceiver(ctx, receiverID)
}

// Respond accepts or rejects a pending suggestion. Accepting copies the
// suggested item into the receiver's library inside one transaction; if the
// receiver already owns an equivalent item the suggestion is marked rejected
// and the caller gets AlreadyInCollectionError.
func (s *Service) Respond(ctx context.Context, suggestionID, userID int64, action string) (*domain.Media, error) {
	sug, err := s.suggestions.GetByID(ctx, suggestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sug.ReceiverID != userID {
		return nil, ErrNotReceiver
	}
	if sug.Status != domain.SuggestionPending {
		return nil, ErrAlreadyResponded
	}

	if action == "reject" {
		return nil, s.markResponded(ctx, s.suggestions.DB().WithContext(ctx), sug.ID, domain.SuggestionRejected)
	}

	// resolved reports why an accept had to settle as a rejection. It is
	// returned after the transaction commits so the rejected status sticks.
	var resolved error
	var copied *domain.Media
	err = s.suggestions.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var original domain.Media
		if err := tx.First(&original, "id = ?", sug.MediaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// sender deleted the item since suggesting it
				resolved = ErrMediaNotFound
				return s.markResponded(ctx, tx, sug.ID, domain.SuggestionRejected)
			}
			return err
		}

		existing, err := repository.FindEquivalent(tx, userID, original.ImdbID, &original.Title, original.Year)
		if err == nil {
			resolved = &AlreadyInCollectionError{Existing: existing}
			return s.markResponded(ctx, tx, sug.ID, domain.SuggestionRejected)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// must go through tx: the sqlite pool is capped at one connection
		// and the transaction is holding it
		var sender domain.User
		if err := tx.First(&sender, "id = ?", sug.SenderID).Error; err != nil {
			return err
		}

		item := original
		item.ID = 0
		item.UserID = userID
		item.Status = domain.StatusWantToWatch
		item.Rating = nil
		item.DateAdded = time.Now()
		item.DateWatched = nil
		item.Notes = suggestedByNote(original.Notes, sender.Name)
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		copied = &item

		return s.markResponded(ctx, tx, sug.ID, domain.SuggestionAccepted)
	})
	if err != nil {
		return nil, err
	}
	if resolved != nil {
		return nil, resolved
	}

	receiver, rerr := s.users.GetByID(ctx, userID)
	sender, serr := s.users.GetByID(ctx, sug.SenderID)
	if rerr == nil && serr == nil {
		ev := notification.NewEvent(notification.KindSuggestionAccepted, sender.ID, sender.Email)
		ev.ActorName = receiver.Name
		ev.ActorEmail = receiver.Email
		ev.MediaTitle = copied.Title
		ev.MediaYear = deref(copied.Year)
		ev.PosterURL = deref(copied.PosterURL)
		s.notifier.Enqueue(ev)
	}

	return copied, nil
}

// Cancel deletes a pending suggestion. Only the sender may cancel.
func (s *Service) Cancel(ctx context.Context, suggestionID, userID int64) error {
	sug, err := s.suggestions.GetByID(ctx, suggestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if sug.SenderID != userID {
		return ErrNotSender
	}
	if sug.Status != domain.SuggestionPending {
		return ErrAlreadyResponded
	}
	return s.suggestions.Delete(ctx, sug.ID)
}

func (s *Service) markResponded(ctx context.Context, tx *gorm.DB, id int64, status domain.SuggestionStatus) error {
	now := time.Now()
	return tx.WithContext(ctx).
		Model(&domain.Suggestion{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "responded_at": &now}).Error
}

// suggestedByNote appends the provenance line the receiver sees on the copy.
func suggestedByNote(original *string, senderName string) *string {
	note := "Sugerido por " + senderName
	if original != nil && *original != "" {
		note = *original + "\n\n" + note
	}
	return &note
}

func truncateMessage(msg *string) *string {
	if msg == nil || *msg == "" {
		return nil
	}
	m := *msg
	if r := []rune(m); len(r) > domain.MaxSuggestionMessage {
		m = string(r[:domain.MaxSuggestionMessage])
	}
	return &m
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
