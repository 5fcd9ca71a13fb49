package suggestion

import (
	"errors"
	"fmt"

	"cinetrack/internal/domain"
)

var (
	ErrSelfSuggestion   = errors.New("cannot suggest media to yourself")
	ErrUserNotFound     = errors.New("user not found")
	ErrNotFriends       = errors.New("you can only suggest media to friends")
	ErrMediaNotFound    = errors.New("media not found")
	ErrAlreadySuggested = errors.New("this media was already suggested to this user")
	ErrNotFound         = errors.New("suggestion not found")
	ErrNotReceiver      = errors.New("only the receiver can respond to a suggestion")
	ErrNotSender        = errors.New("only the sender can cancel a suggestion")
	ErrAlreadyResponded = errors.New("suggestion was already responded to")
)

// AlreadyInCollectionError aborts an accept when the receiver already owns an
// equivalent item. The suggestion is marked rejected in the same transaction.
type AlreadyInCollectionError struct {
	Existing *domain.Media
}

func (e *AlreadyInCollectionError) Error() string {
	return fmt.Sprintf("media already in collection (existing id %d)", e.Existing.ID)
}
