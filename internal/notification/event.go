package notification

import (
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	KindFriendRequest      EventKind = "friend_request"
	KindFriendAccepted     EventKind = "friend_accepted"
	KindMediaSuggested     EventKind = "media_suggested"
	KindSuggestionAccepted EventKind = "suggestion_accepted"
)

// Event is one outbound notification. Delivery is best-effort on every
// channel; nothing about an event ever reaches the request that spawned it.
type Event struct {
	ID             string    `json:"id"`
	Kind           EventKind `json:"kind"`
	RecipientID    int64     `json:"recipient_id"`
	RecipientEmail string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`

	// Template fields; which ones are set depends on Kind.
	ActorName  string `json:"actor_name"`
	ActorEmail string `json:"-"`
	MediaTitle string `json:"media_title,omitempty"`
	MediaYear  string `json:"media_year,omitempty"`
	MediaGenre string `json:"media_genre,omitempty"`
	PosterURL  string `json:"poster_url,omitempty"`
	Message    string `json:"message,omitempty"`
}

func NewEvent(kind EventKind, recipientID int64, recipientEmail string) Event {
	return Event{
		ID:             uuid.NewString(),
		Kind:           kind,
		RecipientID:    recipientID,
		RecipientEmail: recipientEmail,
		CreatedAt:      time.Now(),
	}
}
