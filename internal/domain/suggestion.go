package domain

import "time"

type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionAccepted SuggestionStatus = "accepted"
	SuggestionRejected SuggestionStatus = "rejected"
)

func (s SuggestionStatus) Valid() bool {
	switch s {
	case SuggestionPending, SuggestionAccepted, SuggestionRejected:
		return true
	}
	return false
}

// MaxSuggestionMessage is the server-side cap; longer messages are truncated,
// not rejected.
const MaxSuggestionMessage = 500

// Suggestion is a directed recommendation of one of the sender's media items
// to a friend. Accepting copies the item into the receiver's library; the row
// keeps referencing the sender's original.
type Suggestion struct {
	ID          int64            `gorm:"column:id;primaryKey" json:"id"`
	SenderID    int64            `gorm:"column:sender_id;index" json:"sender_id"`
	ReceiverID  int64            `gorm:"column:receiver_id;index" json:"receiver_id"`
	MediaID     int64            `gorm:"column:media_id" json:"media_id"`
	Message     *string          `gorm:"column:message" json:"message"`
	Status      SuggestionStatus `gorm:"column:status;default:pending" json:"status"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	RespondedAt *time.Time       `gorm:"column:responded_at" json:"responded_at"`
}

func (Suggestion) TableName() string { return "suggestions" }
