package friendship

import (
	"time"

	"cinetrack/internal/repository"
)

type SendRequestRequest struct {
	FriendID int64 `json:"friendId" binding:"required,gt=0"`
}

type RespondRequest struct {
	RequestID int64  `json:"requestId" binding:"required,gt=0"`
	Action    string `json:"action" binding:"required,oneof=accept reject"`
}

// FriendResponse is one entry of the friends list. Email is masked before it
// leaves the service.
type FriendResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	FriendsSince time.Time `json:"friends_since"`
}

type RequestsResponse struct {
	Received []repository.RequestRow `json:"received"`
	Sent     []repository.RequestRow `json:"sent"`
}

// SearchResult annotates a user with how they relate to the caller.
type SearchResult struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	ConnectionStatus string `json:"connectionStatus"`
}

const (
	ConnectionNone            = "none"
	ConnectionFriends         = "friends"
	ConnectionPendingSent     = "pending_sent"
	ConnectionPendingReceived = "pending_received"
)
