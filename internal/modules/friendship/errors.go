package friendship

import "errors"

var (
	ErrSelfRequest     = errors.New("cannot send a friend request to yourself")
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyFriends  = errors.New("users are already friends")
	ErrRequestPending  = errors.New("a friend request between these users is already pending")
	ErrRequestNotFound = errors.New("friend request not found")
	ErrNotFound        = errors.New("friendship not found")
	ErrNotFriends      = errors.New("users are not friends")
	ErrMediaNotFound   = errors.New("media not found")
)
