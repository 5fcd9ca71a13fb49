package domain

import "time"

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
)

// Friendship stores one row per unordered user pair. The pair is canonicalized
// (UserLoID < UserHiID) so symmetric lookups are a single query instead of the
// two-ordering check a directional row would force. RequesterID records who
// initiated, which is what the pending lifecycle needs.
type Friendship struct {
	ID          int64            `gorm:"column:id;primaryKey" json:"id"`
	UserLoID    int64            `gorm:"column:user_lo_id;uniqueIndex:uq_friend_pair" json:"-"`
	UserHiID    int64            `gorm:"column:user_hi_id;uniqueIndex:uq_friend_pair" json:"-"`
	RequesterID int64            `gorm:"column:requester_id" json:"requester_id"`
	Status      FriendshipStatus `gorm:"column:status;default:pending" json:"status"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Friendship) TableName() string { return "friendships" }

// CanonicalPair orders two user ids for storage. Callers must reject a==b first.
func CanonicalPair(a, b int64) (lo, hi int64) {
	if a < b {
		return a, b
	}
	return b, a
}

// AddresseeID is the member of the pair who did not send the request.
func (f *Friendship) AddresseeID() int64 {
	if f.RequesterID == f.UserLoID {
		return f.UserHiID
	}
	return f.UserLoID
}

// OtherID returns the pair member that is not userID.
func (f *Friendship) OtherID(userID int64) int64 {
	if f.UserLoID == userID {
		return f.UserHiID
	}
	return f.UserLoID
}

// Involves reports whether userID is one side of the pair.
func (f *Friendship) Involves(userID int64) bool {
	return f.UserLoID == userID || f.UserHiID == userID
}
