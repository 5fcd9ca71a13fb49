package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	Name         string    `gorm:"column:name" json:"name"`
	Email        string    `gorm:"column:email;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }

// PublicUser is the shape returned to clients: never carries the hash.
type PublicUser struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// MaskEmail keeps the first two characters of the local part and the full
// host: "roberto@x.com" becomes "ro***@x.com". Addresses shown to anyone
// other than their owner go through this. Too-short locals pass through
// unchanged.
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at < 2 {
		return email
	}
	return email[:2] + "***" + email[at:]
}
