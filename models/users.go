package models

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"size:60;uniqueIndex" json:"username"`
	AccountID    string    `gorm:"size:16;uniqueIndex" json:"account_id"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Session maps an opaque bearer token to a user. Expiry is checked on
// resolve, not just at the cookie layer.
type Session struct {
	Token     string    `gorm:"primaryKey;size:64" json:"token"`
	UserID    int64     `gorm:"index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

func (Session) TableName() string {
	return "sessions"
}
