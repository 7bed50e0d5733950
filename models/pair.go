package models

import "time"

// Pair is a diary-sharing room. A solo pair (user2_id null, is_solo true) is
// created automatically at registration, exactly one per user. Two-person
// pairs come from the invite-code flow or from friend acceptance. Once
// user2_id is set it never changes, and the invite code is spent.
type Pair struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	User1ID    int64     `gorm:"index" json:"user1_id"`
	User2ID    *int64    `gorm:"index" json:"user2_id"`
	IsSolo     bool      `json:"is_solo"`
	InviteCode string    `gorm:"size:16;uniqueIndex" json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Pair) TableName() string {
	return "pairs"
}

// HasMember reports whether userID occupies either seat of the pair.
func (p *Pair) HasMember(userID int64) bool {
	if p.User1ID == userID {
		return true
	}
	return p.User2ID != nil && *p.User2ID == userID
}

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship holds at most one record per unordered pair of users. Legal
// transitions: pending -> accepted (creates a Pair), pending -> deleted,
// accepted -> deleted (the Pair survives).
type Friendship struct {
	ID          int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	RequesterID int64            `gorm:"index" json:"requester_id"`
	ReceiverID  int64            `gorm:"index" json:"receiver_id"`
	Status      FriendshipStatus `gorm:"size:20" json:"status"`
	PairID      *int64           `json:"pair_id"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (Friendship) TableName() string {
	return "friendships"
}
