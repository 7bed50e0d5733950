package models

import "time"

// Diary is a pair-scoped entry. CreatedAt is the user-facing entry date and
// may be backdated by the author; it is not the row insertion time.
type Diary struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PairID    int64     `gorm:"index" json:"pair_id"`
	AuthorID  int64     `gorm:"index" json:"author_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	IsDraft   bool      `json:"is_draft"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Diary) TableName() string {
	return "diaries"
}

// PublicDiary is an account-scoped entry shown on the author's public page.
type PublicDiary struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID  int64     `gorm:"index" json:"author_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	IsDraft   bool      `json:"is_draft"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PublicDiary) TableName() string {
	return "public_diaries"
}
