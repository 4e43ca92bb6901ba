package models

import "time"

type Comment struct {
	CommentID  uint      `gorm:"primaryKey" json:"comment_id"`
	ProgressID uint      `gorm:"not null;index" json:"progress_id"`
	UserID     *string   `gorm:"size:10" json:"user_id"`
	Content    string    `gorm:"not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Progress ProjectProgress `gorm:"foreignKey:ProgressID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User     *User           `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"-"`
}
