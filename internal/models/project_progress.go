package models

import "time"

type ProjectProgress struct {
	ProgressID    uint      `gorm:"primaryKey" json:"progress_id"`
	ProjectID     uint      `gorm:"not null;index" json:"project_id"`
	UserID        *string   `gorm:"size:10" json:"user_id"`
	Status        string    `gorm:"not null;default:pending" json:"status"`
	Title         string    `json:"title"`
	EstimatedTime time.Time `gorm:"not null" json:"estimated_time"`
	ProgressNote  string    `json:"progress_note"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Project  Project   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User     *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"-"`
	Comments []Comment `gorm:"foreignKey:ProgressID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
