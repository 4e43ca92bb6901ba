package models

import "time"

// TrackProjectUser is the watchlist edge between a user and a project.
type TrackProjectUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:10;not null;uniqueIndex:idx_track_project_user" json:"user_id"`
	ProjectID uint      `gorm:"not null;uniqueIndex:idx_track_project_user" json:"project_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
