package models

import "time"

// ProjectEvent is one entry of a project's bounded activity log.
// Insertion and oldest-first eviction keep at most 20 rows per project.
type ProjectEvent struct {
	EventID   uint      `gorm:"primaryKey" json:"event_id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	ActorName string    `gorm:"not null" json:"actor_name"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
