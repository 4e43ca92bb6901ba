package models

import "time"

const (
	StatusDone       = "done"
	StatusInProgress = "in_progress"
	StatusPending    = "pending"
)

// ValidStatus reports whether status is a known project/progress status.
func ValidStatus(status string) bool {
	switch status {
	case StatusDone, StatusInProgress, StatusPending:
		return true
	}
	return false
}

// ProjectSortFields is the allowlist of project columns a caller may sort by.
var ProjectSortFields = map[string]bool{
	"project_id":  true,
	"title":       true,
	"description": true,
	"status":      true,
	"is_public":   true,
	"deadline":    true,
	"progress":    true,
	"created_at":  true,
	"updated_at":  true,
}

type Project struct {
	ProjectID   uint       `gorm:"primaryKey" json:"project_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Status      string     `gorm:"not null;default:pending" json:"status"`
	IsPublic    bool       `gorm:"default:false" json:"is_public"`
	Deadline    *time.Time `json:"deadline"`
	Progress    int        `gorm:"default:0" json:"progress"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Progresses        []ProjectProgress  `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	ProjectUsers      []ProjectUser      `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	TrackProjectUsers []TrackProjectUser `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Events            []ProjectEvent     `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
