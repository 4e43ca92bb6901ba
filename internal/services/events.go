package services

import (
	"github.com/pizza6inch/ProjectNest/internal/models"
	"gorm.io/gorm"
)

// ProjectEventCap is the maximum number of activity log rows kept per project.
const ProjectEventCap = 20

// RecordProjectEvent appends one entry to a project's activity log and evicts
// everything outside the newest ProjectEventCap rows. Insert and trim run in
// one transaction so concurrent writers can never leave more than the cap
// surviving, nor evict a row without a matching insert.
func RecordProjectEvent(gdb *gorm.DB, projectID uint, actorName, content string) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		event := models.ProjectEvent{
			ProjectID: projectID,
			ActorName: actorName,
			Content:   content,
		}

		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		keep := tx.Model(&models.ProjectEvent{}).
			Select("event_id").
			Where("project_id = ?", projectID).
			Order("created_at DESC").
			Order("event_id DESC").
			Limit(ProjectEventCap)

		return tx.
			Where("project_id = ? AND event_id NOT IN (?)", projectID, keep).
			Delete(&models.ProjectEvent{}).Error
	})
}

// ListProjectEvents returns a project's surviving activity log, newest first.
func ListProjectEvents(gdb *gorm.DB, projectID uint) ([]models.ProjectEvent, error) {
	var events []models.ProjectEvent

	err := gdb.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Order("event_id DESC").
		Find(&events).Error

	if err != nil {
		return nil, err
	}

	return events, nil
}
