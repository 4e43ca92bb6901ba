package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pizza6inch/ProjectNest/db"
	"github.com/pizza6inch/ProjectNest/internal/authz"
	"github.com/pizza6inch/ProjectNest/internal/models"
	"github.com/pizza6inch/ProjectNest/internal/services"
	"github.com/pizza6inch/ProjectNest/internal/utils"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	IsPublic    bool       `json:"is_public"`
	Deadline    *time.Time `json:"deadline"`
	Progress    *int       `json:"progress"`
	Users       []string   `json:"users"`
}

type UpdateProjectRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	IsPublic    *bool      `json:"is_public"`
	Deadline    *time.Time `json:"deadline"`
	Progress    *int       `json:"progress"`
	Users       *[]string  `json:"users"`
}

// ProjectListItem is a project row enriched with the derived fields the
// listing endpoints expose.
type ProjectListItem struct {
	models.Project
	UserCount     int64  `json:"user_count"`
	ProfessorUser string `json:"professor_user"`
}

type MemberResponse struct {
	UserID   string  `json:"user_id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	ImageURL *string `json:"image_url,omitempty"`
}

type CommentAuthor struct {
	UserID   string  `json:"user_id"`
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url"`
}

type CommentResponse struct {
	CommentID uint           `json:"comment_id"`
	Content   string         `json:"content"`
	Author    *CommentAuthor `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type ProgressResponse struct {
	ProgressID    uint              `json:"progress_id"`
	Status        string            `json:"status"`
	Title         string            `json:"title"`
	EstimatedTime time.Time         `json:"estimated_time"`
	ProgressNote  string            `json:"progress_note"`
	UserID        *string           `json:"user_id"`
	Comments      []CommentResponse `json:"comments"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type ProjectDetailResponse struct {
	models.Project
	Students   []MemberResponse   `json:"students"`
	Professors []MemberResponse   `json:"professors"`
	Progresses []ProgressResponse `json:"progresses"`
}

func CreateProject(ctx *gin.Context) {
	claims, err := utils.CurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status := body.Status

	if status == "" {
		status = models.StatusPending
	}

	if !models.ValidStatus(status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	progress := 0

	if body.Progress != nil {
		progress = *body.Progress
	}

	if progress < 0 || progress > 100 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Progress must be between 0 and 100"})
		return
	}

	project := models.Project{
		Title:       body.Title,
		Description: body.Description,
		Status:      status,
		IsPublic:    body.IsPublic,
		Deadline:    body.Deadline,
		Progress:    progress,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		return createMemberships(tx, project.ProjectID, body.Users)
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	if err := services.RecordProjectEvent(db.DB, project.ProjectID, claims.Name, "created project "+project.Title); err != nil {
		log.Printf("Failed to record project event: %v", err)
	}

	ctx.JSON(http.StatusCreated, project)
}

// createMemberships replaces nothing; it adds one edge per distinct user,
// failing with gorm.ErrRecordNotFound when a user id does not exist.
func createMemberships(tx *gorm.DB, projectID uint, userIDs []string) error {
	seen := make(map[string]bool)

	for _, userID := range userIDs {
		if seen[userID] {
			continue
		}
		seen[userID] = true

		var user models.User

		if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		edge := models.ProjectUser{UserID: userID, ProjectID: projectID}

		if err := tx.Create(&edge).Error; err != nil {
			return err
		}
	}

	return nil
}

func ListProjects(ctx *gin.Context) {
	query := db.DB.Model(&models.Project{})

	if status := ctx.Query("status"); models.ValidStatus(status) {
		query = query.Where("status = ?", status)
	}

	if keyword := ctx.Query("keyword"); keyword != "" {
		pattern := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	sortBy := ctx.DefaultQuery("sortBy", "project_id")

	if !models.ProjectSortFields[sortBy] {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid field."})
		return
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		log.Printf("Failed to count projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	page := utils.ParsePage(ctx)
	var projects []models.Project

	if err := query.Order(sortBy).Scopes(utils.Paginate(page)).Find(&projects).Error; err != nil {
		log.Printf("Failed to list projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	results := make([]ProjectListItem, 0, len(projects))

	for _, project := range projects {
		item, err := projectListItem(project)

		if err != nil {
			log.Printf("Failed to derive project fields: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		results = append(results, item)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"total":    total,
		"page":     page.Page,
		"pageSize": page.PageSize,
		"results":  results,
	})
}

func projectListItem(project models.Project) (ProjectListItem, error) {
	item := ProjectListItem{Project: project}

	if err := db.DB.Model(&models.ProjectUser{}).
		Where("project_id = ?", project.ProjectID).
		Count(&item.UserCount).Error; err != nil {
		return item, err
	}

	var names []string

	err := db.DB.Model(&models.User{}).
		Joins("JOIN project_users ON project_users.user_id = users.user_id").
		Where("project_users.project_id = ? AND users.role = ?", project.ProjectID, models.RoleProfessor).
		Limit(1).
		Pluck("users.name", &names).Error

	if err != nil {
		return item, err
	}

	if len(names) > 0 {
		item.ProfessorUser = names[0]
	}

	return item, nil
}

func GetProjectDetail(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var members []models.User

	err = db.DB.Model(&models.User{}).
		Joins("JOIN project_users ON project_users.user_id = users.user_id").
		Where("project_users.project_id = ?", projectID).
		Find(&members).Error

	if err != nil {
		log.Printf("Failed to fetch project members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	detail := ProjectDetailResponse{
		Project:    project,
		Students:   make([]MemberResponse, 0),
		Professors: make([]MemberResponse, 0),
		Progresses: make([]ProgressResponse, 0),
	}

	for _, member := range members {
		switch member.Role {
		case models.RoleProfessor:
			detail.Professors = append(detail.Professors, MemberResponse{
				UserID: member.UserID,
				Name:   member.Name,
				Email:  member.Email,
			})
		default:
			detail.Students = append(detail.Students, MemberResponse{
				UserID:   member.UserID,
				Name:     member.Name,
				Email:    member.Email,
				ImageURL: member.ImageURL,
			})
		}
	}

	var progresses []models.ProjectProgress

	if err := db.DB.Where("project_id = ?", projectID).Order("created_at ASC").Find(&progresses).Error; err != nil {
		log.Printf("Failed to fetch project progress: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	for _, progress := range progresses {
		var comments []models.Comment

		if err := db.DB.Where("progress_id = ?", progress.ProgressID).Order("created_at ASC").Find(&comments).Error; err != nil {
			log.Printf("Failed to fetch comments: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		shaped, err := commentResponses(comments)

		if err != nil {
			log.Printf("Failed to shape comments: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		detail.Progresses = append(detail.Progresses, ProgressResponse{
			ProgressID:    progress.ProgressID,
			Status:        progress.Status,
			Title:         progress.Title,
			EstimatedTime: progress.EstimatedTime,
			ProgressNote:  progress.ProgressNote,
			UserID:        progress.UserID,
			Comments:      shaped,
			CreatedAt:     progress.CreatedAt,
			UpdatedAt:     progress.UpdatedAt,
		})
	}

	ctx.JSON(http.StatusOK, detail)
}

func UpdateProject(ctx *gin.Context) {
	claims, err := utils.CurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := authz.CanModifyProject(db.DB, claims, projectID); err != nil {
		if errors.Is(err, authz.ErrForbidden) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		} else {
			log.Printf("Failed to check membership: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if body.Title != nil {
		updates["title"] = *body.Title
	}

	if body.Description != nil {
		updates["description"] = *body.Description
	}

	if body.Status != nil {
		if !models.ValidStatus(*body.Status) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		updates["status"] = *body.Status
	}

	if body.IsPublic != nil {
		updates["is_public"] = *body.IsPublic
	}

	if body.Deadline != nil {
		updates["deadline"] = *body.Deadline
	}

	if body.Progress != nil {
		if *body.Progress < 0 || *body.Progress > 100 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Progress must be between 0 and 100"})
			return
		}
		updates["progress"] = *body.Progress
	}

	// Field updates and membership replacement commit or roll back together.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&project).Updates(updates).Error; err != nil {
				return err
			}
		}

		if body.Users != nil {
			if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectUser{}).Error; err != nil {
				return err
			}

			if err := createMemberships(tx, projectID, *body.Users); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Failed to update project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	if err := db.DB.First(&project, projectID).Error; err != nil {
		log.Printf("Failed to refresh project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := services.RecordProjectEvent(db.DB, projectID, claims.Name, "updated project "+project.Title); err != nil {
		log.Printf("Failed to record project event: %v", err)
	}

	ctx.JSON(http.StatusOK, project)
}

func DeleteProject(ctx *gin.Context) {
	claims, err := utils.CurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := authz.CanModifyProject(db.DB, claims, projectID); err != nil {
		if errors.Is(err, authz.ErrForbidden) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		} else {
			log.Printf("Failed to check membership: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Progress entries, their comments, membership/tracking edges and the
	// activity log all cascade with the project row.
	if err := db.DB.Delete(&project).Error; err != nil {
		log.Printf("Failed to delete project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ListProjectEvents(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	events, err := services.ListProjectEvents(db.DB, projectID)

	if err != nil {
		log.Printf("Failed to list project events: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"events": events})
}

func MyProjects(ctx *gin.Context) {
	claims, err := utils.CurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	memberOf := db.DB.Model(&models.ProjectUser{}).
		Select("project_id").
		Where("user_id = ?", claims.UserID)

	var projects []models.Project

	if err := db.DB.Where("project_id IN (?)", memberOf).Find(&projects).Error; err != nil {
		log.Printf("Failed to list member projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	results := make([]ProjectListItem, 0, len(projects))

	for _, project := range projects {
		item, err := projectListItem(project)

		if err != nil {
			log.Printf("Failed to derive project fields: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		results = append(results, item)
	}

	ctx.JSON(http.StatusOK, results)
}
