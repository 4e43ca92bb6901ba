package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pizza6inch/ProjectNest/db"
	"github.com/pizza6inch/ProjectNest/internal/authz"
	"github.com/pizza6inch/ProjectNest/internal/models"
	"github.com/pizza6inch/ProjectNest/internal/services"
	"github.com/pizza6inch/ProjectNest/internal/utils"
	"gorm.io/gorm"
)

type CreateProgressRequest struct {
	ProjectID     uint   `json:"project_id" binding:"required"`
	Title         string `json:"title"`
	Status        string `json:"status"`
	EstimatedTime string `json:"estimated_time" binding:"required"`
	ProgressNote  string `json:"progress_note" binding:"required"`
}

type UpdateProgressRequest struct {
	Title         *string `json:"title"`
	Status        *string `json:"status"`
	EstimatedTime *string `json:"estimated_time"`
	ProgressNote  *string `json:"progress_note"`
}

func MyProgress(ctx *gin.Context) {
	claims, err := utils.CurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	memberOf := db.DB.Model(&models.ProjectUser{}).
		Select("project_id").
		Where("user_id = ?", claims.UserID)

	progress := make([]models.ProjectProgress, 0)

	if err := db.DB.Where("project_id IN (?)", memberOf).Order("created_at ASC").Find(&progress).Error; err != nil {
		log.Printf("Failed to list progress: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"progress": progress})
}

func CreateProgress(ctx *gin.Context) {
	claims, err := utils.CurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateProgressRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	estimatedTime, err := utils.ParseFutureTime(body.EstimatedTime)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
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

	var project models.Project

	if err := db.DB.First(&project, body.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project does not exist"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// The author comes from the token, never from the request body.
	authorID := claims.UserID

	progress := models.ProjectProgress{
		ProjectID:     body.ProjectID,
		UserID:        &authorID,
		Status:        status,
		Title:         body.Title,
		EstimatedTime: estimatedTime,
		ProgressNote:  body.ProgressNote,
	}

	if err := db.DB.Create(&progress).Error; err != nil {
		log.Printf("Failed to create progress: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := services.RecordProjectEvent(db.DB, body.ProjectID, claims.Name, fmt.Sprintf("added progress %d", progress.ProgressID)); err != nil {
		log.Printf("Failed to record project event: %v", err)
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "add progress success"})
}

func UpdateProgress(ctx *gin.Context) {
	claims, err := utils.CurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	progressID, err := utils.GetProgressID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var progress models.ProjectProgress

	if err := db.DB.First(&progress, progressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Progress does not exist"})
		} else {
			log.Printf("Failed to fetch progress: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := authz.CanModifyAuthored(claims, progress.UserID); err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	var body UpdateProgressRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if body.Title != nil {
		updates["title"] = *body.Title
	}

	if body.Status != nil {
		if !models.ValidStatus(*body.Status) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		updates["status"] = *body.Status
	}

	if body.EstimatedTime != nil {
		estimatedTime, err := utils.ParseFutureTime(*body.EstimatedTime)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates["estimated_time"] = estimatedTime
	}

	if body.ProgressNote != nil {
		updates["progress_note"] = *body.ProgressNote
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&progress).Updates(updates).Error; err != nil {
		log.Printf("Failed to update progress: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("modify progress %d success", progressID)})
}

func DeleteProgress(ctx *gin.Context) {
	claims, err := utils.CurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	progressID, err := utils.GetProgressID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var progress models.ProjectProgress

	if err := db.DB.First(&progress, progressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Progress does not exist"})
		} else {
			log.Printf("Failed to fetch progress: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := authz.CanModifyAuthored(claims, progress.UserID); err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	// Comments on this entry cascade with it.
	if err := db.DB.Delete(&progress).Error; err != nil {
		log.Printf("Failed to delete progress: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("delete progress %d success", progressID)})
}
