package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pizza6inch/ProjectNest/db"
	"github.com/pizza6inch/ProjectNest/internal/models"
	"github.com/pizza6inch/ProjectNest/internal/utils"
	"gorm.io/gorm"
)

type CreateTrackRequest struct {
	ProjectID uint `json:"project_id" binding:"required"`
}

func ListTracks(ctx *gin.Context) {
	claims, err := utils.CurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tracked := db.DB.Model(&models.TrackProjectUser{}).
		Select("project_id").
		Where("user_id = ?", claims.UserID)

	projects := make([]models.Project, 0)

	if err := db.DB.Where("project_id IN (?)", tracked).Find(&projects).Error; err != nil {
		log.Printf("Failed to list tracked projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func CreateTrack(ctx *gin.Context) {
	claims, err := utils.CurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateTrackRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, body.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to fetch project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var existing models.TrackProjectUser

	err = db.DB.Where("user_id = ? AND project_id = ?", claims.UserID, body.ProjectID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Already tracking this project"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check tracking edge: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	track := models.TrackProjectUser{
		UserID:    claims.UserID,
		ProjectID: body.ProjectID,
	}

	if err := db.DB.Create(&track).Error; err != nil {
		log.Printf("Failed to create tracking edge: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, track)
}

func DeleteTrack(ctx *gin.Context) {
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

	var track models.TrackProjectUser

	err = db.DB.Where("user_id = ? AND project_id = ?", claims.UserID, projectID).First(&track).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not tracking this project"})
		} else {
			log.Printf("Failed to fetch tracking edge: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := db.DB.Delete(&track).Error; err != nil {
		log.Printf("Failed to delete tracking edge: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
