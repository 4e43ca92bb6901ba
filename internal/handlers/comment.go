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

type CreateCommentRequest struct {
	ProgressID uint   `json:"progress_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// commentResponses attaches a denormalized author snapshot to each comment.
// A nil author means the account was deleted after commenting.
func commentResponses(comments []models.Comment) ([]CommentResponse, error) {
	authorIDs := make([]string, 0, len(comments))

	for _, comment := range comments {
		if comment.UserID != nil {
			authorIDs = append(authorIDs, *comment.UserID)
		}
	}

	authors := make(map[string]models.User)

	if len(authorIDs) > 0 {
		var users []models.User

		if err := db.DB.Where("user_id IN ?", authorIDs).Find(&users).Error; err != nil {
			return nil, err
		}

		for _, user := range users {
			authors[user.UserID] = user
		}
	}

	shaped := make([]CommentResponse, 0, len(comments))

	for _, comment := range comments {
		response := CommentResponse{
			CommentID: comment.CommentID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
			UpdatedAt: comment.UpdatedAt,
		}

		if comment.UserID != nil {
			if author, ok := authors[*comment.UserID]; ok {
				response.Author = &CommentAuthor{
					UserID:   author.UserID,
					Name:     author.Name,
					ImageURL: author.ImageURL,
				}
			}
		}

		shaped = append(shaped, response)
	}

	return shaped, nil
}

func ListComments(ctx *gin.Context) {
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

	var comments []models.Comment

	if err := db.DB.Where("progress_id = ?", progressID).Order("created_at ASC").Find(&comments).Error; err != nil {
		log.Printf("Failed to list comments: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	shaped, err := commentResponses(comments)

	if err != nil {
		log.Printf("Failed to shape comments: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"comments": shaped})
}

func CreateComment(ctx *gin.Context) {
	claims, err := utils.CurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateCommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	var progress models.ProjectProgress

	if err := db.DB.First(&progress, body.ProgressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Progress does not exist"})
		} else {
			log.Printf("Failed to fetch progress: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// The author is whoever holds the token; any author the client put in
	// the body is ignored.
	authorID := claims.UserID

	comment := models.Comment{
		ProgressID: body.ProgressID,
		UserID:     &authorID,
		Content:    body.Content,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		log.Printf("Failed to create comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := services.RecordProjectEvent(db.DB, progress.ProjectID, claims.Name, fmt.Sprintf("commented on progress %d", progress.ProgressID)); err != nil {
		log.Printf("Failed to record project event: %v", err)
	}

	ctx.JSON(http.StatusCreated, comment)
}

func UpdateComment(ctx *gin.Context) {
	claims, err := utils.CurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	commentID, err := utils.GetCommentID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment models.Comment

	if err := db.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		} else {
			log.Printf("Failed to fetch comment: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := authz.CanModifyAuthored(claims, comment.UserID); err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	var body UpdateCommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if err := db.DB.Model(&comment).Update("content", body.Content).Error; err != nil {
		log.Printf("Failed to update comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, comment)
}

func DeleteComment(ctx *gin.Context) {
	claims, err := utils.CurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	commentID, err := utils.GetCommentID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment models.Comment

	if err := db.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		} else {
			log.Printf("Failed to fetch comment: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := authz.CanModifyAuthored(claims, comment.UserID); err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		log.Printf("Failed to delete comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
