package authz

import (
	"errors"

	"github.com/pizza6inch/ProjectNest/internal/auth"
	"github.com/pizza6inch/ProjectNest/internal/models"
	"gorm.io/gorm"
)

// ErrForbidden means the token was valid but the caller has no rights on the
// target resource. Callers must keep it distinct from authentication errors.
var ErrForbidden = errors.New("permission denied")

func IsAdmin(claims *auth.Claims) bool {
	return claims.Role == models.RoleAdmin
}

// CanModifyUser allows a user to modify their own profile, and admins to
// modify anyone's.
func CanModifyUser(claims *auth.Claims, userID string) error {
	if IsAdmin(claims) || claims.UserID == userID {
		return nil
	}
	return ErrForbidden
}

// CanModifyAuthored allows the recorded author of a resource, or an admin.
// A nil author means the author account was deleted; only admins may touch
// orphaned resources.
func CanModifyAuthored(claims *auth.Claims, authorID *string) error {
	if IsAdmin(claims) {
		return nil
	}
	if authorID != nil && *authorID == claims.UserID {
		return nil
	}
	return ErrForbidden
}

// CanModifyProject allows project members and admins. Membership is an
// existing ProjectUser edge between the caller and the project.
func CanModifyProject(gdb *gorm.DB, claims *auth.Claims, projectID uint) error {
	if IsAdmin(claims) {
		return nil
	}

	var count int64

	if err := gdb.Model(&models.ProjectUser{}).
		Where("user_id = ? AND project_id = ?", claims.UserID, projectID).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return ErrForbidden
	}

	return nil
}
