package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pizza6inch/ProjectNest/db"
	"github.com/pizza6inch/ProjectNest/internal/auth"
	"github.com/pizza6inch/ProjectNest/internal/models"
	"github.com/pizza6inch/ProjectNest/internal/router"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret   = "test-secret"
	testPassword = "password123"
)

func setupRouter(t *testing.T) (*gin.Engine, *auth.Service) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	db.CreateTestDB()

	tokens := auth.NewService(testSecret, time.Hour)
	return router.NewRouter(tokens), tokens
}

func createUser(t *testing.T, userID, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		UserID:   userID,
		Name:     "User " + userID,
		Email:    userID + "@example.com",
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return user
}

func createProject(t *testing.T, title string, memberIDs ...string) models.Project {
	t.Helper()

	project := models.Project{Title: title, Status: models.StatusPending}
	require.NoError(t, db.DB.Create(&project).Error)

	for _, memberID := range memberIDs {
		edge := models.ProjectUser{UserID: memberID, ProjectID: project.ProjectID}
		require.NoError(t, db.DB.Create(&edge).Error)
	}

	return project
}

func createProgress(t *testing.T, projectID uint, authorID string) models.ProjectProgress {
	t.Helper()

	progress := models.ProjectProgress{
		ProjectID:     projectID,
		UserID:        &authorID,
		Status:        models.StatusPending,
		Title:         "milestone",
		EstimatedTime: time.Now().Add(24 * time.Hour).UTC(),
		ProgressNote:  "note",
	}
	require.NoError(t, db.DB.Create(&progress).Error)
	return progress
}

func tokenFor(t *testing.T, tokens *auth.Service, user models.User) string {
	t.Helper()

	token, err := tokens.Issue(user.UserID, user.Role, user.Name, user.ImageURL)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doRequestBare sends a GET with the raw token as the Authorization header,
// no scheme prefix.
func doRequestBare(t *testing.T, r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set("Authorization", token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var payload []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}
