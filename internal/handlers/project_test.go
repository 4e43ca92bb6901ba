package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pizza6inch/ProjectNest/db"
	"github.com/pizza6inch/ProjectNest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject(t *testing.T) {
	t.Run("creates project and membership edges together", func(t *testing.T) {
		r, tokens := setupRouter(t)
		user := createUser(t, "u1", "student")

		w := doRequest(t, r, http.MethodPost, "/api/projects", tokenFor(t, tokens, user), map[string]interface{}{
			"title":  "X",
			"status": "pending",
			"users":  []string{"u1"},
		})

		require.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		require.Contains(t, body, "project_id")
		projectID := uint(body["project_id"].(float64))
		assert.NotZero(t, projectID)

		// The creator's membership listing must include the new project.
		listed := doRequest(t, r, http.MethodGet, "/api/my_projects", tokenFor(t, tokens, user), nil)
		require.Equal(t, http.StatusOK, listed.Code)

		found := false
		for _, item := range decodeList(t, listed) {
			if uint(item["project_id"].(float64)) == projectID {
				found = true
				assert.EqualValues(t, 1, item["user_count"])
			}
		}
		assert.True(t, found)
	})

	t.Run("requires a token", func(t *testing.T) {
		r, _ := setupRouter(t)

		w := doRequest(t, r, http.MethodPost, "/api/projects", "", map[string]interface{}{
			"title": "X",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects unknown members", func(t *testing.T) {
		r, tokens := setupRouter(t)
		user := createUser(t, "u1", "student")

		w := doRequest(t, r, http.MethodPost, "/api/projects", tokenFor(t, tokens, user), map[string]interface{}{
			"title": "X",
			"users": []string{"ghost"},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		// Rollback must leave no half-created project behind.
		var count int64
		require.NoError(t, db.DB.Model(&models.Project{}).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	})

	t.Run("rejects out-of-range progress", func(t *testing.T) {
		r, tokens := setupRouter(t)
		user := createUser(t, "u1", "student")

		w := doRequest(t, r, http.MethodPost, "/api/projects", tokenFor(t, tokens, user), map[string]interface{}{
			"title":    "X",
			"progress": 150,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListProjects(t *testing.T) {
	t.Run("rejects unknown sort fields", func(t *testing.T) {
		r, _ := setupRouter(t)

		w := doRequest(t, r, http.MethodGet, "/api/projects?sortBy=not_a_field", "", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Please enter a valid field.", decodeBody(t, w)["error"])
	})

	t.Run("keyword matches title or description case-insensitively", func(t *testing.T) {
		r, _ := setupRouter(t)
		createProject(t, "Compiler Project")
		other := models.Project{Title: "Other", Description: "a COMPILER for toy languages", Status: models.StatusPending}
		require.NoError(t, db.DB.Create(&other).Error)
		createProject(t, "Unrelated")

		w := doRequest(t, r, http.MethodGet, "/api/projects?keyword=compiler", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.EqualValues(t, 2, body["total"])
	})

	t.Run("filters by status and derives member fields", func(t *testing.T) {
		r, _ := setupRouter(t)
		createUser(t, "s1", "student")
		createUser(t, "p1", "professor")
		createProject(t, "X", "s1", "p1")

		done := models.Project{Title: "Done", Status: models.StatusDone}
		require.NoError(t, db.DB.Create(&done).Error)

		w := doRequest(t, r, http.MethodGet, "/api/projects?status=pending", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.EqualValues(t, 1, body["total"])

		results := body["results"].([]interface{})
		require.Len(t, results, 1)
		item := results[0].(map[string]interface{})
		assert.EqualValues(t, 2, item["user_count"])
		assert.Equal(t, "User p1", item["professor_user"])
	})
}

func TestUpdateProject(t *testing.T) {
	t.Run("member can update", func(t *testing.T) {
		r, tokens := setupRouter(t)
		user := createUser(t, "s1", "student")
		project := createProject(t, "X", "s1")

		w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/projects/%d", project.ProjectID), tokenFor(t, tokens, user), map[string]interface{}{
			"title":  "Renamed",
			"status": "in_progress",
		})

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Renamed", body["title"])
		assert.Equal(t, "in_progress", body["status"])
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		r, tokens := setupRouter(t)
		createUser(t, "s1", "student")
		outsider := createUser(t, "s2", "student")
		project := createProject(t, "X", "s1")

		w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/projects/%d", project.ProjectID), tokenFor(t, tokens, outsider), map[string]interface{}{
			"title": "Hijacked",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin bypasses membership", func(t *testing.T) {
		r, tokens := setupRouter(t)
		createUser(t, "s1", "student")
		admin := createUser(t, "a1", "admin")
		project := createProject(t, "X", "s1")

		w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/projects/%d", project.ProjectID), tokenFor(t, tokens, admin), map[string]interface{}{
			"title": "Renamed by admin",
		})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("replaces the membership set transactionally", func(t *testing.T) {
		r, tokens := setupRouter(t)
		user := createUser(t, "s1", "student")
		createUser(t, "s2", "student")
		project := createProject(t, "X", "s1")

		w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/projects/%d", project.ProjectID), tokenFor(t, tokens, user), map[string]interface{}{
			"users": []string{"s2"},
		})

		require.Equal(t, http.StatusOK, w.Code)

		var members []string
		require.NoError(t, db.DB.Model(&models.ProjectUser{}).
			Where("project_id = ?", project.ProjectID).
			Pluck("user_id", &members).Error)
		assert.Equal(t, []string{"s2"}, members)
	})

	t.Run("failed membership replacement rolls back entirely", func(t *testing.T) {
		r, tokens := setupRouter(t)
		user := createUser(t, "s1", "student")
		project := createProject(t, "X", "s1")

		w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/projects/%d", project.ProjectID), tokenFor(t, tokens, user), map[string]interface{}{
			"users": []string{"ghost"},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		// The old membership set must survive untouched.
		var members []string
		require.NoError(t, db.DB.Model(&models.ProjectUser{}).
			Where("project_id = ?", project.ProjectID).
			Pluck("user_id", &members).Error)
		assert.Equal(t, []string{"s1"}, members)
	})

	t.Run("unknown project", func(t *testing.T) {
		r, tokens := setupRouter(t)
		user := createUser(t, "s1", "student")

		w := doRequest(t, r, http.MethodPut, "/api/projects/9999", tokenFor(t, tokens, user), map[string]interface{}{
			"title": "X",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteProject(t *testing.T) {
	t.Run("cascades to progress, comments, edges and events", func(t *testing.T) {
		r, tokens := setupRouter(t)
		user := createUser(t, "s1", "student")
		project := createProject(t, "X", "s1")
		progress := createProgress(t, project.ProjectID, "s1")

		authorID := user.UserID
		comment := models.Comment{ProgressID: progress.ProgressID, UserID: &authorID, Content: "hi"}
		require.NoError(t, db.DB.Create(&comment).Error)

		track := models.TrackProjectUser{UserID: "s1", ProjectID: project.ProjectID}
		require.NoError(t, db.DB.Create(&track).Error)

		event := models.ProjectEvent{ProjectID: project.ProjectID, ActorName: "Alice", Content: "created"}
		require.NoError(t, db.DB.Create(&event).Error)

		w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ProjectID), tokenFor(t, tokens, user), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		counts := map[string]interface{}{
			"project_progresses":  &models.ProjectProgress{},
			"comments":            &models.Comment{},
			"project_users":       &models.ProjectUser{},
			"track_project_users": &models.TrackProjectUser{},
			"project_events":      &models.ProjectEvent{},
		}

		for table, model := range counts {
			var count int64
			require.NoError(t, db.DB.Model(model).Count(&count).Error)
			assert.EqualValues(t, 0, count, "expected no surviving rows in %s", table)
		}
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		r, tokens := setupRouter(t)
		createUser(t, "s1", "student")
		outsider := createUser(t, "s2", "student")
		project := createProject(t, "X", "s1")

		w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ProjectID), tokenFor(t, tokens, outsider), nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestGetProjectDetail(t *testing.T) {
	t.Run("partitions members and nests comments with author snapshots", func(t *testing.T) {
		r, _ := setupRouter(t)
		student := createUser(t, "s1", "student")
		createUser(t, "p1", "professor")
		project := createProject(t, "X", "s1", "p1")
		progress := createProgress(t, project.ProjectID, "s1")

		authorID := student.UserID
		comment := models.Comment{ProgressID: progress.ProgressID, UserID: &authorID, Content: "hi"}
		require.NoError(t, db.DB.Create(&comment).Error)

		w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ProjectID), "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)

		students := body["students"].([]interface{})
		require.Len(t, students, 1)
		assert.Equal(t, "s1", students[0].(map[string]interface{})["user_id"])

		professors := body["professors"].([]interface{})
		require.Len(t, professors, 1)
		assert.Equal(t, "p1", professors[0].(map[string]interface{})["user_id"])

		progresses := body["progresses"].([]interface{})
		require.Len(t, progresses, 1)

		comments := progresses[0].(map[string]interface{})["comments"].([]interface{})
		require.Len(t, comments, 1)

		author := comments[0].(map[string]interface{})["author"].(map[string]interface{})
		assert.Equal(t, "s1", author["user_id"])
		assert.Equal(t, "User s1", author["name"])
	})

	t.Run("deleted author appears as null", func(t *testing.T) {
		r, tokens := setupRouter(t)
		createUser(t, "s1", "student")
		admin := createUser(t, "a1", "admin")
		project := createProject(t, "X", "s1")
		progress := createProgress(t, project.ProjectID, "s1")

		authorID := "s1"
		comment := models.Comment{ProgressID: progress.ProgressID, UserID: &authorID, Content: "hi"}
		require.NoError(t, db.DB.Create(&comment).Error)

		deleted := doRequest(t, r, http.MethodDelete, "/api/users/s1", tokenFor(t, tokens, admin), nil)
		require.Equal(t, http.StatusNoContent, deleted.Code)

		w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ProjectID), "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		progresses := decodeBody(t, w)["progresses"].([]interface{})
		require.Len(t, progresses, 1)

		comments := progresses[0].(map[string]interface{})["comments"].([]interface{})
		require.Len(t, comments, 1)
		assert.Nil(t, comments[0].(map[string]interface{})["author"])
	})

	t.Run("unknown project", func(t *testing.T) {
		r, _ := setupRouter(t)

		w := doRequest(t, r, http.MethodGet, "/api/projects/9999", "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProjectEvents(t *testing.T) {
	t.Run("mutations append to the activity log", func(t *testing.T) {
		r, tokens := setupRouter(t)
		user := createUser(t, "s1", "student")

		created := doRequest(t, r, http.MethodPost, "/api/projects", tokenFor(t, tokens, user), map[string]interface{}{
			"title": "X",
			"users": []string{"s1"},
		})
		require.Equal(t, http.StatusCreated, created.Code)
		projectID := uint(decodeBody(t, created)["project_id"].(float64))

		w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d/events", projectID), "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		events := decodeBody(t, w)["events"].([]interface{})
		require.Len(t, events, 1)

		event := events[0].(map[string]interface{})
		assert.Equal(t, "User s1", event["actor_name"])
		assert.Contains(t, event["content"], "created project")
	})
}
