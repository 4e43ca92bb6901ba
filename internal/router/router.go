package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pizza6inch/ProjectNest/internal/auth"
	"github.com/pizza6inch/ProjectNest/internal/handlers"
	"github.com/pizza6inch/ProjectNest/internal/middleware"
	"github.com/pizza6inch/ProjectNest/internal/types"
)

func NewRouter(tokens *auth.Service) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authRequired := middleware.AuthMiddleware(tokens)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login(tokens))
		api.GET("/me", authRequired, handlers.Me)

		users := api.Group("/users")
		{
			users.GET("", handlers.ListUsers)
			users.GET("/:user_id", handlers.GetUser)
			users.PUT("/:user_id", authRequired, handlers.UpdateUser)
			users.DELETE("/:user_id", authRequired, handlers.DeleteUser)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", handlers.ListProjects)
			projects.GET("/:project_id", handlers.GetProjectDetail)
			projects.GET("/:project_id/events", handlers.ListProjectEvents)
			projects.POST("", authRequired, handlers.CreateProject)
			projects.PUT("/:project_id", authRequired, handlers.UpdateProject)
			projects.DELETE("/:project_id", authRequired, handlers.DeleteProject)
		}

		api.GET("/my_projects", authRequired, handlers.MyProjects)

		progress := api.Group("/progress")
		{
			progress.GET("/my", authRequired, handlers.MyProgress)
			progress.GET("/:progress_id/comments", handlers.ListComments)
			progress.POST("", authRequired, handlers.CreateProgress)
			progress.PUT("/:progress_id", authRequired, handlers.UpdateProgress)
			progress.DELETE("/:progress_id", authRequired, handlers.DeleteProgress)
		}

		comments := api.Group("/comments", authRequired)
		{
			comments.POST("", handlers.CreateComment)
			comments.PUT("/:comment_id", handlers.UpdateComment)
			comments.DELETE("/:comment_id", handlers.DeleteComment)
		}

		tracks := api.Group("/tracks", authRequired)
		{
			tracks.GET("", handlers.ListTracks)
			tracks.POST("", handlers.CreateTrack)
			tracks.DELETE("/:project_id", handlers.DeleteTrack)
		}
	}

	return r
}
