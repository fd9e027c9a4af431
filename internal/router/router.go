package router

import (
	"net/http"

	"github.com/clubstack/backend/internal/handler"
	"github.com/clubstack/backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	DB                 *gorm.DB
	JWTSecret          string
	CORSAllowOrigins   []string
	AuthHandler        *handler.AuthHandler
	UserHandler        *handler.UserHandler
	ProjectHandler     *handler.ProjectHandler
	ApplicationHandler *handler.ApplicationHandler
	PostHandler        *handler.PostHandler
	InboxHandler       *handler.InboxHandler
	DashboardHandler   *handler.DashboardHandler
}

func Setup(r *gin.Engine, deps Deps) {
	r.Use(middleware.CORSMiddleware(deps.CORSAllowOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public routes (no auth)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", deps.AuthHandler.Signup)
		auth.POST("/login", deps.AuthHandler.Login)
	}

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.DB))
	{
		authed.GET("/auth/me", deps.AuthHandler.GetMe)
		authed.GET("/auth/isAdmin", deps.AuthHandler.IsAdmin)

		// User directory (all authenticated users)
		authed.GET("/users", deps.UserHandler.Directory)

		// Admin routes
		admin := authed.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/users/list", deps.UserHandler.ListUsers)
			admin.POST("/users/:action", deps.UserHandler.ApplyAction)
		}
		// Stats is auth-only: non-admins get their own slice.
		authed.POST("/admin/stats", deps.DashboardHandler.GetStats)

		// Projects
		projects := authed.Group("/projects")
		{
			projects.POST("", deps.ProjectHandler.Create)
			projects.GET("", deps.ProjectHandler.List)
			projects.GET("/:id", deps.ProjectHandler.GetDetail)
			projects.POST("/:id/members", deps.ProjectHandler.ReconcileMembers)
		}

		// Applications
		applications := authed.Group("/applications")
		{
			applications.GET("", deps.ApplicationHandler.List)
			applications.POST("", deps.ApplicationHandler.Apply)
			applications.POST("/:id/decide", middleware.RequireAdmin(), deps.ApplicationHandler.Decide)
		}

		// Feed
		posts := authed.Group("/posts")
		{
			posts.GET("", deps.PostHandler.Feed)
			posts.POST("", deps.PostHandler.Create)
			posts.GET("/:id/comments", deps.PostHandler.Comments)
			posts.POST("/:id/comments", deps.PostHandler.AddComment)
			posts.POST("/:id/like", deps.PostHandler.ToggleLike)
		}
		authed.POST("/comments/:id/like", deps.PostHandler.ToggleCommentLike)

		// Inbox
		inbox := authed.Group("/inbox")
		{
			inbox.GET("", deps.InboxHandler.List)
			inbox.POST("/invite", deps.InboxHandler.Invite)
			inbox.POST("/:id/respond", deps.InboxHandler.Respond)
			inbox.POST("/:id/read", deps.InboxHandler.MarkRead)
			inbox.GET("/stream", deps.InboxHandler.Stream)
		}
	}
}
