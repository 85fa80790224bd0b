package server

import (
	"net/http"

	"tcu-system/internal/config"
	"tcu-system/internal/handlers"
	"tcu-system/internal/middleware"
	"tcu-system/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Static("/static", "./web/static")
	r.Static("/uploads", cfg.UploadDir)
	r.LoadHTMLGlob("web/templates/*.html")

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("tcu_session", store))

	r.Use(middleware.InjectUser())

	// AUTH
	r.GET("/login", handlers.ShowLogin)
	r.POST("/login", handlers.Login)
	r.POST("/logout", handlers.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// DASHBOARD
	auth.GET("/", handlers.Dashboard)
	auth.GET("/home", handlers.Dashboard)

	// REQUESTS
	auth.GET("/requests", handlers.ListRequests)
	auth.GET("/requests/create",
		middleware.RequireRole(models.RoleStudent),
		handlers.ShowCreateRequest,
	)
	auth.POST("/requests/create",
		middleware.RequireRole(models.RoleStudent),
		handlers.CreateRequest,
	)
	auth.GET("/review/:id",
		middleware.RequireRole(models.RoleProfessor, models.RoleAdmin),
		handlers.ShowReviewRequest,
	)
	auth.POST("/review/:id",
		middleware.RequireRole(models.RoleProfessor, models.RoleAdmin),
		handlers.ReviewRequest,
	)
	auth.GET("/request/:id", handlers.RequestDetail)

	// ADMIN CATALOG
	admin := auth.Group("/")
	admin.Use(middleware.RequireRole(models.RoleAdmin))

	admin.GET("/projects", handlers.ListProjects)
	admin.POST("/projects/create", handlers.CreateProject)
	admin.POST("/projects/edit/:id", handlers.EditProject)

	admin.GET("/users", handlers.ListUsers)
	admin.POST("/users/create", handlers.CreateUser)
	admin.POST("/users/edit/:id", handlers.EditUser)

	// delete endpoints answer JSON, auth failures included
	del := r.Group("/")
	del.Use(middleware.RequireAuthJSON(), middleware.RequireRoleJSON(models.RoleAdmin))
	del.POST("/projects/delete/:id", handlers.DeleteProject)
	del.POST("/users/delete/:id", handlers.DeleteUser)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
