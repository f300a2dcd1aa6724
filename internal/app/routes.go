package app

import (
	"github.com/anmshpython/to-do-list/internal/auth"
	"github.com/anmshpython/to-do-list/internal/config"
	"github.com/anmshpython/to-do-list/internal/handlers"

	"github.com/gin-gonic/gin"
)

// Setup registers all routes on the given engine. Paths are the ones the
// original deployment exposed, so saved bookmarks keep working.
func Setup(r *gin.Engine, cfg config.Config, deps Deps) {
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))

	r.Use(auth.LoadSession(deps.Sessions))

	authHandler := handlers.NewAuthHandler(deps.Sessions, deps.Users, deps.Tasks)
	r.GET("/register", authHandler.RegisterPage)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	taskHandler := handlers.NewTaskHandler(deps.Sessions, deps.Tasks)
	r.GET("/", taskHandler.Home)
	r.POST("/", taskHandler.AddDraft)
	r.GET("/add_new_task", taskHandler.SavePage)
	r.POST("/add_new_task", taskHandler.SaveTask)
	r.GET("/delete/:task_id", taskHandler.DeleteTask)
	r.GET("/delete_current_task/:task_id", taskHandler.DeleteDraft)

	r.GET("/about", handlers.About)

	contactHandler := handlers.NewContactHandler(deps.Mailer)
	r.GET("/contact", contactHandler.Page)
	r.POST("/contact", contactHandler.Submit)
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}
