package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/MJS022423/GlamURe/handlers"
	"github.com/MJS022423/GlamURe/middleware"
)

// SetupRouter assembles the router around an injected handler set.
func SetupRouter(h *handlers.Handler, corsOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Same window the original front end was tuned against.
	limiter := middleware.NewIPRateLimiter(100, 30*time.Minute)
	router.Use(middleware.RateLimit(limiter))

	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "GlamURe API is running"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	auth := router.Group("/auth")
	auth.POST("/Register", h.Register)
	auth.POST("/Login", h.Login)

	requireAuth := middleware.RequireAuth(h.JWTSecret)

	post := router.Group("/post")
	post.POST("/Addpost", h.AddPost)
	post.GET("/Displaypost", h.DisplayPosts)

	like := router.Group("/like", requireAuth)
	like.POST("/ToggleLike", h.ToggleLike)

	bookmark := router.Group("/bookmark")
	bookmark.POST("/SaveBookmark", h.SaveBookmark)
	bookmark.POST("/RemoveBookmark", h.RemoveBookmark)
	bookmark.GET("/DisplayBookmark", h.DisplayBookmarks)

	comment := router.Group("/comment", requireAuth)
	comment.POST("/Addcomment", h.AddComment)
	comment.POST("/Removecomment", h.RemoveComment)
	comment.GET("/Displaycomment", h.DisplayComments)

	leaderboard := router.Group("/leaderboard")
	leaderboard.GET("/Display", h.DisplayLeaderboard)

	notification := router.Group("/notification")
	notification.GET("/PublicKey", h.GetPublicKey)
	notification.POST("/Subscribe", requireAuth, h.SubscribePush)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Endpoint not found",
			"path":  c.Request.URL.Path,
		})
	})

	return router
}
