package routes

import (
	"net/http"
	"time"

	"realfun/handlers"
	"realfun/middleware"
	"realfun/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCopilotRoutes registers the request copilot endpoints.
func RegisterCopilotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/copilot")
	{
		// Protected routes (the web form's backend holds the API key)
		api.Use(middleware.AdminAuthMiddleware())
		api.POST("/generate", hb.GenerateHandler)
		api.GET("/session/:id", hb.SessionResponseHandler)
		api.POST("/transcribe", hb.TranscribeHandler)
	}
}

// RegisterHistoryRoutes registers endpoints over stored copilot records.
func RegisterHistoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/copilot/history")
	{
		api.Use(middleware.AdminAuthMiddleware())
		api.GET("", hb.ListHistoryHandler)
		api.GET("/:id", hb.GetHistoryHandler)
		api.DELETE("/:id", hb.DeleteHistoryHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		hs := utils.GetHealthStatus()
		status := http.StatusOK
		state := "ok"
		if !hs.Mongo || !hs.Redis {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		c.JSON(status, gin.H{
			"status":    state,
			"mongo":     hs.Mongo,
			"redis":     hs.Redis,
			"checkedAt": hs.CheckedAt,
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCopilotRoutes(r, hb)
	RegisterHistoryRoutes(r, hb)
	RegisterHealthRoute(r)
}
