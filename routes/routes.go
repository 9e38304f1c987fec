package routes

import (
	"net/http"
	"time"

	"chairside/handlers"
	"chairside/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the scheduling engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.GET("/availability", hb.GetAvailability)
		api.POST("", hb.CommitBooking)
		api.POST("/:groupID/series", hb.GenerateSeries)
		api.PUT("/:groupID/reschedule", hb.RescheduleBooking)
		api.PUT("/:groupID/lock", hb.LockBooking)
		api.DELETE("/:groupID", hb.CancelBooking)
	}
}

// RegisterResourceRoutes registers resource endpoints.
func RegisterResourceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/resources")
	{
		api.GET("", hb.ListResources)
		api.GET("/:id", hb.GetResource)
		api.POST("/:id/holds", hb.CreateHold)
	}
}

// RegisterCatalogRoutes registers service catalogue endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.ListServices)
		api.GET("/:id", hb.GetService)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
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

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterResourceRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
}
