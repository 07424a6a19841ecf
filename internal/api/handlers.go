package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adhub/adhub/backend/internal/middleware"
	"github.com/adhub/adhub/backend/internal/service"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Services is everything the HTTP surface calls into.
type Services struct {
	Auth      service.IAuthService
	Profiles  service.IProfileService
	Photos    service.IPhotoService
	Travel    service.ITravelService
	Directory service.IDirectoryService
	Jobs      service.IJobService
	Webhooks  service.IWebhookService
}

// Limiters are optional; nil entries disable limiting for that route.
type Limiters struct {
	JobCreation *middleware.RateLimiter
	Application *middleware.RateLimiter
	PhotoUpload *middleware.RateLimiter
}

// Options carries the settings handlers need from configuration.
type Options struct {
	FrontendURL string
	Cookie      CookieConfig
	Limiters    Limiters
	DB          Pinger
}

// HealthCheck returns the health status of the API
func HealthCheck(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.HealthCheck(ctx); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "AdHub API is running"})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svc Services, opts Options) {
	router.GET("/health", HealthCheck(opts.DB))

	v1 := router.Group("/api/v1")

	NewAuthHandler(svc.Auth, svc.Profiles, opts.FrontendURL, opts.Cookie).RegisterRoutes(router, v1)
	NewWebhookHandler(svc.Webhooks).RegisterRoutes(router)
	NewDirectoryHandler(svc.Directory, svc.Auth).RegisterRoutes(v1)
	NewProfileHandler(svc.Profiles, svc.Photos, svc.Auth, opts.Limiters.PhotoUpload, opts.Cookie).RegisterRoutes(v1)
	NewTravelHandler(svc.Travel, svc.Auth).RegisterRoutes(v1)
	NewJobHandler(svc.Jobs, svc.Auth, opts.Limiters.JobCreation, opts.Limiters.Application).RegisterRoutes(v1)
}
