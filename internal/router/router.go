package router

import (
	"github.com/gin-gonic/gin"

	"github.com/adhub/adhub/backend/internal/api"
	"github.com/adhub/adhub/backend/internal/logging"
	"github.com/adhub/adhub/backend/internal/middleware"
	"github.com/adhub/adhub/backend/internal/service"
)

// multipartMemory keeps a full-size photo upload in memory.
const multipartMemory = service.MaxPhotoBytes + 1<<20

// SetupRouter configures the application routes
func SetupRouter(logger *logging.Logger, corsOrigins []string, svc api.Services, opts api.Options) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = multipartMemory

	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(corsOrigins))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, middleware.ErrorResponse{Error: "not found"})
	})

	api.RegisterRoutes(router, svc, opts)
	return router
}
