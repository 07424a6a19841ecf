package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adhub/adhub/backend/internal/countries"
	"github.com/adhub/adhub/backend/internal/middleware"
	"github.com/adhub/adhub/backend/internal/service"
	"github.com/adhub/adhub/backend/internal/types"
)

// DirectoryHandler serves the public creator directory and creator pages.
type DirectoryHandler struct {
	directory service.IDirectoryService
	auth      middleware.SessionValidator
}

func NewDirectoryHandler(directory service.IDirectoryService, auth middleware.SessionValidator) *DirectoryHandler {
	return &DirectoryHandler{directory: directory, auth: auth}
}

func (h *DirectoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/countries", ListCountries)

	creators := router.Group("/creators")
	creators.Use(middleware.OptionalSession(h.auth))
	{
		creators.GET("", h.ListCreators)
		creators.GET("/:username", h.GetCreator)
	}
}

func (h *DirectoryHandler) ListCreators(c *gin.Context) {
	var filter types.CreatorFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, "invalid filter")
		return
	}
	creators, err := h.directory.ListCreators(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"creators": creators, "count": len(creators)})
}

func (h *DirectoryHandler) GetCreator(c *gin.Context) {
	detail, err := h.directory.GetCreator(c.Request.Context(), c.Param("username"), middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListCountries returns the country picker options.
func ListCountries(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.JSON(http.StatusOK, gin.H{"countries": countries.All()})
}
