package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adhub/adhub/backend/internal/middleware"
	"github.com/adhub/adhub/backend/internal/service"
	"github.com/adhub/adhub/backend/internal/types"
)

// TravelHandler manages the caller's own travel schedules.
type TravelHandler struct {
	travel service.ITravelService
	auth   middleware.SessionValidator
}

func NewTravelHandler(travel service.ITravelService, auth middleware.SessionValidator) *TravelHandler {
	return &TravelHandler{travel: travel, auth: auth}
}

func (h *TravelHandler) RegisterRoutes(router *gin.RouterGroup) {
	travel := router.Group("/travel")
	travel.Use(middleware.RequireSession(h.auth))
	{
		travel.GET("", h.List)
		travel.POST("", h.Create)
		travel.PUT("/:id", h.Update)
		travel.DELETE("/:id", h.Delete)
	}
}

func (h *TravelHandler) List(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	schedules, err := h.travel.ListOwn(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

func (h *TravelHandler) Create(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	var req types.TravelScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	view, err := h.travel.Create(c.Request.Context(), profileID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *TravelHandler) Update(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid schedule id")
		return
	}
	var req types.TravelScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	view, err := h.travel.Update(c.Request.Context(), profileID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *TravelHandler) Delete(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid schedule id")
		return
	}
	if err := h.travel.Delete(c.Request.Context(), profileID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
