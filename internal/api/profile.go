package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adhub/adhub/backend/internal/middleware"
	"github.com/adhub/adhub/backend/internal/service"
	"github.com/adhub/adhub/backend/internal/types"
)

type ProfileHandler struct {
	profiles service.IProfileService
	photos   service.IPhotoService
	auth     middleware.SessionValidator
	limiter  *middleware.RateLimiter
	cookie   CookieConfig
}

func NewProfileHandler(profiles service.IProfileService, photos service.IPhotoService, auth middleware.SessionValidator, limiter *middleware.RateLimiter, cookie CookieConfig) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		photos:   photos,
		auth:     auth,
		limiter:  limiter,
		cookie:   cookie,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/profile/username-available", middleware.OptionalSession(h.auth), h.UsernameAvailable)

	authed := router.Group("")
	authed.Use(middleware.RequireSession(h.auth))
	{
		authed.GET("/profile", h.GetProfile)
		authed.PUT("/profile", h.UpdateProfile)
		authed.POST("/profile/setup", h.CompleteSetup)
		authed.PUT("/settings", h.UpdateSettings)
		authed.DELETE("/settings/account", h.DeleteAccount)

		upload := []gin.HandlerFunc{h.UploadPhoto}
		if h.limiter != nil {
			upload = append([]gin.HandlerFunc{h.limiter.Middleware()}, upload...)
		}
		authed.POST("/profile/photo", upload...)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	profile, err := h.profiles.Get(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) CompleteSetup(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	var req types.ProfileSetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	profile, err := h.profiles.CompleteSetup(c.Request.Context(), profileID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	profile, err := h.profiles.Update(c.Request.Context(), profileID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UsernameAvailable backs the live check in the setup and edit forms. A
// signed-in caller's own username counts as available.
func (h *ProfileHandler) UsernameAvailable(c *gin.Context) {
	username := c.Query("username")
	available, err := h.profiles.UsernameAvailable(c.Request.Context(), username, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "available": available})
}

func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	header, err := c.FormFile("photo")
	if err != nil {
		badRequest(c, "photo file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, "could not read photo")
		return
	}
	defer file.Close()

	profile, err := h.photos.Upload(c.Request.Context(), profileID, service.PhotoUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateSettings(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	var req types.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	profile, err := h.profiles.UpdateSettings(c.Request.Context(), profileID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteAccount removes the caller's profile and everything they own, then
// signs them out.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	if err := h.profiles.Delete(c.Request.Context(), profileID); err != nil {
		respondError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
	c.Status(http.StatusNoContent)
}
