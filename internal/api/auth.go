package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adhub/adhub/backend/internal/middleware"
	"github.com/adhub/adhub/backend/internal/service"
	"github.com/adhub/adhub/backend/internal/types"
)

// CookieConfig controls the session cookie written after sign-in.
type CookieConfig struct {
	Domain string
	Secure bool
}

// AuthHandler proxies the identity provider sign-in and exposes the session.
type AuthHandler struct {
	auth        service.IAuthService
	profiles    service.IProfileService
	frontendURL string
	cookie      CookieConfig
}

func NewAuthHandler(auth service.IAuthService, profiles service.IProfileService, frontendURL string, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{
		auth:        auth,
		profiles:    profiles,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		cookie:      cookie,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine, v1 *gin.RouterGroup) {
	auth := router.Group("/api/auth")
	{
		auth.GET("/sign-in", h.SignIn)
		auth.GET("/callback", h.Callback)
		auth.POST("/sign-out", h.SignOut)
	}

	v1.GET("/session", middleware.RequireSession(h.auth), h.GetSession)
}

// SignIn starts the authorization-code flow.
func (h *AuthHandler) SignIn(c *gin.Context) {
	authURL, err := h.auth.BeginSignIn(c.Request.Context(), c.Query("redirect_to"))
	if err != nil {
		_ = c.Error(err)
		c.Redirect(http.StatusFound, h.frontendURL+service.SignInPath+"?error=state_unavailable")
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

// Callback finishes the flow and always answers with a redirect.
func (h *AuthHandler) Callback(c *gin.Context) {
	result := h.auth.CompleteSignIn(c.Request.Context(), c.Query("code"), c.Query("state"))
	if result.Token != "" {
		h.setCookie(c, result.Token, h.auth.SessionTTLSeconds())
	}
	c.Redirect(http.StatusFound, h.frontendURL+result.Redirect)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	h.setCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// GetSession returns the caller and their profile.
func (h *AuthHandler) GetSession(c *gin.Context) {
	session, _ := middleware.SessionFrom(c)
	profile, err := h.profiles.Get(c.Request.Context(), session.ProfileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.SessionResponse{
		ProfileID: session.ProfileID,
		Email:     profile.Email,
		Profile:   profile,
	})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}
