package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adhub/adhub/backend/internal/middleware"
	"github.com/adhub/adhub/backend/internal/service"
	"github.com/adhub/adhub/backend/internal/types"
)

// JobHandler serves the job board and creator activity on postings.
type JobHandler struct {
	jobs          service.IJobService
	auth          middleware.SessionValidator
	createLimiter *middleware.RateLimiter
	applyLimiter  *middleware.RateLimiter
}

func NewJobHandler(jobs service.IJobService, auth middleware.SessionValidator, createLimiter, applyLimiter *middleware.RateLimiter) *JobHandler {
	return &JobHandler{
		jobs:          jobs,
		auth:          auth,
		createLimiter: createLimiter,
		applyLimiter:  applyLimiter,
	}
}

func limited(limiter *middleware.RateLimiter, h gin.HandlerFunc) []gin.HandlerFunc {
	if limiter == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{limiter.Middleware(), h}
}

func (h *JobHandler) RegisterRoutes(router *gin.RouterGroup) {
	jobs := router.Group("/jobs")

	public := jobs.Group("")
	public.Use(middleware.OptionalSession(h.auth))
	{
		public.GET("", h.List)
		public.GET("/:slug", h.Get)
	}

	authed := jobs.Group("")
	authed.Use(middleware.RequireSession(h.auth))
	{
		authed.GET("/mine", h.ListMine)
		authed.GET("/saved", h.ListSaved)
		authed.GET("/applications", h.ListApplications)
		authed.POST("", limited(h.createLimiter, h.Create)...)
		authed.PUT("/:slug", h.Update)
		authed.DELETE("/:slug", h.Delete)
		authed.POST("/:slug/save", h.Save)
		authed.DELETE("/:slug/save", h.Unsave)
		authed.POST("/:slug/apply", limited(h.applyLimiter, h.Apply)...)
		authed.GET("/:slug/applicants", h.ListApplicants)
	}
}

func (h *JobHandler) List(c *gin.Context) {
	var filter types.JobFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, "invalid filter")
		return
	}
	jobs, err := h.jobs.List(c.Request.Context(), filter, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

// Get is the job detail page, /findwork/{slug} on the front end.
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobs.GetBySlug(c.Request.Context(), c.Param("slug"), middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ListMine(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	jobs, err := h.jobs.ListByOwner(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

func (h *JobHandler) Create(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	var req types.JobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	job, err := h.jobs.Create(c.Request.Context(), profileID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	var req types.JobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	job, err := h.jobs.Update(c.Request.Context(), profileID, c.Param("slug"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	if err := h.jobs.Delete(c.Request.Context(), profileID, c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobHandler) Save(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	if err := h.jobs.Save(c.Request.Context(), profileID, c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

func (h *JobHandler) Unsave(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	if err := h.jobs.Unsave(c.Request.Context(), profileID, c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": false})
}

func (h *JobHandler) ListSaved(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	jobs, err := h.jobs.ListSaved(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

func (h *JobHandler) Apply(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	application, err := h.jobs.Apply(c.Request.Context(), profileID, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func (h *JobHandler) ListApplications(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	applications, err := h.jobs.ListApplications(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications, "count": len(applications)})
}

func (h *JobHandler) ListApplicants(c *gin.Context) {
	profileID, ok := mustSession(c)
	if !ok {
		return
	}
	applicants, err := h.jobs.ListApplicants(c.Request.Context(), profileID, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applicants": applicants, "count": len(applicants)})
}
