package handlers

import (
	"net/http"

	"creatorlink/internal/models"
	"creatorlink/internal/server/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/jobs
func HandleListJobs(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		feed, err := hc.Service.ListJobs(ctx, middleware.UserID(c))
		if err != nil {
			respondError(hc, c, err, "Failed to fetch jobs")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"jobs":            feed.Jobs,
			"applied_job_ids": feed.AppliedJobIDs,
			"saved_job_ids":   feed.SavedJobIDs,
		})
	}
}

// POST /api/jobs
func HandlePostJob(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.JobRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		job, err := hc.Service.PostJob(ctx, middleware.UserID(c), req)
		if err != nil {
			respondError(hc, c, err, "Failed to create job")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "job": job})
	}
}

// GET /api/jobs/:id
func HandleGetJob(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		detail, err := hc.Service.GetJob(ctx, c.Param("id"), middleware.UserID(c))
		if err != nil {
			respondError(hc, c, err, "Failed to fetch job")
			return
		}

		body := gin.H{"job": detail.Job}
		if detail.HasApplied != nil {
			body["has_applied"] = *detail.HasApplied
		}
		if detail.HasSaved != nil {
			body["has_saved"] = *detail.HasSaved
		}
		c.JSON(http.StatusOK, body)
	}
}

// PATCH /api/jobs/:id
func HandleUpdateJob(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.JobRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		job, err := hc.Service.UpdateJob(ctx, middleware.UserID(c), c.Param("id"), req)
		if err != nil {
			respondError(hc, c, err, "Failed to update job")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "job": job})
	}
}

// DELETE /api/jobs/:id
func HandleDeleteJob(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := hc.Service.DeleteJob(ctx, middleware.UserID(c), c.Param("id")); err != nil {
			respondError(hc, c, err, "Failed to delete job")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GET /api/jobs/:id/applicants
func HandleListApplicants(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		applicants, err := hc.Service.ListApplicants(ctx, middleware.UserID(c), c.Param("id"))
		if err != nil {
			respondError(hc, c, err, "Failed to fetch applicants")
			return
		}

		c.JSON(http.StatusOK, gin.H{"applicants": applicants})
	}
}

// GET /api/dashboard
func HandleDashboard(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		d, err := hc.Service.Dashboard(ctx, middleware.UserID(c))
		if err != nil {
			respondError(hc, c, err, "Failed to load dashboard")
			return
		}

		body := gin.H{"userType": d.UserType}
		switch d.UserType {
		case models.UserTypeBusiness:
			body["jobs"] = d.Jobs
		case models.UserTypeCreator:
			body["applications"] = d.Applications
		}
		c.JSON(http.StatusOK, body)
	}
}
