package handlers

import (
	"net/http"

	"creatorlink/internal/models"
	"creatorlink/internal/server/middleware"

	"github.com/gin-gonic/gin"
)

// POST /api/applications
func HandleApply(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.JobRefRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		app, err := hc.Service.Apply(ctx, middleware.UserID(c), req.JobID)
		if err != nil {
			respondError(hc, c, err, "Failed to submit application")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "application": app})
	}
}

// GET /api/applications
func HandleListApplications(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		apps, err := hc.Service.ListApplications(ctx, middleware.UserID(c))
		if err != nil {
			respondError(hc, c, err, "Failed to fetch applications")
			return
		}

		c.JSON(http.StatusOK, gin.H{"applications": apps})
	}
}

// POST /api/saved-jobs
func HandleSaveJob(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.JobRefRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		saved, err := hc.Service.SaveJob(ctx, middleware.UserID(c), req.JobID)
		if err != nil {
			respondError(hc, c, err, "Failed to save job")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "savedJob": saved})
	}
}

// DELETE /api/saved-jobs?job_id=
func HandleUnsaveJob(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := hc.Service.UnsaveJob(ctx, middleware.UserID(c), c.Query("job_id")); err != nil {
			respondError(hc, c, err, "Failed to unsave job")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GET /api/saved-jobs
func HandleListSavedJobs(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		jobs, err := hc.Service.ListSavedJobs(ctx, middleware.UserID(c))
		if err != nil {
			respondError(hc, c, err, "Failed to fetch saved jobs")
			return
		}

		c.JSON(http.StatusOK, gin.H{"jobs": jobs})
	}
}
