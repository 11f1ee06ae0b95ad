package handlers

import (
	"net/http"

	"creatorlink/internal/models"
	"creatorlink/internal/server/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/travels
func HandleListTravels(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		travels, err := hc.Service.ListTravels(ctx, middleware.UserID(c))
		if err != nil {
			respondError(hc, c, err, "Failed to fetch travels")
			return
		}

		c.JSON(http.StatusOK, gin.H{"travels": travels})
	}
}

// POST /api/travels
func HandleCreateTravel(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TravelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		travel, err := hc.Service.CreateTravel(ctx, middleware.UserID(c), req)
		if err != nil {
			respondError(hc, c, err, "Failed to create travel")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "travel": travel})
	}
}

// PATCH /api/travels/:id
func HandleUpdateTravel(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TravelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		travel, err := hc.Service.UpdateTravel(ctx, middleware.UserID(c), c.Param("id"), req)
		if err != nil {
			respondError(hc, c, err, "Failed to update travel")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "travel": travel})
	}
}

// DELETE /api/travels/:id
func HandleDeleteTravel(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := hc.Service.DeleteTravel(ctx, middleware.UserID(c), c.Param("id")); err != nil {
			respondError(hc, c, err, "Failed to delete travel")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
