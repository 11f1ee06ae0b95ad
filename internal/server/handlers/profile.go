package handlers

import (
	"net/http"

	"creatorlink/internal/models"
	"creatorlink/internal/server/middleware"

	"github.com/gin-gonic/gin"
)

// POST /api/onboarding/complete
func HandleCompleteOnboarding(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.OnboardingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		userType, err := hc.Service.CompleteOnboarding(ctx, middleware.UserID(c), req)
		if err != nil {
			respondError(hc, c, err, "Failed to complete onboarding")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"userType": userType,
			"message":  "Onboarding completed successfully",
		})
	}
}

// GET /api/profile
func HandleGetProfile(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		profile, err := hc.Service.GetProfile(ctx, middleware.UserID(c))
		if err != nil {
			respondError(hc, c, err, "Internal server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"profile":  profile.Value(),
			"userType": profile.UserType,
		})
	}
}

// PATCH /api/profile
func HandleUpdateProfile(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ProfileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		profile, err := hc.Service.UpdateProfile(ctx, middleware.UserID(c), req)
		if err != nil {
			respondError(hc, c, err, "Failed to update profile")
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile.Value()})
	}
}
