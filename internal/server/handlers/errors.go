package handlers

import (
	"errors"
	"net/http"

	"creatorlink/internal/server/middleware"
	"creatorlink/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgInvalidBody = "Invalid request body"

// respondError maps a service error to its status. Unclassified errors are
// logged and answered with fallback.
func respondError(hc *Context, c *gin.Context, err error, fallback string) {
	var (
		notFound   *service.NotFoundError
		validation *service.ValidationError
		forbidden  *service.ForbiddenError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Msg})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Msg})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": forbidden.Msg})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, service.ErrOnboardingIncomplete):
		c.JSON(http.StatusConflict, gin.H{"error": service.ErrOnboardingIncomplete.Error()})
	default:
		hc.Logger.Error(fallback,
			zap.String("route", c.FullPath()),
			zap.String("user_id", middleware.UserID(c)),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
}
