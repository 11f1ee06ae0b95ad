package handlers

import (
	"errors"
	"io"
	"net/http"

	"creatorlink/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxWebhookBody = 1 << 20

// POST /api/webhooks/clerk
func HandleClerkWebhook(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
		if err != nil {
			hc.Logger.Warn("failed to read webhook body", zap.Error(err))
			c.String(http.StatusBadRequest, "Webhook verification failed")
			return
		}

		evt, err := hc.Webhooks.Verify(payload, c.Request.Header)
		if errors.Is(err, auth.ErrMissingHeaders) {
			c.String(http.StatusBadRequest, "Missing svix headers")
			return
		}
		if err != nil {
			hc.Logger.Warn("webhook rejected", zap.Error(err))
			c.String(http.StatusBadRequest, "Webhook verification failed")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		switch evt.Type {
		case auth.EventUserCreated, auth.EventUserUpdated, auth.EventUserDeleted:
			user, err := evt.User()
			if err != nil {
				hc.Logger.Warn("malformed webhook payload",
					zap.String("type", evt.Type),
					zap.Error(err),
				)
				c.String(http.StatusBadRequest, "Webhook verification failed")
				return
			}

			switch evt.Type {
			case auth.EventUserCreated:
				if err := hc.Service.UserCreated(ctx, user); err != nil {
					hc.Logger.Error("failed to create user from webhook",
						zap.String("user_id", user.ID),
						zap.Error(err),
					)
					c.String(http.StatusInternalServerError, "Error creating user")
					return
				}
			case auth.EventUserUpdated:
				hc.Service.UserUpdated(ctx, user)
			case auth.EventUserDeleted:
				hc.Service.UserDeleted(ctx, user.ID)
			}
		default:
			hc.Logger.Debug("ignoring webhook event", zap.String("type", evt.Type))
		}

		c.String(http.StatusOK, "Webhook processed")
	}
}
