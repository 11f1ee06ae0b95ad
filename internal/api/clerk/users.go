package clerk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil)
	if err != nil {
		c.logger.Error("failed to get user",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get user: %w", err)
	}

	var user User
	if err := c.parseResponse(data, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateUserMetadata merges metadata into the user's public metadata.
func (c *Client) UpdateUserMetadata(ctx context.Context, userID string, metadata map[string]interface{}) error {
	path := "/users/" + url.PathEscape(userID) + "/metadata"

	_, err := c.doRequest(ctx, http.MethodPatch, path, metadataRequest{PublicMetadata: metadata})
	if err != nil {
		c.logger.Error("failed to update user metadata",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return fmt.Errorf("update user metadata: %w", err)
	}

	c.logger.Info("user metadata updated", zap.String("user_id", userID))
	return nil
}
