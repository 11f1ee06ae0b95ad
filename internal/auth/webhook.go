package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"creatorlink/internal/api/clerk"

	svix "github.com/svix/svix-webhooks/go"
)

const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

var (
	ErrMissingHeaders     = errors.New("missing svix headers")
	ErrInvalidSignature   = errors.New("webhook verification failed")
	webhookRequiredHeader = []string{"svix-id", "svix-timestamp", "svix-signature"}
)

// Event is a verified webhook delivery. Data is decoded lazily by type.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// User decodes the event payload as a user object.
func (e *Event) User() (*clerk.User, error) {
	var u clerk.User
	if err := json.Unmarshal(e.Data, &u); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("decode %s payload: missing id", e.Type)
	}
	return &u, nil
}

type WebhookVerifier struct {
	wh *svix.Webhook
}

func NewWebhookVerifier(secret string) (*WebhookVerifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("webhook secret: %w", err)
	}
	return &WebhookVerifier{wh: wh}, nil
}

// Verify checks the delivery signature and decodes the envelope.
func (v *WebhookVerifier) Verify(payload []byte, headers http.Header) (*Event, error) {
	for _, h := range webhookRequiredHeader {
		if headers.Get(h) == "" {
			return nil, ErrMissingHeaders
		}
	}

	if err := v.wh.Verify(payload, headers); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	var evt Event
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	return &evt, nil
}
