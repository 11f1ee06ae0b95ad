package clerk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, "sk_test", 2*time.Second, zap.NewNop())
}

func TestGetUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/user_1", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "user_1",
			"primary_email_address_id": "em_2",
			"email_addresses": [
				{"id": "em_1", "email_address": "old@example.com"},
				{"id": "em_2", "email_address": "amy@example.com"}
			],
			"first_name": "Amy",
			"last_name": null
		}`))
	})

	u, err := c.GetUser(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Equal(t, "amy@example.com", u.PrimaryEmail())
	require.NotNil(t, u.FirstName)
	assert.Equal(t, "Amy", *u.FirstName)
	assert.Nil(t, u.LastName)
}

func TestGetUser_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDoRequest_SingleAttempt(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.GetUser(context.Background(), "user_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 500")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDoRequest_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{http.StatusUnauthorized, "", func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrUnauthorized) }},
		{http.StatusTooManyRequests, "", func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrRateLimited) }},
		{http.StatusBadRequest, `{"errors":[{"message":"bad","long_message":"user_id is invalid"}]}`, func(t *testing.T, err error) {
			assert.ErrorContains(t, err, "user_id is invalid")
		}},
	}

	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(tc.body))
		})
		_, err := c.GetUser(context.Background(), "user_1")
		tc.check(t, err)
	}
}

func TestUpdateUserMetadata(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/user_1/metadata", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "creator", body["public_metadata"]["user_type"])
		assert.Equal(t, true, body["public_metadata"]["onboarding_complete"])

		_, _ = w.Write([]byte(`{"id":"user_1"}`))
	})

	err := c.UpdateUserMetadata(context.Background(), "user_1", map[string]interface{}{
		"user_type":           "creator",
		"onboarding_complete": true,
	})
	assert.NoError(t, err)
}

func TestPrimaryEmail_Fallbacks(t *testing.T) {
	u := &User{EmailAddresses: []EmailAddress{{ID: "a", EmailAddress: "first@example.com"}}}
	assert.Equal(t, "first@example.com", u.PrimaryEmail())
	assert.Equal(t, "", (&User{}).PrimaryEmail())
}
