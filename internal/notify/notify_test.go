package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"creatorlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func testJob() *models.Job {
	date := models.NewDate(2026, time.July, 1)
	return &models.Job{
		ID:           "job_1",
		Title:        "Menu reel (3 videos)",
		Description:  "Short-form content.",
		BusinessName: "Cafe_Lune",
		City:         "Paris",
		Country:      "France",
		Industry:     "Food",
		JobDate:      &date,
		JobTime:      strPtr("10:00"),
		PaymentRange: strPtr("$200-$400"),
	}
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `a\_b\*c\.d\!`, EscapeMarkdown("a_b*c.d!"))
	assert.Equal(t, `\\n`, EscapeMarkdown(`\n`))
	assert.Equal(t, "plain", EscapeMarkdown("plain"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "héll...", TruncateString("héllo wörld", 7))
}

func TestFormatNewJob(t *testing.T) {
	msg := FormatNewJob(testJob())

	assert.Contains(t, msg, `*Menu reel \(3 videos\)*`)
	assert.Contains(t, msg, `🏢 Cafe\_Lune`)
	assert.Contains(t, msg, `💰 $200\-$400`)
	assert.Contains(t, msg, `📅 2026\-07\-01 10:00`)
	assert.Contains(t, msg, `Short\-form content\.`)

	job := testJob()
	job.PaymentRange = nil
	job.JobDate = nil
	msg = FormatNewJob(job)
	assert.NotContains(t, msg, "💰")
	assert.NotContains(t, msg, "📅")
}

func TestFormatNewApplication(t *testing.T) {
	msg := FormatNewApplication(testJob(), &models.CreatorProfile{Username: "amy_eats", City: "Lisbon", Country: "Portugal"})
	assert.Contains(t, msg, `*@amy\_eats* applied to *Menu reel \(3 videos\)*`)
	assert.Contains(t, msg, "Lisbon, Portugal")
}

func TestTelegram_Send(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/bottest-token/sendMessage"), r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`))
	}))
	defer srv.Close()

	tg, err := NewTelegram("test-token", 42, srv.URL, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, tg.JobPosted(context.Background(), testJob()))
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "MarkdownV2", got["parse_mode"])
	assert.Contains(t, got["text"], "New job posted")
}

func TestTelegram_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	tg, err := NewTelegram("test-token", 42, srv.URL, zap.NewNop())
	require.NoError(t, err)

	err = tg.ApplicationReceived(context.Background(), testJob(), &models.CreatorProfile{Username: "amy"})
	assert.Error(t, err)
}

func TestTelegram_CancelledContext(t *testing.T) {
	tg, err := NewTelegram("test-token", 42, "http://127.0.0.1:1", zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, tg.JobPosted(ctx, testJob()), context.Canceled)
}

func TestNoop(t *testing.T) {
	var n Noop
	assert.NoError(t, n.JobPosted(context.Background(), testJob()))
	assert.NoError(t, n.ApplicationReceived(context.Background(), testJob(), &models.CreatorProfile{}))
}
