// Package notify posts marketplace activity to an operators' Telegram chat.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"creatorlink/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const sendTimeout = 5 * time.Second

type Telegram struct {
	bot    *tele.Bot
	chat   tele.ChatID
	logger *zap.Logger
}

// NewTelegram creates a send-only bot. apiURL may be empty for the public
// Bot API.
func NewTelegram(token string, chatID int64, apiURL string, logger *zap.Logger) (*Telegram, error) {
	pref := tele.Settings{
		URL:     apiURL,
		Token:   token,
		Offline: true,
		Client:  &http.Client{Timeout: sendTimeout},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Telegram{
		bot:    b,
		chat:   tele.ChatID(chatID),
		logger: logger,
	}, nil
}

func (t *Telegram) JobPosted(ctx context.Context, job *models.Job) error {
	return t.send(ctx, FormatNewJob(job))
}

func (t *Telegram) ApplicationReceived(ctx context.Context, job *models.Job, creator *models.CreatorProfile) error {
	return t.send(ctx, FormatNewApplication(job, creator))
}

func (t *Telegram) send(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := t.bot.Send(t.chat, message, tele.ModeMarkdownV2); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	t.logger.Debug("notification sent", zap.Int64("chat_id", int64(t.chat)))
	return nil
}

// Noop drops every notification. Used when no Telegram token is configured.
type Noop struct{}

func (Noop) JobPosted(context.Context, *models.Job) error { return nil }

func (Noop) ApplicationReceived(context.Context, *models.Job, *models.CreatorProfile) error {
	return nil
}
