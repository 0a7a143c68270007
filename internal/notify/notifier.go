// Package notify implements the best-effort fan-out of a contact submission
// to the configured side channels (Slack webhook, Telegram bot, SMTP email).
// Channel failures are logged and recorded, never returned to the caller.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arabianlink/contact-api/internal/domain"
	"github.com/arabianlink/contact-api/pkg/email"
	"github.com/arabianlink/contact-api/pkg/slack"
	"github.com/arabianlink/contact-api/pkg/telegram"
)

// emailSubject is the fixed subject line for the email channel.
const emailSubject = "New Contact Form Submission"

// Channel names used in logs and failure records.
const (
	ChannelSlack    = "slack"
	ChannelTelegram = "telegram"
	ChannelEmail    = "email"
)

// Config carries the per-channel settings. A channel whose settings are
// incomplete is silently disabled.
type Config struct {
	SlackWebhookURL  string
	TelegramBotToken string
	TelegramChatID   string
	SMTPServer       string
	SMTPPort         int
	SMTPUser         string
	SMTPPassword     string
	RecipientEmail   string
}

// TextSender delivers one rendered message to a single channel.
type TextSender interface {
	Send(ctx context.Context, text string) error
}

// ChannelResult is the outcome of one channel's delivery attempt.
type ChannelResult struct {
	Channel string
	Err     error
}

// DeliveryFailure describes a submission whose delivery failed on every
// configured channel.
type DeliveryFailure struct {
	SubmissionID string
	Name         string
	Email        string
	Channels     []string
	Reason       string
	Attempts     int
}

// FailureStore persists delivery failures for later inspection.
type FailureStore interface {
	Record(ctx context.Context, failure DeliveryFailure) error
}

// Notifier fans a submission out to whichever channels are configured.
// Unset channel fields are skipped; Failures may be nil.
type Notifier struct {
	Logger   zerolog.Logger
	Slack    TextSender
	Telegram TextSender
	Email    TextSender
	Failures FailureStore
}

// FromConfig assembles a Notifier, gating each channel on the presence of its
// configuration. The webhook channel additionally requires a secure URL.
func FromConfig(cfg Config, logger zerolog.Logger, httpClient *http.Client, failures FailureStore) *Notifier {
	n := &Notifier{
		Logger:   logger,
		Failures: failures,
	}

	if cfg.SlackWebhookURL != "" && strings.HasPrefix(cfg.SlackWebhookURL, "https://") {
		n.Slack = slack.NewClient(cfg.SlackWebhookURL, httpClient)
	}

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		n.Telegram = telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramChatID, httpClient)
	}

	if cfg.SMTPServer != "" && cfg.SMTPPort > 0 && cfg.SMTPUser != "" && cfg.SMTPPassword != "" && cfg.RecipientEmail != "" {
		n.Email = &emailSender{
			client: email.NewClient(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPUser),
			to:     cfg.RecipientEmail,
		}
	}

	return n
}

// RenderMessage produces the fixed plain-text body delivered to every channel.
func RenderMessage(submission domain.Submission) string {
	return fmt.Sprintf(
		"New contact form submission:\nName: %s\nEmail: %s\nMessage: %s",
		submission.Name, submission.Email, submission.Message,
	)
}

// Notify attempts delivery on each configured channel concurrently and
// returns the per-channel results. Failures are logged with the channel
// identified; when every configured channel fails, one audit record is
// written. Notify never returns an error and attempts nothing when no
// channel is configured.
func (n *Notifier) Notify(ctx context.Context, submission domain.Submission) []ChannelResult {
	type attempt struct {
		channel string
		sender  TextSender
	}

	attempts := make([]attempt, 0, 3)
	if n.Slack != nil {
		attempts = append(attempts, attempt{ChannelSlack, n.Slack})
	}
	if n.Telegram != nil {
		attempts = append(attempts, attempt{ChannelTelegram, n.Telegram})
	}
	if n.Email != nil {
		attempts = append(attempts, attempt{ChannelEmail, n.Email})
	}
	if len(attempts) == 0 {
		return nil
	}

	text := RenderMessage(submission)
	results := make([]ChannelResult, len(attempts))

	var wg sync.WaitGroup
	for i, a := range attempts {
		wg.Add(1)
		go func(i int, a attempt) {
			defer wg.Done()
			results[i] = ChannelResult{Channel: a.channel, Err: a.sender.Send(ctx, text)}
		}(i, a)
	}
	wg.Wait()

	failed := 0
	for _, result := range results {
		if result.Err == nil {
			continue
		}
		failed++
		n.Logger.Error().
			Err(result.Err).
			Str("channel", result.Channel).
			Str("submission", submission.ID).
			Msg("notification delivery failed")
	}

	if failed == len(results) {
		n.recordFailure(ctx, submission, results)
	}

	return results
}

// recordFailure persists one audit document for an all-channels failure.
func (n *Notifier) recordFailure(ctx context.Context, submission domain.Submission, results []ChannelResult) {
	if n.Failures == nil {
		return
	}

	channels := make([]string, 0, len(results))
	for _, result := range results {
		channels = append(channels, result.Channel)
	}

	failure := DeliveryFailure{
		SubmissionID: submission.ID,
		Name:         submission.Name,
		Email:        submission.Email,
		Channels:     channels,
		Reason:       combineErrors(results),
		Attempts:     len(results),
	}

	if err := n.Failures.Record(ctx, failure); err != nil {
		n.Logger.Error().
			Err(err).
			Str("submission", submission.ID).
			Msg("failed to record notification failure")
	}
}

func combineErrors(results []ChannelResult) string {
	parts := make([]string, 0, len(results))
	for _, result := range results {
		if result.Err == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %v", result.Channel, result.Err))
	}
	return strings.Join(parts, "; ")
}

// emailSender adapts the email client to the TextSender shape used by the
// fan-out. The SMTP library manages its own session, so ctx is unused beyond
// an early-cancel check.
type emailSender struct {
	client *email.Client
	to     string
}

func (e *emailSender) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.client.Send(e.to, emailSubject, text)
}
