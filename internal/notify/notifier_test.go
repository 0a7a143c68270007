package notify

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arabianlink/contact-api/internal/domain"
)

type fakeSender struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeSender) Send(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	return f.err
}

func (f *fakeSender) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeFailureStore struct {
	mu       sync.Mutex
	failures []DeliveryFailure
}

func (f *fakeFailureStore) Record(_ context.Context, failure DeliveryFailure) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, failure)
	return nil
}

func testSubmission() domain.Submission {
	return domain.Submission{
		ID:      "65f000000000000000000001",
		Name:    "A",
		Email:   "a@x.com",
		Phone:   "1",
		Service: "s",
		Message: "hi",
		Urgency: "low",
	}
}

func TestRenderMessage(t *testing.T) {
	text := RenderMessage(testSubmission())
	assert.Equal(t, "New contact form submission:\nName: A\nEmail: a@x.com\nMessage: hi", text)
}

func TestNotify_OnlyConfiguredChannelAttempted(t *testing.T) {
	slack := &fakeSender{}
	n := &Notifier{Logger: zerolog.Nop(), Slack: slack}

	results := n.Notify(context.Background(), testSubmission())

	require.Len(t, results, 1)
	assert.Equal(t, ChannelSlack, results[0].Channel)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, 1, slack.callCount())
}

func TestNotify_NoChannelsConfigured(t *testing.T) {
	n := &Notifier{Logger: zerolog.Nop()}
	assert.Nil(t, n.Notify(context.Background(), testSubmission()))
}

func TestNotify_FailureDoesNotBlockOtherChannels(t *testing.T) {
	slack := &fakeSender{err: errors.New("webhook down")}
	telegram := &fakeSender{}
	email := &fakeSender{}
	n := &Notifier{Logger: zerolog.Nop(), Slack: slack, Telegram: telegram, Email: email}

	results := n.Notify(context.Background(), testSubmission())

	require.Len(t, results, 3)
	assert.Equal(t, 1, slack.callCount())
	assert.Equal(t, 1, telegram.callCount())
	assert.Equal(t, 1, email.callCount())

	byChannel := map[string]error{}
	for _, result := range results {
		byChannel[result.Channel] = result.Err
	}
	assert.Error(t, byChannel[ChannelSlack])
	assert.NoError(t, byChannel[ChannelTelegram])
	assert.NoError(t, byChannel[ChannelEmail])
}

func TestNotify_AllChannelsFailedRecordsFailure(t *testing.T) {
	store := &fakeFailureStore{}
	n := &Notifier{
		Logger:   zerolog.Nop(),
		Slack:    &fakeSender{err: errors.New("slack down")},
		Telegram: &fakeSender{err: errors.New("telegram down")},
		Failures: store,
	}

	n.Notify(context.Background(), testSubmission())

	require.Len(t, store.failures, 1)
	failure := store.failures[0]
	assert.Equal(t, "65f000000000000000000001", failure.SubmissionID)
	assert.ElementsMatch(t, []string{ChannelSlack, ChannelTelegram}, failure.Channels)
	assert.Equal(t, 2, failure.Attempts)
	assert.Contains(t, failure.Reason, "slack down")
	assert.Contains(t, failure.Reason, "telegram down")
}

func TestNotify_PartialFailureNotRecorded(t *testing.T) {
	store := &fakeFailureStore{}
	n := &Notifier{
		Logger:   zerolog.Nop(),
		Slack:    &fakeSender{err: errors.New("slack down")},
		Telegram: &fakeSender{},
		Failures: store,
	}

	n.Notify(context.Background(), testSubmission())

	assert.Empty(t, store.failures)
}

func TestFromConfig_ChannelGating(t *testing.T) {
	httpClient := &http.Client{}

	tests := []struct {
		name     string
		cfg      Config
		slack    bool
		telegram bool
		email    bool
	}{
		{
			name:  "secure slack url enables webhook channel",
			cfg:   Config{SlackWebhookURL: "https://hooks.example/abc"},
			slack: true,
		},
		{
			name: "insecure slack url is rejected",
			cfg:  Config{SlackWebhookURL: "http://hooks.example/abc"},
		},
		{
			name: "telegram requires token and chat id",
			cfg:  Config{TelegramBotToken: "token"},
		},
		{
			name:     "telegram fully configured",
			cfg:      Config{TelegramBotToken: "token", TelegramChatID: "42"},
			telegram: true,
		},
		{
			name: "email requires every setting",
			cfg: Config{
				SMTPServer:   "smtp.example",
				SMTPPort:     587,
				SMTPUser:     "ops@example.com",
				SMTPPassword: "secret",
			},
		},
		{
			name: "email fully configured",
			cfg: Config{
				SMTPServer:     "smtp.example",
				SMTPPort:       587,
				SMTPUser:       "ops@example.com",
				SMTPPassword:   "secret",
				RecipientEmail: "team@example.com",
			},
			email: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := FromConfig(tt.cfg, zerolog.Nop(), httpClient, nil)
			assert.Equal(t, tt.slack, n.Slack != nil, "slack")
			assert.Equal(t, tt.telegram, n.Telegram != nil, "telegram")
			assert.Equal(t, tt.email, n.Email != nil, "email")
		})
	}
}
