package public

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/arabianlink/contact-api/internal/application"
	"github.com/arabianlink/contact-api/internal/domain"
	"github.com/arabianlink/contact-api/internal/notify"
)

// SubmissionNotifier dispatches the side-channel fan-out for one stored
// submission.
type SubmissionNotifier interface {
	Notify(ctx context.Context, submission domain.Submission) []notify.ChannelResult
}

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger        zerolog.Logger
	commands      application.SubmissionCommandService
	notifier      SubmissionNotifier
	notifyTimeout time.Duration
	validate      *validator.Validate
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger        zerolog.Logger
	Commands      application.SubmissionCommandService
	Notifier      SubmissionNotifier
	NotifyTimeout time.Duration
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	notifyTimeout := cfg.NotifyTimeout
	if notifyTimeout <= 0 {
		notifyTimeout = 15 * time.Second
	}
	return &Handler{
		logger:        cfg.Logger,
		commands:      cfg.Commands,
		notifier:      cfg.Notifier,
		notifyTimeout: notifyTimeout,
		validate:      validator.New(),
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/contact", h.contactCreateHandler())
}
