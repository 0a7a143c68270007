package admin

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/arabianlink/contact-api/internal/application"
)

// Handler wires operator-facing HTTP endpoints to application services.
type Handler struct {
	logger  zerolog.Logger
	queries application.SubmissionQueryService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger  zerolog.Logger
	Queries application.SubmissionQueryService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:  cfg.Logger,
		queries: cfg.Queries,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/submissions", h.submissionListHandler())
}
