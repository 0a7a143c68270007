package public

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arabianlink/contact-api/internal/application"
	"github.com/arabianlink/contact-api/internal/domain"
	"github.com/arabianlink/contact-api/internal/interfaces/http/common"
)

// maxContactRequestBody caps the accepted payload size. A contact form never
// legitimately approaches this.
const maxContactRequestBody = 64 * 1024

type createContactRequest struct {
	Name    string  `json:"name" validate:"required"`
	Email   string  `json:"email" validate:"required"`
	Phone   string  `json:"phone" validate:"required"`
	Company *string `json:"company"`
	Service string  `json:"service" validate:"required"`
	Message string  `json:"message" validate:"required"`
	Urgency string  `json:"urgency" validate:"required"`
}

func (h *Handler) contactCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req createContactRequest
		decoder := json.NewDecoder(io.LimitReader(r.Body, maxContactRequestBody))
		if err := decoder.Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, map[string]string{
				"error": fmt.Sprintf("invalid request body: %v", err),
			})
			return
		}

		if err := h.validate.Struct(req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusUnprocessableEntity, map[string]string{
				"error": fmt.Sprintf("validation error: %v", err),
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		submission, err := h.commands.Submit(ctx, application.SubmitSubmissionCommand{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Company: req.Company,
			Service: req.Service,
			Message: req.Message,
			Urgency: req.Urgency,
		})
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to store contact submission")
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{
				"error": "failed to store submission",
			})
			return
		}

		h.dispatchNotifications(*submission)

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{
			"message": "Form submitted successfully",
		})
	}
}

// dispatchNotifications fans the stored submission out off the request path.
// The detached context keeps a client disconnect from cancelling deliveries,
// and a slow channel cannot extend the client-visible latency.
func (h *Handler) dispatchNotifications(submission domain.Submission) {
	if h.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.notifyTimeout)
		defer cancel()
		h.notifier.Notify(ctx, submission)
	}()
}
