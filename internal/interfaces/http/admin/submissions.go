package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/arabianlink/contact-api/internal/application"
	"github.com/arabianlink/contact-api/internal/domain"
	"github.com/arabianlink/contact-api/internal/interfaces/http/common"
)

const (
	defaultSubmissionLimit = 20
	maxSubmissionLimit     = 100
)

type submissionResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Company   *string `json:"company"`
	Service   string  `json:"service"`
	Message   string  `json:"message"`
	Urgency   string  `json:"urgency"`
	CreatedAt string  `json:"createdAt"`
}

type submissionListResponse struct {
	Items []submissionResponse `json:"items"`
}

func (h *Handler) submissionListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := common.ParsePositiveInt(r.URL.Query().Get("limit"), defaultSubmissionLimit)
		if limit > maxSubmissionLimit {
			limit = maxSubmissionLimit
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		submissions, err := h.queries.ListRecent(ctx, application.Paging{Limit: limit})
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to list submissions")
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{
				"error": "failed to list submissions",
			})
			return
		}

		items := make([]submissionResponse, 0, len(submissions))
		for _, submission := range submissions {
			items = append(items, submissionDomainToResponse(submission))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, submissionListResponse{Items: items})
	}
}

func submissionDomainToResponse(submission domain.Submission) submissionResponse {
	return submissionResponse{
		ID:        submission.ID,
		Name:      submission.Name,
		Email:     submission.Email,
		Phone:     submission.Phone,
		Company:   submission.Company,
		Service:   submission.Service,
		Message:   submission.Message,
		Urgency:   submission.Urgency,
		CreatedAt: submission.CreatedAt.Format(time.RFC3339),
	}
}
