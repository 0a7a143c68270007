package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arabianlink/contact-api/internal/application"
	"github.com/arabianlink/contact-api/internal/domain"
)

type stubQueryService struct {
	submissions []domain.Submission
	err         error
	gotPaging   application.Paging
}

func (s *stubQueryService) ListRecent(_ context.Context, paging application.Paging) ([]domain.Submission, error) {
	s.gotPaging = paging
	return s.submissions, s.err
}

func newTestRouter(queries application.SubmissionQueryService) *chi.Mux {
	handler := NewHandler(Config{Logger: zerolog.Nop(), Queries: queries})
	router := chi.NewRouter()
	router.Route("/admin", handler.Register)
	return router
}

func TestSubmissionList_ReturnsItems(t *testing.T) {
	company := "ACME"
	queries := &stubQueryService{
		submissions: []domain.Submission{
			{
				ID:        "65f000000000000000000001",
				Name:      "A",
				Email:     "a@x.com",
				Phone:     "1",
				Company:   &company,
				Service:   "s",
				Message:   "hi",
				Urgency:   "low",
				CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			},
		},
	}
	router := newTestRouter(queries)

	req := httptest.NewRequest(http.MethodGet, "/admin/submissions", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response submissionListResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.Items, 1)
	assert.Equal(t, "A", response.Items[0].Name)
	assert.Equal(t, "2026-03-01T12:00:00Z", response.Items[0].CreatedAt)
	require.NotNil(t, response.Items[0].Company)
	assert.Equal(t, "ACME", *response.Items[0].Company)
	assert.Equal(t, defaultSubmissionLimit, queries.gotPaging.Limit)
}

func TestSubmissionList_LimitClamped(t *testing.T) {
	queries := &stubQueryService{}
	router := newTestRouter(queries)

	req := httptest.NewRequest(http.MethodGet, "/admin/submissions?limit=500", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, maxSubmissionLimit, queries.gotPaging.Limit)
}

func TestSubmissionList_QueryFailure(t *testing.T) {
	queries := &stubQueryService{err: errors.New("find failed")}
	router := newTestRouter(queries)

	req := httptest.NewRequest(http.MethodGet, "/admin/submissions", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
