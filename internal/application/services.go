package application

import (
	"context"
	"fmt"
	"time"

	"github.com/arabianlink/contact-api/internal/domain"
)

// SubmissionRepository is the persistence port for contact submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *domain.Submission) error
	FindRecent(ctx context.Context, paging Paging) ([]domain.Submission, error)
}

// Paging controls pagination of submission listings.
type Paging struct {
	Limit int
}

// SubmitSubmissionCommand captures one inbound contact-form payload after
// transport-level validation.
type SubmitSubmissionCommand struct {
	Name    string
	Email   string
	Phone   string
	Company *string
	Service string
	Message string
	Urgency string
}

// SubmissionCommandService handles the submission write use-case.
type SubmissionCommandService interface {
	Submit(ctx context.Context, cmd SubmitSubmissionCommand) (*domain.Submission, error)
}

// SubmissionQueryService provides operator-facing reads.
type SubmissionQueryService interface {
	ListRecent(ctx context.Context, paging Paging) ([]domain.Submission, error)
}

// NewSubmissionCommandService creates the command service bound to repo.
func NewSubmissionCommandService(repo SubmissionRepository) SubmissionCommandService {
	return &submissionCommandService{repo: repo}
}

type submissionCommandService struct {
	repo SubmissionRepository
}

// Submit stamps the creation time in UTC and persists the record. The
// timestamp is always server-assigned; whatever the transport received is
// never trusted for it.
func (s *submissionCommandService) Submit(ctx context.Context, cmd SubmitSubmissionCommand) (*domain.Submission, error) {
	submission := &domain.Submission{
		Name:      cmd.Name,
		Email:     cmd.Email,
		Phone:     cmd.Phone,
		Company:   cmd.Company,
		Service:   cmd.Service,
		Message:   cmd.Message,
		Urgency:   cmd.Urgency,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	return submission, nil
}

// NewSubmissionQueryService creates the query service bound to repo.
func NewSubmissionQueryService(repo SubmissionRepository) SubmissionQueryService {
	return &submissionQueryService{repo: repo}
}

type submissionQueryService struct {
	repo SubmissionRepository
}

func (s *submissionQueryService) ListRecent(ctx context.Context, paging Paging) ([]domain.Submission, error) {
	return s.repo.FindRecent(ctx, paging)
}
