package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arabianlink/contact-api/internal/domain"
)

type fakeRepo struct {
	created *domain.Submission
	err     error
}

func (f *fakeRepo) Create(_ context.Context, submission *domain.Submission) error {
	if f.err != nil {
		return f.err
	}
	submission.ID = "65f000000000000000000001"
	f.created = submission
	return nil
}

func (f *fakeRepo) FindRecent(context.Context, Paging) ([]domain.Submission, error) {
	return nil, nil
}

func TestSubmit_StampsCreatedAtUTC(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewSubmissionCommandService(repo)

	before := time.Now().UTC()
	submission, err := svc.Submit(context.Background(), SubmitSubmissionCommand{
		Name:    "A",
		Email:   "a@x.com",
		Phone:   "1",
		Service: "s",
		Message: "hi",
		Urgency: "low",
	})
	after := time.Now().UTC()

	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, time.UTC, submission.CreatedAt.Location())
	assert.False(t, submission.CreatedAt.Before(before))
	assert.False(t, submission.CreatedAt.After(after))
	assert.Equal(t, "65f000000000000000000001", submission.ID)
}

func TestSubmit_RepositoryErrorIsWrapped(t *testing.T) {
	repoErr := errors.New("insert failed")
	svc := NewSubmissionCommandService(&fakeRepo{err: repoErr})

	submission, err := svc.Submit(context.Background(), SubmitSubmissionCommand{Name: "A"})

	assert.Nil(t, submission)
	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr)
}

func TestSubmit_CompanyPassedThrough(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewSubmissionCommandService(repo)

	company := "ACME"
	submission, err := svc.Submit(context.Background(), SubmitSubmissionCommand{
		Name:    "A",
		Company: &company,
	})

	require.NoError(t, err)
	require.NotNil(t, submission.Company)
	assert.Equal(t, "ACME", *submission.Company)
}
