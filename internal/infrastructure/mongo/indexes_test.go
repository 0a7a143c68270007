package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasIndexNamed(t *testing.T) {
	names := []string{"_id_", "ttl_submission_createdAt"}

	assert.True(t, hasIndexNamed(names, "ttl_submission_createdAt"))
	assert.False(t, hasIndexNamed(names, "idx_failed_status_created"))
	assert.False(t, hasIndexNamed(nil, "ttl_submission_createdAt"))
}

func TestSubmissionRetention(t *testing.T) {
	assert.Equal(t, float64(90), SubmissionRetention.Hours()/24)
}
