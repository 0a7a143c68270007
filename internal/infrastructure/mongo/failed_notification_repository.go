package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arabianlink/contact-api/internal/notify"
)

// FailedNotificationRepository stores the audit records for notification
// fan-outs that failed on every configured channel.
type FailedNotificationRepository struct {
	failures *mongo.Collection
}

// NewFailedNotificationRepository binds the repository to its collection.
func NewFailedNotificationRepository(db *mongo.Database, collection string) *FailedNotificationRepository {
	return &FailedNotificationRepository{failures: db.Collection(collection)}
}

// Record inserts one audit document for the failed delivery.
func (r *FailedNotificationRepository) Record(ctx context.Context, failure notify.DeliveryFailure) error {
	doc := FailedNotificationDocument{
		ID:           primitive.NewObjectID(),
		Target:       "contact_notification",
		SubmissionID: failure.SubmissionID,
		Name:         failure.Name,
		Email:        failure.Email,
		Channels:     append([]string(nil), failure.Channels...),
		Error:        failure.Reason,
		Attempts:     failure.Attempts,
		Status:       "unresolved",
		CreatedAt:    time.Now().UTC(),
	}

	_, err := r.failures.InsertOne(ctx, doc)
	return err
}
