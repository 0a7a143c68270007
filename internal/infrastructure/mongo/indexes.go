package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmissionRetention is how long a submission document is kept before the
// storage layer expires it.
const SubmissionRetention = 90 * 24 * time.Hour

const (
	submissionTTLIndexName       = "ttl_submission_createdAt"
	failedNotificationsIndexName = "idx_failed_status_created"
)

// EnsureIndexes creates the named indexes this service relies on, skipping
// any that already exist so repeated or concurrent startups stay idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database, submissionCollection, failedNotificationCollection string) error {
	if err := ensureIndex(ctx, db.Collection(submissionCollection), mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().
			SetName(submissionTTLIndexName).
			SetExpireAfterSeconds(int32(SubmissionRetention / time.Second)),
	}, submissionTTLIndexName); err != nil {
		return fmt.Errorf("ensure submission TTL index: %w", err)
	}

	if err := ensureIndex(ctx, db.Collection(failedNotificationCollection), mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName(failedNotificationsIndexName),
	}, failedNotificationsIndexName); err != nil {
		return fmt.Errorf("ensure failed-notification index: %w", err)
	}

	return nil
}

func ensureIndex(ctx context.Context, collection *mongo.Collection, model mongo.IndexModel, name string) error {
	names, err := listIndexNames(ctx, collection)
	if err != nil {
		return err
	}
	if hasIndexNamed(names, name) {
		return nil
	}

	_, err = collection.Indexes().CreateOne(ctx, model)
	return err
}

func listIndexNames(ctx context.Context, collection *mongo.Collection) ([]string, error) {
	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	names := make([]string, 0, 4)
	for cursor.Next(ctx) {
		var spec struct {
			Name string `bson:"name"`
		}
		if err := cursor.Decode(&spec); err != nil {
			return nil, err
		}
		names = append(names, spec.Name)
	}
	return names, cursor.Err()
}

func hasIndexNamed(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
