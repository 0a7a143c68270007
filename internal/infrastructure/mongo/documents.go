package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionDocument is the MongoDB schema for one contact submission.
// Company intentionally has no omitempty so an absent company is stored as
// an explicit null, which is what the persisted record layout expects.
type SubmissionDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Company   *string            `bson:"company"`
	Service   string             `bson:"service"`
	Message   string             `bson:"message"`
	Urgency   string             `bson:"urgency"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// FailedNotificationDocument records a submission whose notification fan-out
// failed on every configured channel. This is an audit trail; nothing in the
// process consumes it.
type FailedNotificationDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Target       string             `bson:"target"`
	SubmissionID string             `bson:"submissionId"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Channels     []string           `bson:"channels"`
	Error        string             `bson:"error"`
	Attempts     int                `bson:"attempts"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"createdAt"`
}
