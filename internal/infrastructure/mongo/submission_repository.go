package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arabianlink/contact-api/internal/application"
	"github.com/arabianlink/contact-api/internal/domain"
)

const defaultListLimit = 50

// SubmissionRepository persists contact submissions in MongoDB.
type SubmissionRepository struct {
	submissions *mongo.Collection
}

// NewSubmissionRepository binds the repository to the submissions collection.
func NewSubmissionRepository(db *mongo.Database, collection string) *SubmissionRepository {
	return &SubmissionRepository{submissions: db.Collection(collection)}
}

// Create inserts the submission and writes the assigned id back onto the
// domain model. Submissions are insert-only; there is no update path.
func (r *SubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	doc := SubmissionDocument{
		ID:        primitive.NewObjectID(),
		Name:      submission.Name,
		Email:     submission.Email,
		Phone:     submission.Phone,
		Company:   submission.Company,
		Service:   submission.Service,
		Message:   submission.Message,
		Urgency:   submission.Urgency,
		CreatedAt: submission.CreatedAt,
	}

	if _, err := r.submissions.InsertOne(ctx, doc); err != nil {
		return err
	}

	submission.ID = doc.ID.Hex()
	return nil
}

// FindRecent returns submissions newest first, capped at the paging limit.
func (r *SubmissionRepository) FindRecent(ctx context.Context, paging application.Paging) ([]domain.Submission, error) {
	limit := paging.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.submissions.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	submissions := make([]domain.Submission, 0, limit)
	for cursor.Next(ctx) {
		var doc SubmissionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		submissions = append(submissions, mapSubmissionDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return submissions, nil
}

func mapSubmissionDocument(doc SubmissionDocument) domain.Submission {
	return domain.Submission{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Email:     doc.Email,
		Phone:     doc.Phone,
		Company:   doc.Company,
		Service:   doc.Service,
		Message:   doc.Message,
		Urgency:   doc.Urgency,
		CreatedAt: doc.CreatedAt,
	}
}
