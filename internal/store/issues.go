package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dev-ahmed/issue-reporter/internal/issue"
)

const issuesCollection = "issues"

// IssueStore appends submissions to the issues collection. Records are
// write-once; nothing in this service updates or deletes them.
type IssueStore struct {
	col *mongo.Collection
	now func() time.Time
}

func NewIssueStore(db *mongo.Database) *IssueStore {
	return &IssueStore{
		col: db.Collection(issuesCollection),
		now: time.Now,
	}
}

// Append writes one submission and returns its assigned id. CreatedAt and
// Status are set here, not by the caller.
func (s *IssueStore) Append(ctx context.Context, sub issue.Submission) (string, error) {
	sub.CreatedAt = s.now().UTC()
	sub.Status = issue.StatusOpen

	res, err := s.col.InsertOne(ctx, sub)
	if err != nil {
		return "", errors.Join(ErrWriteFailed, err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", ErrWriteFailed
	}
	return id.Hex(), nil
}
