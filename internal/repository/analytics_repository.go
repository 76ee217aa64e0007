package repository

import (
	"context"
	"errors"
	"time"

	"poll-service/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AnalyticsRepository struct {
	Col *mongo.Collection
}

func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepository {
	return &AnalyticsRepository{Col: db.Collection("analytics")}
}

// FindByPoll returns the analytics row for a poll, or nil if no view or
// submission has created it yet.
func (r *AnalyticsRepository) FindByPoll(ctx context.Context, pollID string) (*models.PollAnalytics, error) {
	var a models.PollAnalytics
	err := r.Col.FindOne(ctx, bson.M{"poll_id": pollID}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// IncrementVotes bumps total_votes with an atomic upsert. Concurrent
// submitters both land; there is no read-modify-write window.
func (r *AnalyticsRepository) IncrementVotes(ctx context.Context, pollID string, now time.Time) error {
	return r.increment(ctx, pollID, "total_votes", now)
}

// IncrementViews bumps total_views the same way, from the public poll
// fetch path.
func (r *AnalyticsRepository) IncrementViews(ctx context.Context, pollID string, now time.Time) error {
	return r.increment(ctx, pollID, "total_views", now)
}

func (r *AnalyticsRepository) increment(ctx context.Context, pollID, counter string, now time.Time) error {
	_, err := r.Col.UpdateOne(ctx,
		bson.M{"poll_id": pollID},
		bson.M{
			"$inc":         bson.M{counter: 1},
			"$set":         bson.M{"last_updated": now},
			"$setOnInsert": bson.M{"_id": uuid.NewString()},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
