package repository

import (
	"context"
	"time"

	"poll-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PollRepository struct {
	Col *mongo.Collection
}

func NewPollRepository(db *mongo.Database) *PollRepository {
	return &PollRepository{Col: db.Collection("polls")}
}

// FindByID loads the poll together with its embedded questions and
// choices in one consistent read. Soft-deleted polls are not found.
func (r *PollRepository) FindByID(ctx context.Context, id string) (*models.Poll, error) {
	var poll models.Poll
	err := r.Col.FindOne(ctx, bson.M{"_id": id, "deleted_at": nil}).Decode(&poll)
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

func (r *PollRepository) FindPublic(ctx context.Context) ([]models.Poll, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"is_public": true, "is_active": true, "deleted_at": nil}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var polls []models.Poll
	for cur.Next(ctx) {
		var p models.Poll
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		polls = append(polls, p)
	}
	return polls, nil
}

func (r *PollRepository) Create(ctx context.Context, poll *models.Poll) error {
	_, err := r.Col.InsertOne(ctx, poll)
	return err
}

func (r *PollRepository) Update(ctx context.Context, id string, update bson.M) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

// Touch stamps the poll's updated_at; joined into the submission
// transaction so a committed submission always moves the poll's clock.
func (r *PollRepository) Touch(ctx context.Context, id string, now time.Time) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"updated_at": now}})
	return err
}

func (r *PollRepository) SoftDelete(ctx context.Context, id string, now time.Time) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"deleted_at": now,
		"is_active":  false,
		"updated_at": now,
	}})
	return err
}
