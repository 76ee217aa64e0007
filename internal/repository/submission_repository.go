package repository

import (
	"context"
	"errors"

	"poll-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubmissionRepository struct {
	Col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{Col: db.Collection("submissions")}
}

// Create persists the whole submission graph in one insert; the embedded
// answers and selected choices commit or fail with it.
func (r *SubmissionRepository) Create(ctx context.Context, sub *models.PollSubmission) error {
	_, err := r.Col.InsertOne(ctx, sub)
	return err
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*models.PollSubmission, error) {
	var sub models.PollSubmission
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubmissionRepository) ExistsByPollAndEmail(ctx context.Context, pollID, email string) (bool, error) {
	count, err := r.Col.CountDocuments(ctx, bson.M{"poll_id": pollID, "participant_email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindLatestByPollAndEmail returns the most recent prior submission for
// the participant, or nil if there is none.
func (r *SubmissionRepository) FindLatestByPollAndEmail(ctx context.Context, pollID, email string) (*models.PollSubmission, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	var sub models.PollSubmission
	err := r.Col.FindOne(ctx, bson.M{"poll_id": pollID, "participant_email": email}, opts).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubmissionRepository) FindByPoll(ctx context.Context, pollID string) ([]models.PollSubmission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"poll_id": pollID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var subs []models.PollSubmission
	for cur.Next(ctx) {
		var s models.PollSubmission
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, nil
}

// TallyChoices counts how often each choice was selected across all
// submissions to a poll, keyed by question id then choice id. Single
// selections and multi/ranking selections are counted together.
func (r *SubmissionRepository) TallyChoices(ctx context.Context, pollID string) (map[string]map[string]int64, error) {
	tally := make(map[string]map[string]int64)

	add := func(questionID, choiceID string, count int64) {
		if choiceID == "" {
			return
		}
		if tally[questionID] == nil {
			tally[questionID] = make(map[string]int64)
		}
		tally[questionID][choiceID] += count
	}

	singles := []bson.M{
		{"$match": bson.M{"poll_id": pollID}},
		{"$unwind": "$answers"},
		{"$match": bson.M{"answers.single_choice_id": bson.M{"$nin": bson.A{nil, ""}}}},
		{"$group": bson.M{
			"_id":   bson.M{"q": "$answers.question_id", "c": "$answers.single_choice_id"},
			"count": bson.M{"$sum": 1},
		}},
	}
	if err := r.collectTally(ctx, singles, add); err != nil {
		return nil, err
	}

	multi := []bson.M{
		{"$match": bson.M{"poll_id": pollID}},
		{"$unwind": "$answers"},
		{"$unwind": "$answers.selected_choices"},
		{"$group": bson.M{
			"_id":   bson.M{"q": "$answers.question_id", "c": "$answers.selected_choices.choice_id"},
			"count": bson.M{"$sum": 1},
		}},
	}
	if err := r.collectTally(ctx, multi, add); err != nil {
		return nil, err
	}

	return tally, nil
}

func (r *SubmissionRepository) collectTally(ctx context.Context, pipeline []bson.M, add func(questionID, choiceID string, count int64)) error {
	cur, err := r.Col.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			ID struct {
				Q string `bson:"q"`
				C string `bson:"c"`
			} `bson:"_id"`
			Count int64 `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return err
		}
		add(row.ID.Q, row.ID.C, row.Count)
	}
	return cur.Err()
}
