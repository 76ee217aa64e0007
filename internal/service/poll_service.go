package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"poll-service/internal/cache"
	"poll-service/internal/event"
	"poll-service/internal/models"
	"poll-service/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PollService covers the management surface around the submission core:
// poll CRUD and question/choice maintenance, owner-scoped.
type PollService struct {
	Polls     *repository.PollRepository
	Analytics *repository.AnalyticsRepository
	Cache     *cache.PollCache
	Publisher *event.EventPublisher
	Now       func() time.Time
}

func NewPollService(
	polls *repository.PollRepository,
	analytics *repository.AnalyticsRepository,
	pollCache *cache.PollCache,
	publisher *event.EventPublisher,
) *PollService {
	return &PollService{
		Polls:     polls,
		Analytics: analytics,
		Cache:     pollCache,
		Publisher: publisher,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

// UpdatePollRequest carries the mutable poll fields; nil means leave
// unchanged.
type UpdatePollRequest struct {
	Title                  *string    `json:"title"`
	Description            *string    `json:"description"`
	StartTime              *time.Time `json:"startTime"`
	EndTime                *time.Time `json:"endTime"`
	IsActive               *bool      `json:"isActive"`
	IsPublic               *bool      `json:"isPublic"`
	AccessCode             *string    `json:"accessCode"`
	IsMultipleVotesAllowed *bool      `json:"isMultipleVotesAllowed"`
	VotingCooldownMinutes  *int       `json:"votingCooldownMinutes"`
}

// QuestionPatch carries mutable question fields; deactivation is the
// soft delete.
type QuestionPatch struct {
	QuestionText  *string `json:"questionText"`
	IsRequired    *bool   `json:"isRequired"`
	QuestionOrder *int    `json:"questionOrder"`
	IsActive      *bool   `json:"isActive"`
}

// CreatePoll assigns identities and timestamps to the incoming poll
// graph and stores it. Question types are normalized to their canonical
// values; an unknown type rejects the whole poll.
func (s *PollService) CreatePoll(ctx context.Context, poll *models.Poll, userID string) error {
	now := s.Now()
	poll.ID = uuid.NewString()
	poll.CreatedBy = userID
	poll.CreatedAt = now
	poll.UpdatedAt = now
	poll.DeletedAt = nil
	if poll.StartTime.IsZero() {
		poll.StartTime = now
	}

	for i := range poll.Questions {
		q := &poll.Questions[i]
		qt, ok := models.NormalizeQuestionType(q.QuestionType)
		if !ok {
			return fmt.Errorf("unknown question type %q", q.QuestionType)
		}
		q.QuestionType = qt
		q.ID = uuid.NewString()
		q.IsActive = true
		if q.QuestionOrder == 0 {
			q.QuestionOrder = i + 1
		}
		for j := range q.Choices {
			c := &q.Choices[j]
			c.ID = uuid.NewString()
			c.IsActive = true
			if c.ChoiceOrder == 0 {
				c.ChoiceOrder = j + 1
			}
		}
	}

	if err := s.Polls.Create(ctx, poll); err != nil {
		return err
	}
	s.publish("poll.created", poll.ID)
	return nil
}

func (s *PollService) UpdatePoll(ctx context.Context, pollID, userID string, req *UpdatePollRequest) (*models.Poll, error) {
	poll, err := s.ownedPoll(ctx, pollID, userID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	update := bson.M{"updated_at": now}
	if req.Title != nil {
		update["title"] = *req.Title
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.StartTime != nil {
		update["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		update["end_time"] = *req.EndTime
	}
	if req.IsActive != nil {
		update["is_active"] = *req.IsActive
	}
	if req.IsPublic != nil {
		update["is_public"] = *req.IsPublic
	}
	if req.AccessCode != nil {
		update["access_code"] = *req.AccessCode
	}
	if req.IsMultipleVotesAllowed != nil {
		update["is_multiple_votes_allowed"] = *req.IsMultipleVotesAllowed
	}
	if req.VotingCooldownMinutes != nil {
		update["voting_cooldown_minutes"] = *req.VotingCooldownMinutes
	}

	if err := s.Polls.Update(ctx, poll.ID, update); err != nil {
		return nil, err
	}
	s.invalidate(poll.ID)
	s.publish("poll.updated", poll.ID)
	return s.Polls.FindByID(ctx, poll.ID)
}

// DeletePoll soft-deletes: the poll disappears from every read path but
// its submissions stay intact.
func (s *PollService) DeletePoll(ctx context.Context, pollID, userID string) error {
	poll, err := s.ownedPoll(ctx, pollID, userID)
	if err != nil {
		return err
	}
	if err := s.Polls.SoftDelete(ctx, poll.ID, s.Now()); err != nil {
		return err
	}
	s.invalidate(poll.ID)
	s.publish("poll.deleted", poll.ID)
	return nil
}

func (s *PollService) AddQuestion(ctx context.Context, pollID, userID string, question *models.Question) (*models.Poll, error) {
	poll, err := s.ownedPoll(ctx, pollID, userID)
	if err != nil {
		return nil, err
	}

	qt, ok := models.NormalizeQuestionType(question.QuestionType)
	if !ok {
		return nil, fmt.Errorf("unknown question type %q", question.QuestionType)
	}
	question.QuestionType = qt
	question.ID = uuid.NewString()
	question.IsActive = true
	if question.QuestionOrder == 0 {
		question.QuestionOrder = len(poll.Questions) + 1
	}
	for j := range question.Choices {
		c := &question.Choices[j]
		c.ID = uuid.NewString()
		c.IsActive = true
		if c.ChoiceOrder == 0 {
			c.ChoiceOrder = j + 1
		}
	}

	poll.Questions = append(poll.Questions, *question)
	return s.writeQuestions(ctx, poll)
}

func (s *PollService) UpdateQuestion(ctx context.Context, pollID, questionID, userID string, patch *QuestionPatch) (*models.Poll, error) {
	poll, err := s.ownedPoll(ctx, pollID, userID)
	if err != nil {
		return nil, err
	}

	q := findQuestion(poll, questionID)
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	if patch.QuestionText != nil {
		q.QuestionText = *patch.QuestionText
	}
	if patch.IsRequired != nil {
		q.IsRequired = *patch.IsRequired
	}
	if patch.QuestionOrder != nil {
		q.QuestionOrder = *patch.QuestionOrder
	}
	if patch.IsActive != nil {
		q.IsActive = *patch.IsActive
	}

	return s.writeQuestions(ctx, poll)
}

func (s *PollService) AddChoice(ctx context.Context, pollID, questionID, userID string, choice *models.Choice) (*models.Poll, error) {
	poll, err := s.ownedPoll(ctx, pollID, userID)
	if err != nil {
		return nil, err
	}

	q := findQuestion(poll, questionID)
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	choice.ID = uuid.NewString()
	choice.IsActive = true
	if choice.ChoiceOrder == 0 {
		choice.ChoiceOrder = len(q.Choices) + 1
	}
	q.Choices = append(q.Choices, *choice)

	return s.writeQuestions(ctx, poll)
}

func (s *PollService) DeactivateChoice(ctx context.Context, pollID, questionID, choiceID, userID string) (*models.Poll, error) {
	poll, err := s.ownedPoll(ctx, pollID, userID)
	if err != nil {
		return nil, err
	}

	q := findQuestion(poll, questionID)
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	for i := range q.Choices {
		if q.Choices[i].ID == choiceID {
			q.Choices[i].IsActive = false
			return s.writeQuestions(ctx, poll)
		}
	}
	return nil, fmt.Errorf("choice %s not found", choiceID)
}

// GetPublicPoll serves the sanitized participant view, read-through
// cached, and counts the view.
func (s *PollService) GetPublicPoll(ctx context.Context, pollID string) (*models.Poll, error) {
	now := s.Now()

	if s.Cache != nil {
		if cached := s.Cache.Get(ctx, pollID); cached != nil {
			s.countView(pollID, now)
			return cached, nil
		}
	}

	poll, err := s.Polls.FindByID(ctx, pollID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, err
	}

	view := poll.Sanitized()
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, view); err != nil {
			log.Printf("Failed to cache poll view: %s", err)
		}
	}
	s.countView(pollID, now)
	return view, nil
}

func (s *PollService) GetOwnedPoll(ctx context.Context, pollID, userID string) (*models.Poll, error) {
	return s.ownedPoll(ctx, pollID, userID)
}

func (s *PollService) ListPublicPolls(ctx context.Context) ([]models.Poll, error) {
	polls, err := s.Polls.FindPublic(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Poll, 0, len(polls))
	for i := range polls {
		out = append(out, *polls[i].Sanitized())
	}
	return out, nil
}

// Helper: load a poll and verify the current user created it.
func (s *PollService) ownedPoll(ctx context.Context, pollID, userID string) (*models.Poll, error) {
	poll, err := s.Polls.FindByID(ctx, pollID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, err
	}
	if poll.CreatedBy != userID {
		return nil, ErrNotOwner
	}
	return poll, nil
}

func (s *PollService) writeQuestions(ctx context.Context, poll *models.Poll) (*models.Poll, error) {
	now := s.Now()
	err := s.Polls.Update(ctx, poll.ID, bson.M{"questions": poll.Questions, "updated_at": now})
	if err != nil {
		return nil, err
	}
	poll.UpdatedAt = now
	s.invalidate(poll.ID)
	s.publish("poll.updated", poll.ID)
	return poll, nil
}

func (s *PollService) countView(pollID string, now time.Time) {
	if err := s.Analytics.IncrementViews(context.Background(), pollID, now); err != nil {
		log.Printf("Failed to count poll view: %s", err)
	}
}

func (s *PollService) invalidate(pollID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(context.Background(), pollID); err != nil {
		log.Printf("Failed to invalidate poll cache: %s", err)
	}
}

func (s *PollService) publish(eventType, pollID string) {
	if s.Publisher == nil {
		return
	}
	s.Publisher.Publish(eventType, map[string]any{"poll_id": pollID})
}

func findQuestion(poll *models.Poll, questionID string) *models.Question {
	for i := range poll.Questions {
		if poll.Questions[i].ID == questionID {
			return &poll.Questions[i]
		}
	}
	return nil
}
