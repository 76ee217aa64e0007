package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"poll-service/internal/cache"
	"poll-service/internal/event"
	"poll-service/internal/models"
	"poll-service/internal/repository"
	"poll-service/internal/validation"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubmissionService runs the submission flow: snapshot load, access and
// timing guard, duplicate/cooldown guard, answer validation, then the
// transactional write of the submission graph plus the analytics
// counter.
type SubmissionService struct {
	Polls       *repository.PollRepository
	Submissions *repository.SubmissionRepository
	Analytics   *repository.AnalyticsRepository
	Cache       *cache.PollCache
	Publisher   *event.EventPublisher
	Client      *mongo.Client
	Now         func() time.Time
}

func NewSubmissionService(
	polls *repository.PollRepository,
	submissions *repository.SubmissionRepository,
	analytics *repository.AnalyticsRepository,
	pollCache *cache.PollCache,
	publisher *event.EventPublisher,
	client *mongo.Client,
) *SubmissionService {
	return &SubmissionService{
		Polls:       polls,
		Submissions: submissions,
		Analytics:   analytics,
		Cache:       pollCache,
		Publisher:   publisher,
		Client:      client,
		Now:         func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates and persists one submission. It returns
// ErrPollNotFound, a *validation.SubmissionError with the aggregated
// rule violations, or the stored submission. UTC now is captured once so
// every timing decision in the request is internally consistent.
func (s *SubmissionService) Submit(ctx context.Context, req *models.SubmitPollRequest) (*models.PollSubmission, error) {
	now := s.Now()

	poll, err := s.Polls.FindByID(ctx, req.PollID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, err
	}

	// Access and timing failures abort before any answer is looked at.
	if guardErr := validation.CheckAccess(poll, req.AccessCode, now); guardErr != nil {
		return nil, guardErr
	}

	// Remaining categories are collected into one aggregate so the
	// caller learns everything wrong in a single round trip.
	var errs []string

	// Anonymous submissions without an email are never deduplicated.
	email := strings.TrimSpace(req.ParticipantEmail)
	if email != "" && (!poll.IsMultipleVotesAllowed || poll.VotingCooldownMinutes > 0) {
		hasPrior, err := s.Submissions.ExistsByPollAndEmail(ctx, poll.ID, email)
		if err != nil {
			return nil, err
		}
		var lastAt *time.Time
		if hasPrior && poll.VotingCooldownMinutes > 0 {
			last, err := s.Submissions.FindLatestByPollAndEmail(ctx, poll.ID, email)
			if err != nil {
				return nil, err
			}
			if last != nil {
				lastAt = &last.SubmittedAt
			}
		}
		errs = append(errs, validation.CheckResubmission(poll, hasPrior, lastAt, now)...)
	}

	errs = append(errs, validation.ValidateAnswers(poll.ActiveQuestions(), req.Answers)...)

	if len(errs) > 0 {
		return nil, &validation.SubmissionError{Errors: errs}
	}

	sub := s.buildSubmission(poll, req, now)
	if err := s.persist(ctx, poll, sub, now); err != nil {
		return nil, err
	}

	// Post-commit side effects are best effort.
	if s.Cache != nil {
		if err := s.Cache.Invalidate(context.Background(), poll.ID); err != nil {
			log.Printf("Failed to invalidate poll cache: %s", err)
		}
	}
	if s.Publisher != nil {
		s.Publisher.Publish("poll.submission.created", map[string]any{
			"poll_id":       poll.ID,
			"submission_id": sub.ID,
			"submitted_at":  sub.SubmittedAt,
		})
	}

	return sub, nil
}

// buildSubmission materializes the submission graph from an already
// validated request. Selected choices keep input order with 1-based
// rank_order; the question type string is snapshotted onto each answer.
func (s *SubmissionService) buildSubmission(poll *models.Poll, req *models.SubmitPollRequest, now time.Time) *models.PollSubmission {
	byQuestion := make(map[string]*models.Question)
	for i := range poll.Questions {
		byQuestion[poll.Questions[i].ID] = &poll.Questions[i]
	}

	sub := &models.PollSubmission{
		ID:               uuid.NewString(),
		PollID:           poll.ID,
		ParticipantEmail: strings.TrimSpace(req.ParticipantEmail),
		ParticipantName:  strings.TrimSpace(req.ParticipantName),
		SubmittedAt:      now,
	}

	for i := range req.Answers {
		in := &req.Answers[i]
		q := byQuestion[in.QuestionID]
		if q == nil {
			continue
		}

		answer := models.PollAnswer{
			ID:             uuid.NewString(),
			QuestionID:     in.QuestionID,
			QuestionType:   q.QuestionType,
			TextAnswer:     strings.TrimSpace(in.TextAnswer),
			SingleChoiceID: in.SingleChoiceID,
		}

		switch q.QuestionType {
		case models.QuestionTypeSingleChoice, models.QuestionTypeRating:
			// Older clients put the choice id in the generic field.
			if answer.SingleChoiceID == "" {
				if parsed, err := uuid.Parse(strings.TrimSpace(in.Answer)); err == nil {
					answer.SingleChoiceID = parsed.String()
				}
			}
		case models.QuestionTypeTextInput:
			if answer.TextAnswer == "" {
				answer.TextAnswer = strings.TrimSpace(in.Answer)
			}
		case models.QuestionTypeYesNo:
			answer.TextAnswer = strings.ToLower(strings.TrimSpace(in.Answer))
		}

		for idx, choiceID := range in.SelectedChoiceIDs {
			answer.SelectedChoices = append(answer.SelectedChoices, models.PollAnswerChoice{
				ChoiceID:  choiceID,
				RankOrder: idx + 1,
			})
		}

		sub.Answers = append(sub.Answers, answer)
	}

	return sub
}

// persist commits the submission, the poll touch and the vote counter in
// one transaction: either the whole graph lands or none of it does.
// Storage failures are not retried here.
func (s *SubmissionService) persist(ctx context.Context, poll *models.Poll, sub *models.PollSubmission, now time.Time) error {
	session, err := s.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := s.Submissions.Create(sc, sub); err != nil {
			return nil, err
		}
		if err := s.Polls.Touch(sc, poll.ID, now); err != nil {
			return nil, err
		}
		if err := s.Analytics.IncrementVotes(sc, poll.ID, now); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// GetSubmission returns one submission to the poll's creator.
func (s *SubmissionService) GetSubmission(ctx context.Context, pollID, submissionID, userID string) (*models.PollSubmission, error) {
	if err := s.requireOwner(ctx, pollID, userID); err != nil {
		return nil, err
	}
	sub, err := s.Submissions.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.PollID != pollID {
		return nil, mongo.ErrNoDocuments
	}
	return sub, nil
}

// ListSubmissions returns a poll's submissions, newest first, to its
// creator.
func (s *SubmissionService) ListSubmissions(ctx context.Context, pollID, userID string) ([]models.PollSubmission, error) {
	if err := s.requireOwner(ctx, pollID, userID); err != nil {
		return nil, err
	}
	return s.Submissions.FindByPoll(ctx, pollID)
}

func (s *SubmissionService) requireOwner(ctx context.Context, pollID, userID string) error {
	poll, err := s.Polls.FindByID(ctx, pollID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrPollNotFound
	}
	if err != nil {
		return err
	}
	if poll.CreatedBy != userID {
		return ErrNotOwner
	}
	return nil
}
