package service

import (
	"context"
	"errors"

	"poll-service/internal/models"
	"poll-service/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

type AnalyticsService struct {
	Polls       *repository.PollRepository
	Submissions *repository.SubmissionRepository
	Analytics   *repository.AnalyticsRepository
}

func NewAnalyticsService(
	polls *repository.PollRepository,
	submissions *repository.SubmissionRepository,
	analytics *repository.AnalyticsRepository,
) *AnalyticsService {
	return &AnalyticsService{Polls: polls, Submissions: submissions, Analytics: analytics}
}

// Summary assembles the per-poll analytics view for the poll's creator:
// the rolling counters plus a per-question choice tally. Completion rate
// is derived from the counters at read time.
func (s *AnalyticsService) Summary(ctx context.Context, pollID, userID string) (*models.AnalyticsSummary, error) {
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

	summary := &models.AnalyticsSummary{PollID: pollID}

	row, err := s.Analytics.FindByPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if row != nil {
		summary.TotalViews = row.TotalViews
		summary.TotalVotes = row.TotalVotes
		summary.LastUpdated = row.LastUpdated
		if row.TotalViews > 0 {
			summary.CompletionRate = float64(row.TotalVotes) / float64(row.TotalViews) * 100
		}
	}

	tally, err := s.Submissions.TallyChoices(ctx, pollID)
	if err != nil {
		return nil, err
	}

	for _, q := range poll.Questions {
		qt := models.QuestionTally{QuestionID: q.ID, QuestionText: q.QuestionText}
		for _, c := range q.Choices {
			qt.Choices = append(qt.Choices, models.ChoiceTally{
				ChoiceID:   c.ID,
				ChoiceText: c.ChoiceText,
				Count:      tally[q.ID][c.ID],
			})
		}
		summary.Questions = append(summary.Questions, qt)
	}

	return summary, nil
}
