package service

import (
	"testing"
	"time"

	"poll-service/internal/models"
)

const (
	rankChoiceA = "5f3a1f1e-0000-4000-8000-000000000001"
	rankChoiceB = "5f3a1f1e-0000-4000-8000-000000000002"
	rankChoiceC = "5f3a1f1e-0000-4000-8000-000000000003"
)

func submissionPoll() *models.Poll {
	return &models.Poll{
		ID: "poll-1",
		Questions: []models.Question{
			{
				ID:           "q-rank",
				QuestionType: models.QuestionTypeRanking,
				IsActive:     true,
				Choices: []models.Choice{
					{ID: rankChoiceA, IsActive: true},
					{ID: rankChoiceB, IsActive: true},
					{ID: rankChoiceC, IsActive: true},
				},
			},
			{
				ID:           "q-single",
				QuestionType: models.QuestionTypeSingleChoice,
				IsActive:     true,
				Choices:      []models.Choice{{ID: rankChoiceA, IsActive: true}},
			},
			{
				ID:           "q-text",
				QuestionType: models.QuestionTypeTextInput,
				IsActive:     true,
			},
			{
				ID:           "q-yesno",
				QuestionType: models.QuestionTypeYesNo,
				IsActive:     true,
			},
		},
	}
}

func TestBuildSubmissionRankOrder(t *testing.T) {
	s := &SubmissionService{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	req := &models.SubmitPollRequest{
		PollID:           "poll-1",
		ParticipantEmail: "voter@example.com",
		Answers: []models.AnswerInput{
			{QuestionID: "q-rank", SelectedChoiceIDs: []string{rankChoiceC, rankChoiceA, rankChoiceB}},
		},
	}

	sub := s.buildSubmission(submissionPoll(), req, now)

	if sub.ID == "" {
		t.Error("Expected a fresh submission id")
	}
	if !sub.SubmittedAt.Equal(now) {
		t.Errorf("Expected submitted_at %v, got %v", now, sub.SubmittedAt)
	}
	if sub.ParticipantEmail != "voter@example.com" {
		t.Errorf("Expected participant email preserved, got %q", sub.ParticipantEmail)
	}
	if len(sub.Answers) != 1 {
		t.Fatalf("Expected 1 answer, got %d", len(sub.Answers))
	}

	answer := sub.Answers[0]
	if answer.QuestionType != models.QuestionTypeRanking {
		t.Errorf("Expected question type snapshot, got %q", answer.QuestionType)
	}

	// Input order becomes 1-based rank order.
	wantOrder := []string{rankChoiceC, rankChoiceA, rankChoiceB}
	if len(answer.SelectedChoices) != 3 {
		t.Fatalf("Expected 3 selected choices, got %d", len(answer.SelectedChoices))
	}
	for i, sc := range answer.SelectedChoices {
		if sc.ChoiceID != wantOrder[i] {
			t.Errorf("Position %d: expected choice %s, got %s", i, wantOrder[i], sc.ChoiceID)
		}
		if sc.RankOrder != i+1 {
			t.Errorf("Position %d: expected rank %d, got %d", i, i+1, sc.RankOrder)
		}
	}
}

func TestBuildSubmissionLegacyCoercion(t *testing.T) {
	s := &SubmissionService{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	req := &models.SubmitPollRequest{
		PollID: "poll-1",
		Answers: []models.AnswerInput{
			{QuestionID: "q-single", Answer: rankChoiceA},
			{QuestionID: "q-text", Answer: "free text"},
			{QuestionID: "q-yesno", Answer: " YES "},
		},
	}

	sub := s.buildSubmission(submissionPoll(), req, now)
	if len(sub.Answers) != 3 {
		t.Fatalf("Expected 3 answers, got %d", len(sub.Answers))
	}

	if sub.Answers[0].SingleChoiceID != rankChoiceA {
		t.Errorf("Expected generic field coerced to single choice id, got %q", sub.Answers[0].SingleChoiceID)
	}
	if sub.Answers[1].TextAnswer != "free text" {
		t.Errorf("Expected generic field stored as text answer, got %q", sub.Answers[1].TextAnswer)
	}
	if sub.Answers[2].TextAnswer != "yes" {
		t.Errorf("Expected yes/no normalized to lowercase, got %q", sub.Answers[2].TextAnswer)
	}
}

func TestBuildSubmissionDistinctAnswerIDs(t *testing.T) {
	s := &SubmissionService{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	req := &models.SubmitPollRequest{
		PollID: "poll-1",
		Answers: []models.AnswerInput{
			{QuestionID: "q-text", TextAnswer: "one"},
			{QuestionID: "q-yesno", Answer: "no"},
		},
	}

	sub := s.buildSubmission(submissionPoll(), req, now)
	if len(sub.Answers) != 2 {
		t.Fatalf("Expected 2 answers, got %d", len(sub.Answers))
	}
	if sub.Answers[0].ID == "" || sub.Answers[0].ID == sub.Answers[1].ID {
		t.Errorf("Expected distinct answer ids, got %q and %q", sub.Answers[0].ID, sub.Answers[1].ID)
	}
}
