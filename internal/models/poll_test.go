package models

import (
	"testing"
	"time"
)

func TestNormalizeQuestionType(t *testing.T) {
	testCases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"SingleChoice", QuestionTypeSingleChoice, true},
		{"singlechoice", QuestionTypeSingleChoice, true},
		{"MULTIPLECHOICE", QuestionTypeMultipleChoice, true},
		{" textinput ", QuestionTypeTextInput, true},
		{"rating", QuestionTypeRating, true},
		{"YesNo", QuestionTypeYesNo, true},
		{"Ranking", QuestionTypeRanking, true},
		{"Matrix", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := NormalizeQuestionType(tc.in)
			if ok != tc.wantOK {
				t.Fatalf("Expected ok=%v for %q, got %v", tc.wantOK, tc.in, ok)
			}
			if got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestActiveQuestionsAndChoices(t *testing.T) {
	poll := &Poll{
		Questions: []Question{
			{ID: "q1", IsActive: true, Choices: []Choice{
				{ID: "c1", IsActive: true},
				{ID: "c2", IsActive: false},
			}},
			{ID: "q2", IsActive: false},
		},
	}

	active := poll.ActiveQuestions()
	if len(active) != 1 || active[0].ID != "q1" {
		t.Errorf("Expected only q1 active, got %v", active)
	}

	choices := active[0].ActiveChoices()
	if len(choices) != 1 || choices[0].ID != "c1" {
		t.Errorf("Expected only c1 active, got %v", choices)
	}
}

func TestSanitized(t *testing.T) {
	poll := &Poll{
		ID:         "p1",
		Title:      "Secret poll",
		AccessCode: "ABC",
		CreatedBy:  "user-1",
		StartTime:  time.Now(),
		Questions: []Question{
			{ID: "q1", IsActive: true, Choices: []Choice{
				{ID: "c1", IsActive: true, IsCorrect: true},
				{ID: "c2", IsActive: false},
			}},
			{ID: "q2", IsActive: false},
		},
	}

	view := poll.Sanitized()

	if view.AccessCode != "" || view.CreatedBy != "" {
		t.Errorf("Sanitized view must not expose access code or creator")
	}
	if len(view.Questions) != 1 {
		t.Fatalf("Expected inactive questions stripped, got %d", len(view.Questions))
	}
	if len(view.Questions[0].Choices) != 1 {
		t.Fatalf("Expected inactive choices stripped, got %d", len(view.Questions[0].Choices))
	}
	if view.Questions[0].Choices[0].IsCorrect {
		t.Errorf("Sanitized view must not expose correct flags")
	}

	// Original untouched.
	if poll.AccessCode != "ABC" || len(poll.Questions) != 2 {
		t.Errorf("Sanitizing must not mutate the source poll")
	}
}
