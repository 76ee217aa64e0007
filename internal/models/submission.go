package models

import "time"

// PollAnswerChoice is one selected choice inside an answer. RankOrder is
// the 1-based position the participant gave it; meaningful for Ranking
// questions, incidental otherwise.
type PollAnswerChoice struct {
	ChoiceID  string `bson:"choice_id" json:"choiceId"`
	RankOrder int    `bson:"rank_order" json:"rankOrder"`
}

type PollAnswer struct {
	ID              string             `bson:"id" json:"id"`
	QuestionID      string             `bson:"question_id" json:"questionId"`
	QuestionType    string             `bson:"question_type" json:"questionType"`
	TextAnswer      string             `bson:"text_answer,omitempty" json:"textAnswer,omitempty"`
	SingleChoiceID  string             `bson:"single_choice_id,omitempty" json:"singleChoiceId,omitempty"`
	SelectedChoices []PollAnswerChoice `bson:"selected_choices,omitempty" json:"selectedChoices,omitempty"`
}

// PollSubmission embeds its answers so the whole graph is written in one
// insert. Never mutated after creation.
type PollSubmission struct {
	ID               string       `bson:"_id,omitempty" json:"id"`
	PollID           string       `bson:"poll_id" json:"pollId"`
	ParticipantEmail string       `bson:"participant_email,omitempty" json:"participantEmail,omitempty"`
	ParticipantName  string       `bson:"participant_name,omitempty" json:"participantName,omitempty"`
	SubmittedAt      time.Time    `bson:"submitted_at" json:"submittedAt"`
	Answers          []PollAnswer `bson:"answers" json:"answers"`
}

// AnswerInput is one answer as submitted over the wire. Answer is the
// legacy generic field older clients send instead of the typed ones.
type AnswerInput struct {
	QuestionID        string   `json:"questionId" binding:"required"`
	QuestionType      string   `json:"questionType"`
	Answer            string   `json:"answer"`
	SelectedChoiceIDs []string `json:"selectedChoiceIds"`
	TextAnswer        string   `json:"textAnswer"`
	SingleChoiceID    string   `json:"singleChoiceId"`
}

type SubmitPollRequest struct {
	PollID           string        `json:"pollId" binding:"required"`
	AccessCode       string        `json:"accessCode"`
	ParticipantEmail string        `json:"participantEmail"`
	ParticipantName  string        `json:"participantName"`
	Answers          []AnswerInput `json:"answers"`
}

type SubmitPollResponse struct {
	IsSuccessful     bool       `json:"isSuccessful"`
	Message          string     `json:"message"`
	SubmissionID     string     `json:"submissionId,omitempty"`
	SubmittedAt      *time.Time `json:"submittedAt,omitempty"`
	ValidationErrors []string   `json:"validationErrors"`
}
