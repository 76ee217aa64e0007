package models

import (
	"strings"
	"time"
)

// Question type enum. Values are wire-compatible with existing clients,
// parsing is case-insensitive.
const (
	QuestionTypeSingleChoice   = "SingleChoice"
	QuestionTypeMultipleChoice = "MultipleChoice"
	QuestionTypeTextInput      = "TextInput"
	QuestionTypeRating         = "Rating"
	QuestionTypeYesNo          = "YesNo"
	QuestionTypeRanking        = "Ranking"
)

var questionTypes = map[string]string{
	"singlechoice":   QuestionTypeSingleChoice,
	"multiplechoice": QuestionTypeMultipleChoice,
	"textinput":      QuestionTypeTextInput,
	"rating":         QuestionTypeRating,
	"yesno":          QuestionTypeYesNo,
	"ranking":        QuestionTypeRanking,
}

// NormalizeQuestionType maps a client-supplied type string to its
// canonical value. ok is false for unknown types.
func NormalizeQuestionType(s string) (string, bool) {
	t, ok := questionTypes[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

type Choice struct {
	ID          string `bson:"id" json:"id"`
	ChoiceText  string `bson:"choice_text" json:"choiceText"`
	ChoiceOrder int    `bson:"choice_order" json:"choiceOrder"`
	IsCorrect   bool   `bson:"is_correct" json:"isCorrect,omitempty"`
	IsActive    bool   `bson:"is_active" json:"isActive"`
}

type Question struct {
	ID            string   `bson:"id" json:"id"`
	QuestionText  string   `bson:"question_text" json:"questionText"`
	QuestionType  string   `bson:"question_type" json:"questionType"`
	IsRequired    bool     `bson:"is_required" json:"isRequired"`
	QuestionOrder int      `bson:"question_order" json:"questionOrder"`
	IsActive      bool     `bson:"is_active" json:"isActive"`
	Choices       []Choice `bson:"choices" json:"choices"`
}

// ActiveChoices returns the choices still selectable by participants.
func (q *Question) ActiveChoices() []Choice {
	var out []Choice
	for _, c := range q.Choices {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

// Poll embeds its questions and choices so a submission validates against
// one consistent snapshot read.
type Poll struct {
	ID                     string     `bson:"_id,omitempty" json:"id"`
	Title                  string     `bson:"title" json:"title"`
	Description            string     `bson:"description" json:"description"`
	StartTime              time.Time  `bson:"start_time" json:"startTime"`
	EndTime                *time.Time `bson:"end_time,omitempty" json:"endTime,omitempty"`
	IsActive               bool       `bson:"is_active" json:"isActive"`
	IsPublic               bool       `bson:"is_public" json:"isPublic"`
	AccessCode             string     `bson:"access_code,omitempty" json:"accessCode,omitempty"`
	IsMultipleVotesAllowed bool       `bson:"is_multiple_votes_allowed" json:"isMultipleVotesAllowed"`
	VotingCooldownMinutes  int        `bson:"voting_cooldown_minutes" json:"votingCooldownMinutes"`
	Questions              []Question `bson:"questions" json:"questions"`
	CreatedBy              string     `bson:"created_by" json:"createdBy,omitempty"`
	CreatedAt              time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt              time.Time  `bson:"updated_at" json:"updatedAt"`
	DeletedAt              *time.Time `bson:"deleted_at,omitempty" json:"-"`
}

// ActiveQuestions returns the questions a submission is validated
// against, in presentation order. Inactive questions are excluded
// entirely: no answer is required or accepted for them.
func (p *Poll) ActiveQuestions() []Question {
	var out []Question
	for _, q := range p.Questions {
		if q.IsActive {
			out = append(out, q)
		}
	}
	return out
}

// Sanitized strips fields participants must not see (access code, correct
// flags, inactive questions and choices) for the public poll view.
func (p *Poll) Sanitized() *Poll {
	out := *p
	out.AccessCode = ""
	out.CreatedBy = ""
	out.Questions = nil
	for _, q := range p.Questions {
		if !q.IsActive {
			continue
		}
		sq := q
		sq.Choices = nil
		for _, c := range q.Choices {
			if !c.IsActive {
				continue
			}
			sc := c
			sc.IsCorrect = false
			sq.Choices = append(sq.Choices, sc)
		}
		out.Questions = append(out.Questions, sq)
	}
	return &out
}
