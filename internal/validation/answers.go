package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"poll-service/internal/models"
)

// ValidateAnswers runs the two validation passes over the active
// question set and returns every violation found. An empty result means
// the answer set is acceptable.
//
// Pass 1 checks that every required active question has a non-empty
// answer. Pass 2 validates each submitted answer against its question's
// type-specific rules. Both passes contribute to the same list.
func ValidateAnswers(questions []models.Question, answers []models.AnswerInput) []string {
	var errs []string

	byQuestion := make(map[string]*models.Question, len(questions))
	for i := range questions {
		byQuestion[questions[i].ID] = &questions[i]
	}

	// Pass 1: required coverage.
	for i := range questions {
		q := &questions[i]
		if !q.IsRequired {
			continue
		}
		answered := false
		for j := range answers {
			if answers[j].QuestionID == q.ID && !isEmptyAnswer(&answers[j]) {
				answered = true
				break
			}
		}
		if !answered {
			errs = append(errs, fmt.Sprintf("an answer is required for question '%s'", q.QuestionText))
		}
	}

	// Pass 2: per-answer, per-type rules.
	for i := range answers {
		a := &answers[i]
		q, ok := byQuestion[a.QuestionID]
		if !ok {
			errs = append(errs, fmt.Sprintf("question %s not found", a.QuestionID))
			continue
		}
		errs = append(errs, validateAnswer(q, a)...)
	}

	return errs
}

func validateAnswer(q *models.Question, a *models.AnswerInput) []string {
	switch q.QuestionType {
	case models.QuestionTypeSingleChoice, models.QuestionTypeRating:
		return validateSingleSelection(q, a)
	case models.QuestionTypeMultipleChoice:
		return validateMultiSelection(q, a, false)
	case models.QuestionTypeRanking:
		return validateMultiSelection(q, a, true)
	case models.QuestionTypeTextInput:
		return validateText(q, a)
	case models.QuestionTypeYesNo:
		return validateYesNo(q, a)
	default:
		return []string{fmt.Sprintf("unknown question type for question '%s'", q.QuestionText)}
	}
}

// validateSingleSelection covers SingleChoice and Rating. The choice id
// comes from the typed field or, for older clients, from the generic
// answer field as a uuid string.
func validateSingleSelection(q *models.Question, a *models.AnswerInput) []string {
	noun := "option"
	if q.QuestionType == models.QuestionTypeRating {
		noun = "rating"
	}

	choiceID := a.SingleChoiceID
	if choiceID == "" && strings.TrimSpace(a.Answer) != "" {
		parsed, err := uuid.Parse(strings.TrimSpace(a.Answer))
		if err != nil {
			return []string{fmt.Sprintf("invalid answer format for question '%s'", q.QuestionText)}
		}
		choiceID = parsed.String()
	}
	if choiceID == "" {
		if noun == "rating" {
			return []string{fmt.Sprintf("please select a rating for question '%s'", q.QuestionText)}
		}
		return []string{fmt.Sprintf("please select an option for question '%s'", q.QuestionText)}
	}

	if !hasActiveChoice(q, choiceID) {
		return []string{fmt.Sprintf("invalid %s selected for question '%s'", noun, q.QuestionText)}
	}
	return nil
}

func validateMultiSelection(q *models.Question, a *models.AnswerInput, ranking bool) []string {
	verb := "select"
	if ranking {
		verb = "rank"
	}
	if len(a.SelectedChoiceIDs) == 0 {
		return []string{fmt.Sprintf("please %s at least one option for question '%s'", verb, q.QuestionText)}
	}

	var errs []string
	for _, id := range a.SelectedChoiceIDs {
		if !hasActiveChoice(q, id) {
			errs = append(errs, fmt.Sprintf("invalid choice(s) selected for question '%s'", q.QuestionText))
			break
		}
	}

	if ranking {
		// Every active choice must be ranked exactly once.
		if len(a.SelectedChoiceIDs) != len(q.ActiveChoices()) {
			errs = append(errs, fmt.Sprintf("please rank all options for question '%s'", q.QuestionText))
		}
		seen := make(map[string]bool, len(a.SelectedChoiceIDs))
		for _, id := range a.SelectedChoiceIDs {
			if seen[id] {
				errs = append(errs, fmt.Sprintf("each option can only be ranked once for question '%s'", q.QuestionText))
				break
			}
			seen[id] = true
		}
	}

	return errs
}

func validateText(q *models.Question, a *models.AnswerInput) []string {
	text := a.TextAnswer
	if strings.TrimSpace(text) == "" {
		text = a.Answer
	}
	if strings.TrimSpace(text) == "" {
		return []string{fmt.Sprintf("please provide an answer for question '%s'", q.QuestionText)}
	}
	return nil
}

func validateYesNo(q *models.Question, a *models.AnswerInput) []string {
	v := strings.ToLower(strings.TrimSpace(a.Answer))
	if v != "yes" && v != "no" {
		return []string{fmt.Sprintf("please select yes or no for question '%s'", q.QuestionText)}
	}
	return nil
}

// isEmptyAnswer is the uniform emptiness rule used by the required-
// coverage pass: nothing typed, nothing selected in any of the fields,
// including the legacy generic one.
func isEmptyAnswer(a *models.AnswerInput) bool {
	return strings.TrimSpace(a.TextAnswer) == "" &&
		strings.TrimSpace(a.Answer) == "" &&
		a.SingleChoiceID == "" &&
		len(a.SelectedChoiceIDs) == 0
}

func hasActiveChoice(q *models.Question, choiceID string) bool {
	for i := range q.Choices {
		if q.Choices[i].IsActive && q.Choices[i].ID == choiceID {
			return true
		}
	}
	return false
}
