package validation

import "strings"

// SubmissionError aggregates every rule violation found for one
// submission attempt. Problems inside one category are collected, never
// short-circuited, so the caller gets the complete list in one round
// trip. AccessDenied marks that an access-code failure is among them,
// which the transport layer maps to 403 instead of 400.
type SubmissionError struct {
	Errors       []string
	AccessDenied bool
}

func (e *SubmissionError) Error() string {
	return strings.Join(e.Errors, "; ")
}
