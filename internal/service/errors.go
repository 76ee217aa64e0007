package service

import "errors"

var (
	ErrPollNotFound     = errors.New("poll not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrNotOwner         = errors.New("only the poll creator can do this")
)
