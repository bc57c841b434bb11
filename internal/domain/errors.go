package domain

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrUpstreamUnavailable = errors.New("question bank unavailable")
	ErrQuestionFetchFailed = errors.New("question fetch failed")
)
