package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUpstreamFetch         = errors.New("upstream fetch failed")
	ErrPostFailed            = errors.New("post message failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
