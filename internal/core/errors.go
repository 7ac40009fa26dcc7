package core

import (
	"errors"

	"github.com/vovakirdan/doodle-lobby/internal/lobby"
)

// Error codes produced outside the lobby domain.
const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeRateLimited = "rate_limited"
	ErrCodeInternal    = "internal"
)

// ErrHubStopped is returned by queries made after the hub stopped running.
var ErrHubStopped = errors.New("hub stopped")

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

// toCoreError keeps the code and text of lobby errors.
func toCoreError(err error) *CoreError {
	var lerr *lobby.Error
	if errors.As(err, &lerr) {
		return coreError(lerr.Code, lerr.Message)
	}
	return coreError(ErrCodeInternal, "Something went wrong.")
}
