package upstream

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenMissing       = errors.New("token not found in the response")
)

// FetchError marks a failed read of one upstream resource. Reads fail
// independently; callers set their own error indicator per resource.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %v -> %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SubmissionError marks a rejected or failed write. Message holds the
// server-provided message when the response body carried one.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("failed to save: %v", e.Message)
	}

	return fmt.Sprintf("network error occurred -> %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
