package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned for a blank stock name before any network call.
var ErrInvalidInput = errors.New("invalid input: stock name is empty")

// FetchError reports a transport failure or a non-success status from the
// search endpoint.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ClassificationError reports that the sentiment classifier could not be
// loaded or failed on a headline.
type ClassificationError struct {
	Headline Headline
	Err      error
}

func (e *ClassificationError) Error() string {
	if e.Headline == "" {
		return fmt.Sprintf("classify: %v", e.Err)
	}
	return fmt.Sprintf("classify %q: %v", string(e.Headline), e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}
