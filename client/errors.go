package client

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed provider lookup.
type ErrorKind string

const (
	// KindNetwork covers transport failures, timeouts and non-2xx statuses.
	KindNetwork ErrorKind = "network_error"
	// KindProvider means the provider answered but reported a failure or
	// returned something unusable.
	KindProvider ErrorKind = "provider_error"
	// KindNotFound means the provider has no record for the identifier.
	KindNotFound ErrorKind = "not_found"
)

// FetchError is returned by every client lookup. Message is safe to return
// to API callers; it never contains the request URL or API key.
type FetchError struct {
	Kind     ErrorKind
	Provider string
	Message  string
	Err      error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is a FetchError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}

func networkError(provider string, err error) *FetchError {
	return &FetchError{
		Kind:     KindNetwork,
		Provider: provider,
		Message:  fmt.Sprintf("Network error: %v", err),
		Err:      err,
	}
}

func providerError(provider, message string, err error) *FetchError {
	return &FetchError{
		Kind:     KindProvider,
		Provider: provider,
		Message:  message,
		Err:      err,
	}
}

func notFoundError(provider, message string) *FetchError {
	return &FetchError{
		Kind:     KindNotFound,
		Provider: provider,
		Message:  message,
	}
}
