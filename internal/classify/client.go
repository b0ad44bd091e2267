// Package classify talks to the LLM-backed classification service. It sends
// a statement document plus the chart of accounts text and parses the
// returned transaction categorizations. A single request is made per call;
// failed attempts surface immediately with no retry, since re-running a
// classification is costly and nondeterministic.
package classify

import (
	"context"
	"errors"
	"fmt"

	"github.com/jacobcrotty/bankcat/internal/model"
)

// Client defines the interface to the classification service.
type Client interface {
	Classify(ctx context.Context, req Request) ([]model.TransactionRecord, error)
}

// Request carries one statement document and its classification context.
type Request struct {
	MediaType       string
	ChartOfAccounts string
	Document        []byte
}

// Validate checks the request preconditions. Media-type validation proper is
// the caller's job; this only rejects obviously unusable input.
func (r Request) Validate() error {
	if len(r.Document) == 0 {
		return fmt.Errorf("document is empty")
	}
	if r.MediaType == "" {
		return fmt.Errorf("media type is required")
	}
	if r.ChartOfAccounts == "" {
		return fmt.Errorf("chart of accounts is required")
	}
	return nil
}

// ErrorKind distinguishes the ways a classification call can fail.
type ErrorKind string

// Classification failure kinds.
const (
	// KindUnreachable is a transport or connectivity failure.
	KindUnreachable ErrorKind = "unreachable"
	// KindServiceError is a non-success status from the service.
	KindServiceError ErrorKind = "service_error"
	// KindMalformedResponse is a payload that does not match the expected
	// transaction schema.
	KindMalformedResponse ErrorKind = "malformed_response"
)

// Error is a failed classification attempt.
type Error struct {
	Err     error
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("classification failed (%s): %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("classification failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("classification failed (%s)", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the classification error kind of err, or "" if err is not
// a classification error.
func KindOf(err error) ErrorKind {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return ""
}
