package extract

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
)

// MalformedResponseError indicates the LLM returned text that is not valid
// JSON (or not a recognizable envelope). Never retried automatically.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return "llm response is not valid JSON: " + e.Err.Error()
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SchemaError indicates the LLM returned syntactically valid JSON that does
// not satisfy the LOI schema (plain extraction path).
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return "llm response violates loi schema: " + e.Err.Error()
}

func (e *SchemaError) Unwrap() error { return e.Err }

// IncompleteExtractionError indicates the LLM produced valid JSON but the
// extracted loi_data is missing required fields. Callers should prompt the
// user for a richer transcript.
type IncompleteExtractionError struct {
	Err error
}

func (e *IncompleteExtractionError) Error() string {
	return "extracted data is incomplete, provide a more detailed transcript with party names and property address: " + e.Err.Error()
}

func (e *IncompleteExtractionError) Unwrap() error { return e.Err }

// CollaboratorTimeoutError indicates a collaborator did not answer within
// the deadline.
type CollaboratorTimeoutError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorTimeoutError) Error() string {
	return e.Collaborator + " timed out: " + e.Err.Error()
}

func (e *CollaboratorTimeoutError) Unwrap() error { return e.Err }

// CollaboratorUnavailableError indicates a collaborator could not be
// reached at the network level.
type CollaboratorUnavailableError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorUnavailableError) Error() string {
	return e.Collaborator + " unavailable: " + e.Err.Error()
}

func (e *CollaboratorUnavailableError) Unwrap() error { return e.Err }

// classifyCollaborator maps a transport-level error from a collaborator
// call to the timeout/unavailable taxonomy. Errors that match neither
// pattern are wrapped and surfaced as uncategorized failures.
func classifyCollaborator(name string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &CollaboratorTimeoutError{Collaborator: name, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &CollaboratorTimeoutError{Collaborator: name, Err: err}
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return &CollaboratorUnavailableError{Collaborator: name, Err: err}
	}

	// String-based heuristics for wrapped errors from HTTP clients.
	msg := strings.ToLower(err.Error())
	unreachablePatterns := []string{
		"connection reset by peer",
		"connection refused",
		"broken pipe",
		"temporary failure in name resolution",
		"no such host",
		"network is unreachable",
		"tls handshake timeout",
		"server closed idle connection",
		"transport connection broken",
	}
	for _, p := range unreachablePatterns {
		if strings.Contains(msg, p) {
			return &CollaboratorUnavailableError{Collaborator: name, Err: err}
		}
	}

	return eris.Wrap(err, "extract: "+name+" request")
}
