package extract

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNetError struct {
	timeout bool
}

func (e *fakeNetError) Error() string   { return "fake net error" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return false }

var _ net.Error = (*fakeNetError)(nil)

func TestClassifyCollaborator(t *testing.T) {
	t.Parallel()

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, classifyCollaborator("llm", nil))
	})

	t.Run("deadline exceeded is a timeout", func(t *testing.T) {
		t.Parallel()
		err := classifyCollaborator("llm", fmt.Errorf("request: %w", context.DeadlineExceeded))
		var timeout *CollaboratorTimeoutError
		require.ErrorAs(t, err, &timeout)
		assert.Equal(t, "llm", timeout.Collaborator)
	})

	t.Run("net timeout is a timeout", func(t *testing.T) {
		t.Parallel()
		err := classifyCollaborator("llm", &fakeNetError{timeout: true})
		var timeout *CollaboratorTimeoutError
		require.ErrorAs(t, err, &timeout)
	})

	t.Run("connection refused is unavailable", func(t *testing.T) {
		t.Parallel()
		err := classifyCollaborator("llm", fmt.Errorf("dial: %w", syscall.ECONNREFUSED))
		var unavailable *CollaboratorUnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, "llm", unavailable.Collaborator)
	})

	t.Run("string heuristics catch wrapped transport failures", func(t *testing.T) {
		t.Parallel()
		for _, msg := range []string{
			"Post \"https://api.example.com\": dial tcp: lookup api.example.com: no such host",
			"read tcp 10.0.0.1:443: connection reset by peer",
			"net/http: TLS handshake timeout",
		} {
			err := classifyCollaborator("llm", errors.New(msg))
			var unavailable *CollaboratorUnavailableError
			require.ErrorAs(t, err, &unavailable, msg)
		}
	})

	t.Run("unrecognized errors stay uncategorized", func(t *testing.T) {
		t.Parallel()
		err := classifyCollaborator("llm", errors.New("api error: overloaded"))
		require.Error(t, err)
		var timeout *CollaboratorTimeoutError
		var unavailable *CollaboratorUnavailableError
		assert.False(t, errors.As(err, &timeout))
		assert.False(t, errors.As(err, &unavailable))
	})
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("root cause")
	for name, err := range map[string]error{
		"malformed":   &MalformedResponseError{Err: cause},
		"schema":      &SchemaError{Err: cause},
		"incomplete":  &IncompleteExtractionError{Err: cause},
		"timeout":     &CollaboratorTimeoutError{Collaborator: "llm", Err: cause},
		"unavailable": &CollaboratorUnavailableError{Collaborator: "llm", Err: cause},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, err, cause)
			assert.Contains(t, err.Error(), "root cause")
		})
	}
}

func TestClassifyCollaboratorRealDialTimeout(t *testing.T) {
	t.Parallel()

	// Dial a reserved, unroutable address with a tiny timeout.
	d := net.Dialer{Timeout: time.Millisecond}
	_, err := d.Dial("tcp", "192.0.2.1:81")
	if err == nil {
		t.Skip("unexpectedly connected")
	}

	classified := classifyCollaborator("docgen", err)
	var timeout *CollaboratorTimeoutError
	var unavailable *CollaboratorUnavailableError
	assert.True(t,
		errors.As(classified, &timeout) || errors.As(classified, &unavailable),
		"dial failure must classify as timeout or unavailable, got %v", classified)
}
