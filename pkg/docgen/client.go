// Package docgen provides a client for the external LOI document-generation
// service.
package docgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/dealdesk/loi-parser/internal/model"
)

// Client defines the document service operations.
type Client interface {
	// Generate submits a validated LOI record and returns the service's JSON
	// response body verbatim.
	Generate(ctx context.Context, loi *model.LOIFields) (json.RawMessage, error)
	// Health checks service liveness.
	Health(ctx context.Context) error
}

// StatusError is returned when the document service answers with a non-200
// status. Body is truncated for safe inclusion in error messages.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("docgen: status %d: %s", e.Code, e.Body)
}

// IsTimeout reports whether err is a request timeout (deadline exceeded or
// a network-level timeout), as opposed to a connection failure.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Option configures the docgen client.
type Option func(*httpClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout for Generate calls.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a document service client. There is no retry logic:
// a failed call is surfaced once and retrying is left to the caller.
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

const maxErrorBody = 200

func (c *httpClient) Generate(ctx context.Context, loi *model.LOIFields) (json.RawMessage, error) {
	payload, err := json.Marshal(loi)
	if err != nil {
		return nil, eris.Wrap(err, "docgen: marshal loi")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "docgen: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "docgen: generate request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "docgen: read response body")
	}

	if resp.StatusCode != http.StatusOK {
		truncated := string(body)
		if len(truncated) > maxErrorBody {
			truncated = truncated[:maxErrorBody]
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: truncated}
	}

	return json.RawMessage(body), nil
}

func (c *httpClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return eris.Wrap(err, "docgen: create health request")
	}

	// The request context carries its own deadline; the client-level timeout
	// would cut the long wake-ping short.
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return eris.Wrap(err, "docgen: health request")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Body: ""}
	}
	return nil
}
