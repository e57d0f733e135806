// Package httpapi holds the JSON-over-HTTP plumbing shared by the GotHub and
// Firebase adapters.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/gothub-kernel/internal/domain"
)

const (
	MaxResponseBytes      = 1 << 20
	defaultRequestTimeout = 10 * time.Second
)

// Requester sends JSON requests with a per-request timeout.
type Requester struct {
	Client  *http.Client
	Timeout time.Duration
}

func (r Requester) HTTPClient() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return http.DefaultClient
}

// RequestContext bounds ctx by the per-request timeout unless the caller
// already set a deadline.
func (r Requester) RequestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// DoJSON sends body as JSON and decodes a 2xx JSON response into out. A nil
// body sends no payload; a nil out discards the response.
func (r Requester) DoJSON(ctx context.Context, method, endpoint string, header http.Header, body any, out any) error {
	requestCtx, cancel := r.RequestContext(ctx)
	defer cancel()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.HTTPClient().Do(req)
	if err != nil {
		return TransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := StatusError(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxResponseBytes)).Decode(out); err != nil {
		if IsTimeout(err) {
			return TransportError(err)
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// TransportError marks timeouts with domain.ErrTimeout.
func TransportError(err error) error {
	if IsTimeout(err) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return err
}

func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// ResponseError is a non-2xx response. 401 and 403 unwrap to
// domain.ErrAuthRejected.
type ResponseError struct {
	StatusCode int
	Detail     string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Detail)
}

func (e *ResponseError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrAuthRejected
	default:
		return nil
	}
}

// StatusError returns a *ResponseError for any non-2xx response.
func StatusError(resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	return &ResponseError{StatusCode: resp.StatusCode, Detail: errorDetail(resp)}
}

// HasStatus reports whether err carries a response with the given status.
func HasStatus(err error, code int) bool {
	var respErr *ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == code
}

func errorDetail(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return http.StatusText(resp.StatusCode)
	}

	var payload struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil && len(payload.Error) > 0 {
		var structured struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(payload.Error, &structured) == nil && structured.Message != "" {
			return structured.Message
		}
		var text string
		if json.Unmarshal(payload.Error, &text) == nil && text != "" {
			return text
		}
	}
	return strings.TrimSpace(string(data))
}

// BuildURL resolves path below baseURL, keeping any base path.
func BuildURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", fmt.Errorf("api base url is required: %w", domain.ErrConfigMissing)
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	endpoint, err := parsed.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
