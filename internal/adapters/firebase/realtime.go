package firebase

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bnema/gothub-kernel/internal/adapters/httpapi"
	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports"
)

const (
	eventPut         = "put"
	eventPatch       = "patch"
	eventKeepAlive   = "keep-alive"
	eventCancel      = "cancel"
	eventAuthRevoked = "auth_revoked"
)

// Realtime streams changes under a Realtime Database path as server-sent
// events. Subscribe blocks until ctx ends, the server closes the stream, or
// handle returns an error.
type Realtime struct {
	DatabaseURL string
	IDToken     string
	HTTPClient  *http.Client
}

var _ ports.RealtimeSubscriber = (*Realtime)(nil)

type realtimePayload struct {
	Path string          `json:"path"`
	Data json.RawMessage `json:"data"`
}

func (r *Realtime) Subscribe(ctx context.Context, path string, handle func(domain.RealtimeEvent) error) error {
	endpoint, err := r.endpoint(path)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	client := r.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return httpapi.TransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := httpapi.StatusError(resp); err != nil {
		return fmt.Errorf("subscribe %s: %w", path, err)
	}

	reader := newEventReader(resp.Body)
	for {
		typ, data, err := reader.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read event stream: %w", err)
		}

		switch typ {
		case eventKeepAlive:
			continue
		case eventCancel:
			return fmt.Errorf("subscription to %s cancelled: %s: %w", path, data, domain.ErrAuthRejected)
		case eventAuthRevoked:
			return fmt.Errorf("subscription to %s: credential revoked: %w", path, domain.ErrAuthRejected)
		}

		event := domain.RealtimeEvent{Type: typ, Data: string(data)}
		if typ == eventPut || typ == eventPatch {
			var payload realtimePayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return fmt.Errorf("decode %s event: %w", typ, err)
			}
			event.Path = payload.Path
			event.Data = string(payload.Data)
		}
		if err := handle(event); err != nil {
			return err
		}
	}
}

func (r *Realtime) endpoint(path string) (string, error) {
	if r.IDToken == "" {
		return "", fmt.Errorf("realtime id token: %w", domain.ErrCredentialMissing)
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return "", errors.New("realtime path is required")
	}

	endpoint, err := httpapi.BuildURL(r.DatabaseURL, path+".json")
	if err != nil {
		return "", err
	}
	return endpoint + "?auth=" + url.QueryEscape(r.IDToken), nil
}

// eventReader splits a text/event-stream body into (event, data) pairs.
type eventReader struct {
	reader *bufio.Reader
}

func newEventReader(r io.Reader) *eventReader {
	return &eventReader{reader: bufio.NewReader(r)}
}

func (e *eventReader) next() (string, []byte, error) {
	var typ string
	var data [][]byte

	for {
		line, err := e.reader.ReadBytes('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && (typ != "" || len(data) > 0) {
				return typ, bytes.Join(data, []byte("\n")), nil
			}
			return "", nil, err
		}

		line = bytes.TrimRight(line, "\r\n")
		if len(line) == 0 {
			if typ != "" || len(data) > 0 {
				return typ, bytes.Join(data, []byte("\n")), nil
			}
			continue
		}

		switch {
		case bytes.HasPrefix(line, []byte("event:")):
			typ = string(bytes.TrimSpace(line[len("event:"):]))
		case bytes.HasPrefix(line, []byte("data:")):
			data = append(data, bytes.TrimSpace(line[len("data:"):]))
		}
	}
}
