package firebase

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/gothub-kernel/internal/domain"
)

func newRealtime(t *testing.T, body string) *Realtime {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chats/abc.json", r.URL.Path)
		assert.Equal(t, "id-token", r.URL.Query().Get("auth"))
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	return &Realtime{DatabaseURL: server.URL, IDToken: "id-token", HTTPClient: server.Client()}
}

func TestRealtimeSubscribeDeliversPutAndPatch(t *testing.T) {
	t.Parallel()

	subscriber := newRealtime(t, strings.Join([]string{
		"event: put",
		`data: {"path":"/","data":{"status":"queued"}}`,
		"",
		"event: keep-alive",
		"data: null",
		"",
		"event: patch",
		`data: {"path":"/reply","data":"done"}`,
		"",
	}, "\n"))

	var events []domain.RealtimeEvent
	err := subscriber.Subscribe(context.Background(), "/chats/abc", func(event domain.RealtimeEvent) error {
		events = append(events, event)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.RealtimeEvent{
		{Type: "put", Path: "/", Data: `{"status":"queued"}`},
		{Type: "patch", Path: "/reply", Data: `"done"`},
	}, events)
}

func TestRealtimeSubscribeCancel(t *testing.T) {
	t.Parallel()

	subscriber := newRealtime(t, "event: cancel\ndata: permission denied\n\n")

	err := subscriber.Subscribe(context.Background(), "chats/abc", func(domain.RealtimeEvent) error {
		t.Fatal("handler must not run")
		return nil
	})
	require.ErrorIs(t, err, domain.ErrAuthRejected)
	assert.ErrorContains(t, err, "permission denied")
}

func TestRealtimeSubscribeStopsOnHandlerError(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	subscriber := newRealtime(t, "event: put\ndata: {\"path\":\"/\",\"data\":1}\n\nevent: put\ndata: {\"path\":\"/\",\"data\":2}\n\n")

	calls := 0
	err := subscriber.Subscribe(context.Background(), "chats/abc", func(domain.RealtimeEvent) error {
		calls++
		return stop
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestEventReaderJoinsMultilineData(t *testing.T) {
	t.Parallel()

	reader := newEventReader(strings.NewReader("event: put\r\ndata: a\r\ndata: b\r\n\r\n: comment\n"))

	typ, data, err := reader.next()
	require.NoError(t, err)
	assert.Equal(t, "put", typ)
	assert.Equal(t, "a\nb", string(data))

	_, _, err = reader.next()
	require.ErrorIs(t, err, io.EOF)
}
