package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/gothub-kernel/internal/domain"
)

func TestBuildURLKeepsBasePath(t *testing.T) {
	t.Parallel()

	endpoint, err := BuildURL("https://gothub.example.com/api", "/whoami")
	require.NoError(t, err)
	assert.Equal(t, "https://gothub.example.com/api/whoami", endpoint)

	_, err = BuildURL("", "whoami")
	require.ErrorIs(t, err, domain.ErrConfigMissing)

	_, err = BuildURL("ftp://gothub.example.com", "whoami")
	require.Error(t, err)
}

func TestDoJSONDecodesBodyAndSetsHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		_, _ = w.Write([]byte(`{"value":42}`))
	}))
	t.Cleanup(server.Close)

	var out struct {
		Value int `json:"value"`
	}
	header := http.Header{}
	header.Set("X-Test", "yes")

	err := Requester{Client: server.Client()}.DoJSON(context.Background(), http.MethodPost, server.URL, header, map[string]string{"a": "b"}, &out)
	require.NoError(t, err)
	assert.Equal(t, 42, out.Value)
}

func TestDoJSONMapsStatusAndTimeout(t *testing.T) {
	t.Parallel()

	forbidden := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"PERMISSION_DENIED"}}`))
	}))
	t.Cleanup(forbidden.Close)

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	t.Cleanup(slow.Close)

	err := Requester{Client: forbidden.Client()}.DoJSON(context.Background(), http.MethodGet, forbidden.URL, nil, nil, nil)
	require.ErrorIs(t, err, domain.ErrAuthRejected)
	assert.ErrorContains(t, err, "PERMISSION_DENIED")

	err = Requester{Client: slow.Client(), Timeout: 20 * time.Millisecond}.DoJSON(context.Background(), http.MethodGet, slow.URL, nil, nil, nil)
	require.ErrorIs(t, err, domain.ErrTimeout)
}

func TestRequestContextKeepsCallerDeadline(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	ctx, release := Requester{Timeout: time.Millisecond}.RequestContext(parent)
	defer release()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.Greater(t, time.Until(deadline), time.Minute)
}
