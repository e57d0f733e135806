package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/gothub-kernel/internal/domain"
	"github.com/bnema/gothub-kernel/internal/ports/mocks"
)

func TestDiagnosticsStreamsRealtimeEvents(t *testing.T) {
	channel := mocks.NewMockDiagnosticChannel(t)
	realtime := mocks.NewMockRealtimeSubscriber(t)
	out := &recordingOutput{}

	channel.EXPECT().PostChat(mockAnyContext(), "user-1", []domain.Message{domain.NewMessage(domain.RoleUser, "super king debug")}).
		Return("chats/abc", nil)
	realtime.EXPECT().Subscribe(mockAnyContext(), "chats/abc", mock.Anything).
		RunAndReturn(func(ctx context.Context, path string, handle func(domain.RealtimeEvent) error) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			require.NoError(t, handle(domain.RealtimeEvent{Type: "put", Path: "/", Data: `{"status":"queued"}`}))
			return context.DeadlineExceeded
		})

	err := NewDiagnostics(channel, realtime, time.Second, nil).Run(context.Background(), domain.Session{UserID: "user-1"}, out)
	require.NoError(t, err)

	require.Len(t, out.displays, 1)
	assert.Equal(t, `<iframe src="https://wikipedia.com/"></iframe>`, out.displays[0][domain.MIMEHTML])
	assert.Equal(t, "chats/abc\nput / {\"status\":\"queued\"}\n", out.stdout())
}

func TestDiagnosticsSurfacesSubscribeFailure(t *testing.T) {
	channel := mocks.NewMockDiagnosticChannel(t)
	realtime := mocks.NewMockRealtimeSubscriber(t)
	denied := errors.Join(errors.New("cancelled"), domain.ErrAuthRejected)

	channel.EXPECT().PostChat(mockAnyContext(), "user-1", mock.Anything).Return("chats/abc", nil)
	realtime.EXPECT().Subscribe(mockAnyContext(), "chats/abc", mock.Anything).Return(denied)

	err := NewDiagnostics(channel, realtime, time.Second, nil).Run(context.Background(), domain.Session{UserID: "user-1"}, &recordingOutput{})
	require.ErrorIs(t, err, domain.ErrAuthRejected)
}

func TestDiagnosticsWithoutChannelOnlyDisplaysFrame(t *testing.T) {
	var diagnostics *Diagnostics
	out := &recordingOutput{}

	require.NoError(t, diagnostics.Run(context.Background(), domain.Session{}, out))
	assert.Len(t, out.displays, 1)
	assert.Empty(t, out.streams)
}
