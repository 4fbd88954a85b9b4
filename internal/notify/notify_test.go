package notify

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/graffic/quotie/internal/nudge"
	"github.com/graffic/quotie/internal/storage"
	"github.com/graffic/quotie/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, title, body string) error {
	args := m.Called(ctx, title, body)
	return args.Error(0)
}

func newCenter(t *testing.T, canDeliver bool) *Center {
	t.Helper()
	db := testutils.NewTestDB(t, Models()...)
	return NewCenter(db.DB, storage.NewDefaults(db.DB, storage.SuiteApp), canDeliver)
}

func TestCenter_Authorization(t *testing.T) {
	tests := []struct {
		name       string
		canDeliver bool
		granted    bool
		status     nudge.AuthorizationStatus
	}{
		{name: "granted with a delivery channel", canDeliver: true, granted: true, status: nudge.StatusAuthorized},
		{name: "denied without one", canDeliver: false, granted: false, status: nudge.StatusDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center := newCenter(t, tt.canDeliver)
			ctx := context.Background()

			status, err := center.AuthorizationStatus(ctx)
			require.NoError(t, err)
			assert.Equal(t, nudge.StatusNotDetermined, status)

			granted, err := center.RequestAuthorization(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.granted, granted)

			status, err = center.AuthorizationStatus(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestCenter_DenialWithoutChannelIsAskedAgain(t *testing.T) {
	db := testutils.NewTestDB(t, Models()...)
	defaults := storage.NewDefaults(db.DB, storage.SuiteApp)
	ctx := context.Background()

	granted, err := NewCenter(db.DB, defaults, false).RequestAuthorization(ctx)
	require.NoError(t, err)
	assert.False(t, granted)

	// The owner chat is configured on a later run
	center := NewCenter(db.DB, defaults, true)
	status, err := center.AuthorizationStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, nudge.StatusNotDetermined, status)

	granted, err = center.RequestAuthorization(ctx)
	require.NoError(t, err)
	assert.True(t, granted)

	status, err = center.AuthorizationStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, nudge.StatusAuthorized, status)
}

func TestCenter_ExplicitDenialSticks(t *testing.T) {
	center := newCenter(t, true)
	ctx := context.Background()

	_, err := center.RequestAuthorization(ctx)
	require.NoError(t, err)
	require.NoError(t, center.SetAuthorizationStatus(ctx, nudge.StatusDenied))

	status, err := center.AuthorizationStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, nudge.StatusDenied, status)
}

func TestCenter_ScheduleReplacesSameID(t *testing.T) {
	center := newCenter(t, true)
	ctx := context.Background()
	at := time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC)

	require.NoError(t, center.Schedule(ctx, nudge.Request{ID: nudge.NotificationID, FireAt: at, Title: "Memmi", Body: "one"}))
	require.NoError(t, center.Schedule(ctx, nudge.Request{ID: nudge.NotificationID, FireAt: at.Add(time.Hour), Title: "Memmi", Body: "two"}))

	pending, err := center.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "two", pending[0].Body)
	assert.True(t, at.Add(time.Hour).Equal(pending[0].FireAt))
}

func TestCenter_CancelIsIdempotent(t *testing.T) {
	center := newCenter(t, true)
	ctx := context.Background()

	require.NoError(t, center.Cancel(ctx, nudge.NotificationID))
	require.NoError(t, center.Schedule(ctx, nudge.Request{ID: nudge.NotificationID, FireAt: time.Now(), Title: "t", Body: "b"}))
	require.NoError(t, center.Cancel(ctx, nudge.NotificationID))
	require.NoError(t, center.Cancel(ctx, nudge.NotificationID))

	pending, err := center.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDispatcher_DeliversOnlyDue(t *testing.T) {
	center := newCenter(t, true)
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 18, 30, 0, 0, time.UTC)

	require.NoError(t, center.Schedule(ctx, nudge.Request{ID: "due", FireAt: now.Add(-30 * time.Minute), Title: "Memmi", Body: "hungry"}))
	require.NoError(t, center.Schedule(ctx, nudge.Request{ID: "later", FireAt: now.Add(time.Hour), Title: "Memmi", Body: "later"}))

	sender := &mockSender{}
	sender.On("Send", mock.Anything, "Memmi", "hungry").Return(nil).Once()

	dispatcher := NewDispatcher(center, sender, Config{Interval: time.Minute}, testutils.FixedClock(now), slog.Default())
	sent, err := dispatcher.DispatchOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	sender.AssertExpectations(t)

	pending, err := center.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "later", pending[0].ID)
}

func TestDispatcher_FailedSendIsRetried(t *testing.T) {
	center := newCenter(t, true)
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 18, 30, 0, 0, time.UTC)
	require.NoError(t, center.Schedule(ctx, nudge.Request{ID: "due", FireAt: now, Title: "Memmi", Body: "hungry"}))

	sender := &mockSender{}
	sender.On("Send", mock.Anything, "Memmi", "hungry").Return(errors.New("offline")).Once()
	sender.On("Send", mock.Anything, "Memmi", "hungry").Return(nil).Once()

	dispatcher := NewDispatcher(center, sender, Config{}, testutils.FixedClock(now), slog.Default())

	sent, err := dispatcher.DispatchOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)

	sent, err = dispatcher.DispatchOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	pending, err := center.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
	sender.AssertExpectations(t)
}

func TestDispatcher_StartStopsOnCancel(t *testing.T) {
	center := newCenter(t, true)
	sender := &mockSender{}
	dispatcher := NewDispatcher(center, sender, Config{Interval: 10 * time.Millisecond}, nil, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- dispatcher.Start(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher did not stop")
	}
}
