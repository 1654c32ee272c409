package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/schoolkit/idcard/pkg/audit"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Store(ctx context.Context, event audit.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type scannerKey struct{}

func TestNewLogger_PanicsWithNilStorage(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		audit.NewLogger(nil)
	})
}

func TestLogger_Log(t *testing.T) {
	t.Parallel()

	store := audit.NewMemoryStorage()
	now := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	l := audit.NewLogger(store,
		audit.WithClock(func() time.Time { return now }),
		audit.WithScannerIDExtractor(func(ctx context.Context) (string, bool) {
			v, ok := ctx.Value(scannerKey{}).(string)
			return v, ok
		}),
	)

	ctx := context.WithValue(context.Background(), scannerKey{}, "gate-2")
	require.NoError(t, l.Log(ctx, "idcard.issue",
		audit.WithResource("student_card", "42"),
		audit.WithMetadata("school_id", int64(7)),
	))

	events := store.Events()
	require.Len(t, events, 1)
	e := events[0]

	_, err := uuid.Parse(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, "idcard.issue", e.Action)
	assert.Equal(t, audit.ResultSuccess, e.Result)
	assert.Equal(t, "student_card", e.Resource)
	assert.Equal(t, "42", e.ResourceID)
	assert.Equal(t, "gate-2", e.ScannerID)
	assert.Equal(t, int64(7), e.Metadata["school_id"])
	assert.Equal(t, now, e.CreatedAt)
	assert.Empty(t, e.Error)
}

func TestLogger_LogError(t *testing.T) {
	t.Parallel()

	store := audit.NewMemoryStorage()
	l := audit.NewLogger(store)

	require.NoError(t, l.LogError(context.Background(), "idcard.verify", errors.New("hmac mismatch")))
	require.NoError(t, l.LogError(context.Background(), "idcard.verify", errors.New("bad tag"),
		audit.WithResult(audit.ResultFailure),
	))

	events := store.Events()
	require.Len(t, events, 2)
	assert.Equal(t, audit.ResultError, events[0].Result)
	assert.Equal(t, "hmac mismatch", events[0].Error)
	assert.Equal(t, audit.ResultFailure, events[1].Result)
	assert.NotEqual(t, events[0].ID, events[1].ID)
}

func TestLogger_RejectsEmptyAction(t *testing.T) {
	t.Parallel()

	store := &mockStorage{}
	l := audit.NewLogger(store)

	err := l.Log(context.Background(), "")
	require.ErrorIs(t, err, audit.ErrEventValidation)
	store.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestLogger_PropagatesStorageErrors(t *testing.T) {
	t.Parallel()

	store := &mockStorage{}
	store.On("Store", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Action == "idcard.verify"
	})).Return(audit.ErrStorageNotAvailable)

	l := audit.NewLogger(store)
	err := l.LogError(context.Background(), "idcard.verify", errors.New("tampered"))
	require.ErrorIs(t, err, audit.ErrStorageNotAvailable)
	store.AssertExpectations(t)
}

func TestSlogStorage(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	storage := audit.NewSlogStorage(slog.New(slog.NewJSONHandler(buf, nil)))
	l := audit.NewLogger(storage)

	require.NoError(t, l.LogError(context.Background(), "idcard.verify", errors.New("hmac mismatch"),
		audit.WithResult(audit.ResultFailure),
		audit.WithMetadata("stage", "hmac"),
	))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "audit", entry["component"])
	assert.Equal(t, "idcard.verify", entry["action"])
	assert.Equal(t, "failure", entry["result"])
	assert.Equal(t, "hmac mismatch", entry["error"])
	assert.Equal(t, "hmac", entry["metadata"].(map[string]any)["stage"])
}

func TestNewSlogStorage_PanicsWithNilLogger(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		audit.NewSlogStorage(nil)
	})
}
