package pg_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolkit/idcard/pkg/pg"
)

func TestConnect_Disabled(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{})
	require.ErrorIs(t, err, pg.ErrEmptyConnectionString)
	assert.False(t, pg.Config{}.Enabled())
}

func TestConnect_InvalidConnectionString(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
	require.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}

func TestConnect_GivesUpWhenContextDone(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	cfg := pg.Config{
		ConnectionString: "postgres://nobody@127.0.0.1:1/none?connect_timeout=1",
		MaxOpenConns:     1,
		RetryAttempts:    10,
		RetryInterval:    time.Second,
	}
	_, err := pg.Connect(ctx, cfg)
	require.ErrorIs(t, err, pg.ErrFailedToOpenDBConnection)
}

func TestConnect_KeepsLastErrorWithoutTrailingWait(t *testing.T) {
	t.Parallel()

	cfg := pg.Config{
		ConnectionString: "postgres://nobody@127.0.0.1:1/none?connect_timeout=1",
		MaxOpenConns:     1,
		RetryAttempts:    1,
		RetryInterval:    time.Minute,
	}
	start := time.Now()
	_, err := pg.Connect(context.Background(), cfg)
	require.ErrorIs(t, err, pg.ErrFailedToOpenDBConnection)
	assert.Less(t, time.Since(start), 30*time.Second)
	assert.NotEqual(t, pg.ErrFailedToOpenDBConnection.Error(), err.Error())
}

func TestIsDuplicateKeyError(t *testing.T) {
	t.Parallel()

	dup := &pgconn.PgError{Code: "23505"}
	assert.True(t, pg.IsDuplicateKeyError(dup))
	assert.True(t, pg.IsDuplicateKeyError(fmt.Errorf("insert: %w", dup)))
	assert.False(t, pg.IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, pg.IsDuplicateKeyError(errors.New("boom")))
	assert.False(t, pg.IsDuplicateKeyError(nil))
}
