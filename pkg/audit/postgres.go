package audit

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/schoolkit/idcard/pkg/pg"
)

// Execer is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const insertEventSQL = `INSERT INTO idcard_audit_events
	(id, action, resource, resource_id, result, error, scanner_id, metadata, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

type postgresStorage struct {
	db Execer
}

// NewPostgresStorage stores events in the idcard_audit_events table created
// by pg.Migrate.
func NewPostgresStorage(db Execer) Storage {
	if db == nil {
		panic("audit: postgres executor cannot be nil")
	}
	return &postgresStorage{db: db}
}

func (s *postgresStorage) Store(ctx context.Context, event Event) error {
	meta, err := encodeMetadata(event.Metadata)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, insertEventSQL,
		event.ID,
		event.Action,
		event.Resource,
		event.ResourceID,
		string(event.Result),
		event.Error,
		event.ScannerID,
		meta,
		event.CreatedAt,
	)
	switch {
	case err == nil:
		return nil
	case pg.IsDuplicateKeyError(err):
		return errors.Join(ErrDuplicateEvent, err)
	default:
		return errors.Join(ErrStorageNotAvailable, err)
	}
}

func encodeMetadata(meta map[string]any) ([]byte, error) {
	if len(meta) == 0 {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return nil, errors.Join(ErrEncodeMetadata, err)
	}
	return b, nil
}
