package audit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// StreamAdder is satisfied by every go-redis client.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

type redisStreamStorage struct {
	client StreamAdder
	stream string
	maxLen int64
}

// NewRedisStreamStorage appends events to a Redis stream, trimmed
// approximately to maxLen entries. A non-positive maxLen disables trimming.
func NewRedisStreamStorage(client StreamAdder, stream string, maxLen int64) Storage {
	if client == nil {
		panic("audit: redis client cannot be nil")
	}
	if stream == "" {
		panic("audit: redis stream name cannot be empty")
	}
	return &redisStreamStorage{client: client, stream: stream, maxLen: max(maxLen, 0)}
}

func (s *redisStreamStorage) Store(ctx context.Context, event Event) error {
	meta, err := encodeMetadata(event.Metadata)
	if err != nil {
		return err
	}

	args := &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: s.maxLen > 0,
		Values: map[string]any{
			"id":          event.ID,
			"action":      event.Action,
			"resource":    event.Resource,
			"resource_id": event.ResourceID,
			"result":      string(event.Result),
			"error":       event.Error,
			"scanner_id":  event.ScannerID,
			"metadata":    string(meta),
			"created_at":  event.CreatedAt.UTC().Format(time.RFC3339),
		},
	}
	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return errors.Join(ErrStorageNotAvailable, err)
	}
	return nil
}
