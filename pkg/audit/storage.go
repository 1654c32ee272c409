package audit

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

type slogStorage struct {
	log *slog.Logger
}

// NewSlogStorage writes each event as a structured log record at warn level
// for failures and info level otherwise. Suitable when audit events are
// shipped through the log pipeline.
func NewSlogStorage(log *slog.Logger) Storage {
	if log == nil {
		panic("audit: logger cannot be nil")
	}
	return &slogStorage{log: log.With(slog.String("component", "audit"))}
}

func (s *slogStorage) Store(ctx context.Context, event Event) error {
	level := slog.LevelInfo
	if event.Result != ResultSuccess {
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("event_id", event.ID),
		slog.String("action", event.Action),
		slog.String("result", string(event.Result)),
		slog.Time("created_at", event.CreatedAt),
	}
	if event.Resource != "" {
		attrs = append(attrs, slog.String("resource", event.Resource))
	}
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}
	if event.ScannerID != "" {
		attrs = append(attrs, slog.String("scanner_id", event.ScannerID))
	}
	if len(event.Metadata) > 0 {
		meta := make([]slog.Attr, 0, len(event.Metadata))
		for k, v := range event.Metadata {
			meta = append(meta, slog.Any(k, v))
		}
		attrs = append(attrs, slog.Attr{Key: "metadata", Value: slog.GroupValue(meta...)})
	}

	s.log.LogAttrs(ctx, level, "audit event", attrs...)
	return nil
}

// MemoryStorage keeps events in memory. Intended for tests and the CLI.
type MemoryStorage struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Store(_ context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns a snapshot of stored events in insertion order.
func (m *MemoryStorage) Events() []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.events)
}
