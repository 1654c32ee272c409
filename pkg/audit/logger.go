package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type logger struct {
	storage          Storage
	scannerExtractor func(context.Context) (string, bool)
	now              func() time.Time
}

// Option configures the audit logger.
type Option func(*logger)

// WithScannerIDExtractor records the scanning device taken from context.
func WithScannerIDExtractor(fn func(context.Context) (string, bool)) Option {
	return func(l *logger) {
		l.scannerExtractor = fn
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *logger) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLogger creates a new audit logger
func NewLogger(storage Storage, opts ...Option) Logger {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}

	l := &logger{
		storage: storage,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Log records a successful action
func (l *logger) Log(ctx context.Context, action string, opts ...EventOption) error {
	event := l.newEvent(ctx, action)
	event.Result = ResultSuccess

	for _, opt := range opts {
		opt(&event)
	}

	if err := event.Validate(); err != nil {
		return err
	}

	return l.storage.Store(ctx, event)
}

// LogError records a failed action. Options run after the error is set, so
// WithResult can downgrade ResultError to ResultFailure.
func (l *logger) LogError(ctx context.Context, action string, err error, opts ...EventOption) error {
	event := l.newEvent(ctx, action)
	event.Result = ResultError
	if err != nil {
		event.Error = err.Error()
	}

	for _, opt := range opts {
		opt(&event)
	}

	if err := event.Validate(); err != nil {
		return err
	}

	return l.storage.Store(ctx, event)
}

func (l *logger) newEvent(ctx context.Context, action string) Event {
	event := Event{
		ID:        uuid.New().String(),
		Action:    action,
		CreatedAt: l.now(),
	}
	if l.scannerExtractor != nil {
		if id, ok := l.scannerExtractor(ctx); ok {
			event.ScannerID = id
		}
	}
	return event
}
