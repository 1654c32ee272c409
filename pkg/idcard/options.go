package idcard

import (
	"io"
	"log/slog"
	"time"

	"github.com/schoolkit/idcard/pkg/audit"
)

type Option func(*options)

type options struct {
	logger  *slog.Logger
	storage audit.Storage
	now     func() time.Time
	random  io.Reader
}

// WithLogger sets the server-side logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithAuditStorage enables the audit trail for issued and rejected cards.
func WithAuditStorage(s audit.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithClock overrides the wall clock used for issuance and verification.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithRandom overrides the nonce source.
func WithRandom(r io.Reader) Option {
	return func(o *options) {
		o.random = r
	}
}
