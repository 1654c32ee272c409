package cardseal

import (
	"crypto/rand"
	"io"
	"log/slog"
	"time"

	"github.com/schoolkit/idcard/pkg/audit"
)

// DefaultFreshnessWindow is how long after sealing an envelope is accepted.
const DefaultFreshnessWindow = 24 * time.Hour

// Option configures a Sealer, an Opener or a Codec.
type Option func(*options)

type options struct {
	now       func() time.Time
	random    io.Reader
	freshness time.Duration
	logger    *slog.Logger
	audit     audit.Logger
}

func defaultOptions() *options {
	return &options{
		now:       time.Now,
		random:    rand.Reader,
		freshness: DefaultFreshnessWindow,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithClock overrides the wall clock. It is read once per Seal or Open.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithRandom overrides the nonce source. Only tests should need this.
func WithRandom(r io.Reader) Option {
	return func(o *options) {
		if r != nil {
			o.random = r
		}
	}
}

// WithFreshnessWindow sets the maximum envelope age accepted by Open.
// Non-positive values are ignored.
func WithFreshnessWindow(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.freshness = d
		}
	}
}

// WithLogger sets the server-side logger receiving full failure detail.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithAuditLogger records integrity failures in the audit trail.
func WithAuditLogger(a audit.Logger) Option {
	return func(o *options) {
		o.audit = a
	}
}
