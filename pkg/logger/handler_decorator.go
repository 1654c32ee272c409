package logger

import (
	"context"
	"log/slog"
	"slices"
	"strings"
)

// Redacted replaces the value of sensitive attributes.
const Redacted = "[REDACTED]"

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// LogHandlerDecorator wraps a slog.Handler, injects attributes pulled from the
// context and masks attributes whose key is listed as sensitive.
type LogHandlerDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
	sensitive  []string
}

// NewLogHandlerDecorator creates a decorated handler. Nil extractors are
// dropped; sensitive keys are matched case-insensitively.
func NewLogHandlerDecorator(next slog.Handler, sensitive []string, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	keys := make([]string, 0, len(sensitive))
	for _, k := range sensitive {
		keys = append(keys, strings.ToLower(k))
	}
	return &LogHandlerDecorator{next: next, extractors: clean, sensitive: keys}
}

func (h *LogHandlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle adds context attributes, redacts sensitive ones and delegates.
func (h *LogHandlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	if len(h.extractors) == 0 && len(h.sensitive) == 0 {
		return h.next.Handle(ctx, rec)
	}

	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redact(a))
		return true
	})
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			out.AddAttrs(h.redact(attr))
		}
	}
	return h.next.Handle(ctx, out)
}

func (h *LogHandlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		clean = append(clean, h.redact(a))
	}
	return &LogHandlerDecorator{
		next:       h.next.WithAttrs(clean),
		extractors: h.extractors,
		sensitive:  h.sensitive,
	}
}

func (h *LogHandlerDecorator) WithGroup(name string) slog.Handler {
	return &LogHandlerDecorator{
		next:       h.next.WithGroup(name),
		extractors: h.extractors,
		sensitive:  h.sensitive,
	}
}

func (h *LogHandlerDecorator) redact(a slog.Attr) slog.Attr {
	if len(h.sensitive) == 0 {
		return a
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		clean := make([]slog.Attr, 0, len(group))
		for _, ga := range group {
			clean = append(clean, h.redact(ga))
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clean...)}
	}
	if slices.Contains(h.sensitive, strings.ToLower(a.Key)) {
		return slog.String(a.Key, Redacted)
	}
	return a
}
