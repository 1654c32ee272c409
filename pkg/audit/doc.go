// Package audit records security-relevant actions of the ID card subsystem,
// most importantly cards rejected by an integrity check.
//
// A Logger builds Event values (uuid, action, result, error, metadata,
// timestamp) and hands them to a Storage:
//
//   - NewSlogStorage writes events to a *slog.Logger with the regular logs.
//   - NewPostgresStorage inserts rows into idcard_audit_events (see pkg/pg).
//   - NewRedisStreamStorage appends to a capped Redis stream.
//   - MemoryStorage keeps events in memory for tests.
//
// # Usage
//
//	trail := audit.NewLogger(audit.NewSlogStorage(log))
//	_ = trail.LogError(ctx, "idcard.verify", err,
//	    audit.WithResource("student_card", ""),
//	    audit.WithResult(audit.ResultFailure),
//	    audit.WithMetadata("stage", "hmac"),
//	)
//
// Full failure detail belongs here and in server logs, never in responses
// shown to the scanning operator.
package audit
