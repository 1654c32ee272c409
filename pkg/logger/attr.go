package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// StudentID records the student identifier under the key "student_id".
func StudentID(id int64) slog.Attr {
	return slog.Int64("student_id", id)
}

// SchoolID records the school identifier under the key "school_id".
func SchoolID(id int64) slog.Attr {
	return slog.Int64("school_id", id)
}

// Algorithm records the token algorithm name under the key "algorithm".
func Algorithm(name string) slog.Attr {
	return slog.String("algorithm", name)
}

// TokenAge records the age of a token envelope under the key "token_age".
func TokenAge(d time.Duration) slog.Attr {
	return slog.Duration("token_age", d)
}

// Stage records the verification stage under the key "stage".
func Stage(name string) slog.Attr {
	return slog.String("stage", name)
}

// Outcome records the collapsed verification outcome under the key "outcome".
func Outcome(o string) slog.Attr {
	return slog.String("outcome", o)
}

// ScannerID records the scanning device under the key "scanner_id".
// If id is empty, it returns an empty Attr.
func ScannerID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("scanner_id", id)
}
