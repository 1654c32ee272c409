package idcard

import "context"

type scannerKey struct{}

// WithScanner attaches the scanning device identifier to ctx. It ends up in
// verification logs and audit events.
func WithScanner(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, scannerKey{}, id)
}

// ScannerFromContext returns the scanner identifier set by WithScanner.
func ScannerFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(scannerKey{}).(string)
	return id, ok && id != ""
}
