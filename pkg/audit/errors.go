package audit

import "errors"

var (
	ErrStorageNotAvailable = errors.New("storage backend is unavailable")

	ErrEventValidation = errors.New("event validation failed")
	ErrDuplicateEvent  = errors.New("audit event already stored")
	ErrEncodeMetadata  = errors.New("failed to encode event metadata")
)
