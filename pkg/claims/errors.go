package claims

import "errors"

var (
	// ErrInvalidRecord wraps validator.ValidationErrors describing which record
	// fields are missing or malformed.
	ErrInvalidRecord = errors.New("invalid student record")

	ErrMalformedClaims   = errors.New("malformed claims")
	ErrUnsupportedSchema = errors.New("unsupported claims schema version")

	errInvalidText = errors.New("text field is not valid UTF-8")
)
