package validator

import "errors"

// ErrValidationFailed matches any ValidationErrors value via errors.Is.
var ErrValidationFailed = errors.New("validation failed")

// Codes used in ValidationError.Code.
const (
	CodeRequired = "required"
	CodeTooLong  = "too_long"
	CodeRange    = "out_of_range"
	CodeFormat   = "format"
	CodeChoice   = "choice"
)
