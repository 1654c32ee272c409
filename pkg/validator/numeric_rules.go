package validator

import "fmt"

// RequiredNum validates that a numeric value is not zero.
func RequiredNum[T Numeric](field string, value T) Rule {
	var zero T
	return Rule{
		Check: func() bool {
			return value != zero
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
			Code:    CodeRequired,
		},
	}
}

// PositiveID validates a database identifier: strictly greater than zero.
// A zero value is reported as missing rather than out of range.
func PositiveID[T Numeric](field string, value T) Rule {
	var zero T
	return Rule{
		Check: func() bool {
			return value > zero
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a positive identifier",
			Code:    CodeRange,
		},
	}
}

// MinNum validates that a numeric value is greater than or equal to min.
func MinNum[T Numeric](field string, value T, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %v", min),
			Code:    CodeRange,
			Params:  map[string]any{"min": min},
		},
	}
}
