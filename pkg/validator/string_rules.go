package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
			Code:    CodeRequired,
		},
	}
}

// MaxRunes limits the length of a string counted in characters, not bytes,
// so accented names are not penalised.
func MaxRunes(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Code:    CodeTooLong,
			Params:  map[string]any{"max": max},
		},
	}
}

// ValidUTF8 rejects byte sequences that are not valid UTF-8.
func ValidUTF8(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return utf8.ValidString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be valid UTF-8 text",
			Code:    CodeFormat,
		},
	}
}
