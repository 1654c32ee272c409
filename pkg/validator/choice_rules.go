package validator

import (
	"fmt"
	"slices"
	"strings"
)

// OneOf validates that value is one of the allowed options.
func OneOf[T comparable](field string, value T, options []T) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(options, value)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %v", options),
			Code:    CodeChoice,
			Params:  map[string]any{"allowed": options},
		},
	}
}

// OneOfString is OneOf with a readable comma-separated message.
func OneOfString(field, value string, options []string) Rule {
	r := OneOf(field, value, options)
	r.Error.Message = "must be one of: " + strings.Join(options, ", ")
	return r
}
