package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var academicYearPattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// Matches validates value against a precompiled pattern. Empty values fail;
// wrap with When for optional fields.
func Matches(field, value string, re *regexp.Regexp, description string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			return re.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be a valid %s", description),
			Code:    CodeFormat,
			Params:  map[string]any{"pattern": re.String()},
		},
	}
}

// AcademicYear validates a school year label like "2024-2025": two four-digit
// years where the second directly follows the first.
func AcademicYear(field, value string) Rule {
	return Rule{
		Check: func() bool {
			m := academicYearPattern.FindStringSubmatch(value)
			if m == nil {
				return false
			}
			start, _ := strconv.Atoi(m[1])
			end, _ := strconv.Atoi(m[2])
			return end == start+1
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be an academic year like 2024-2025",
			Code:    CodeFormat,
		},
	}
}
