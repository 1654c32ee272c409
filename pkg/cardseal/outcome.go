package cardseal

import "errors"

// Outcome is the operator-facing verdict for a scanned card. It never reveals
// which check failed.
type Outcome int

const (
	OutcomeInvalid Outcome = iota
	OutcomeValid
	OutcomeExpired
)

// Classify collapses an Open error into an Outcome. A nil error is valid;
// anything that is not an expiry is invalid.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeValid
	case errors.Is(err, ErrTokenExpired):
		return OutcomeExpired
	default:
		return OutcomeInvalid
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeExpired:
		return "expired"
	default:
		return "invalid"
	}
}

// Message is the text shown to the scanning operator.
func (o Outcome) Message() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeExpired:
		return "expired, reissue"
	default:
		return "invalid card"
	}
}
