package cardseal_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schoolkit/idcard/pkg/cardseal"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		want    cardseal.Outcome
		message string
	}{
		{"success", nil, cardseal.OutcomeValid, "valid"},
		{"stale", errors.Join(cardseal.ErrTokenExpired, cardseal.ErrEnvelopeStale), cardseal.OutcomeExpired, "expired, reissue"},
		{"card expired", errors.Join(cardseal.ErrTokenExpired, cardseal.ErrCardExpired), cardseal.OutcomeExpired, "expired, reissue"},
		{"tampered", errors.Join(cardseal.ErrTokenTampered, cardseal.ErrMACMismatch), cardseal.OutcomeInvalid, "invalid card"},
		{"malformed", errors.Join(cardseal.ErrMalformedToken, cardseal.ErrInvalidLength), cardseal.OutcomeInvalid, "invalid card"},
		{"wrapped", fmt.Errorf("scan: %w", cardseal.ErrTokenExpired), cardseal.OutcomeExpired, "expired, reissue"},
		{"unrelated", errors.New("boom"), cardseal.OutcomeInvalid, "invalid card"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := cardseal.Classify(tt.err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.message, got.Message())
		})
	}
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "valid", cardseal.OutcomeValid.String())
	assert.Equal(t, "expired", cardseal.OutcomeExpired.String())
	assert.Equal(t, "invalid", cardseal.OutcomeInvalid.String())
}
