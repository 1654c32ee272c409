package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schoolkit/idcard/pkg/validator"
)

func TestRequiredNum(t *testing.T) {
	assert.True(t, validator.RequiredNum("id", int64(42)).Check())
	assert.True(t, validator.RequiredNum("id", int64(-1)).Check())
	assert.False(t, validator.RequiredNum("id", int64(0)).Check())
	assert.False(t, validator.RequiredNum("school_id", uint32(0)).Check())
}

func TestPositiveID(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		want  bool
	}{
		{"positive", 7, true},
		{"one", 1, true},
		{"zero", 0, false},
		{"negative", -7, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rule := validator.PositiveID("school_id", tt.value)
			assert.Equal(t, tt.want, rule.Check())
			assert.Equal(t, "school_id", rule.Error.Field)
		})
	}
}

func TestMinNum(t *testing.T) {
	assert.True(t, validator.MinNum("size", 256, 21).Check())
	assert.True(t, validator.MinNum("size", 21, 21).Check())

	rule := validator.MinNum("size", 20, 21)
	assert.False(t, rule.Check())
	assert.Equal(t, "must be at least 21", rule.Error.Message)
}
