package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolkit/idcard/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Run("returns default message when no errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("returns formatted message with single error", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "matricule", Message: "field is required"})
		assert.Equal(t, "validation failed: matricule: field is required", errs.Error())
	})

	t.Run("joins multiple errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "id", Message: "a"})
		errs.Add(validator.ValidationError{Field: "school_id", Message: "b"})
		assert.Equal(t, "validation failed: id: a; school_id: b", errs.Error())
	})
}

func TestValidationErrors_Accessors(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "id", Message: "first"},
		{Field: "family_name", Message: "second"},
		{Field: "id", Message: "third"},
	}

	assert.True(t, errs.Has("id"))
	assert.False(t, errs.Has("given_name"))
	assert.Equal(t, []string{"first", "third"}, errs.Get("id"))
	assert.Equal(t, []string{"id", "family_name"}, errs.Fields())
	assert.False(t, errs.IsEmpty())
}

func TestApply(t *testing.T) {
	t.Run("nil when all rules pass", func(t *testing.T) {
		err := validator.Apply(
			validator.RequiredString("matricule", "STU042"),
			validator.PositiveID("id", int64(42)),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		err := validator.Apply(
			validator.RequiredString("matricule", ""),
			validator.PositiveID("id", int64(-1)),
			validator.RequiredString("family_name", "Doe"),
		)
		require.Error(t, err)

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 2)
		assert.Equal(t, []string{"matricule", "id"}, verrs.Fields())
	})

	t.Run("no rules", func(t *testing.T) {
		assert.NoError(t, validator.Apply())
	})
}

func TestWhen(t *testing.T) {
	failing := validator.RequiredString("class_label", "")

	assert.Error(t, validator.Apply(validator.When(true, failing)))
	assert.NoError(t, validator.Apply(validator.When(false, failing)))
}

func TestErrorMatching(t *testing.T) {
	err := validator.Apply(validator.RequiredString("given_name", " "))
	wrapped := fmt.Errorf("build claims: %w", err)
	joined := errors.Join(errors.New("invalid record"), err)

	for _, e := range []error{err, wrapped, joined} {
		assert.True(t, validator.IsValidationError(e))
		assert.ErrorIs(t, e, validator.ErrValidationFailed)
		assert.True(t, validator.ExtractValidationErrors(e).Has("given_name"))
	}

	assert.False(t, validator.IsValidationError(nil))
	assert.False(t, validator.IsValidationError(errors.New("other")))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("other")))
}
