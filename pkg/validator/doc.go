// Package validator provides small, composable validation rules for the
// records that feed ID card issuance.
//
// A Rule pairs a boolean Check with the ValidationError reported when it
// fails. Apply evaluates a list of rules and aggregates every failure into a
// ValidationErrors value, which implements error and matches
// ErrValidationFailed through errors.Is, so callers can report all offending
// fields at once.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.PositiveID("id", rec.ID),
//	    validator.RequiredString("matricule", rec.Matricule),
//	    validator.When(rec.AcademicYear != "",
//	        validator.AcademicYear("academic_year", rec.AcademicYear)),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, f := range verrs.Fields() {
//	        // highlight f in the form
//	    }
//	}
//
// Rules are plain values with no global state and are safe for concurrent use.
package validator
