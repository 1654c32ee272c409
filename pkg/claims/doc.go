// Package claims defines the identity facts printed on a student ID card and
// the builder that derives them from a student record.
//
// Build validates the record (positive numeric identifiers, required
// matricule and names, well-formed optional fields), normalizes text to
// Unicode NFC and stamps the schema version, the issue time and the
// card-level expiry. Marshal produces the canonical byte form used for
// sealing: a compact JSON object with a fixed key order and one-second
// timestamps, so equal claims always yield equal bytes and equal digests.
//
// # Usage
//
//	b := claims.NewBuilder(claims.WithValidity(365 * 24 * time.Hour))
//	c, err := b.Build(claims.Record{
//	    ID: 42, Matricule: "STU042", FamilyName: "Doe", GivenName: "Jane",
//	    SchoolID: 7, ClassLabel: "CM2", AcademicYear: "2024-2025",
//	    Status: claims.StatusEnrolled,
//	})
//	if errors.Is(err, claims.ErrInvalidRecord) {
//	    verrs := validator.ExtractValidationErrors(err) // which fields
//	}
package claims
