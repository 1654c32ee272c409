package claims

import (
	"errors"
	"time"
	"unicode/utf8"
)

// SchemaVersion is stamped into every Claims built by this package.
const SchemaVersion = 1

// Status is the enrollment state of a student at issuance time.
type Status string

const (
	StatusEnrolled    Status = "inscrit"
	StatusReenrolled  Status = "reinscrit"
	StatusSuspended   Status = "suspendu"
	StatusGraduated   Status = "diplome"
	StatusTransferred Status = "transfere"
)

// Statuses lists every accepted enrollment status.
func Statuses() []Status {
	return []Status{StatusEnrolled, StatusReenrolled, StatusSuspended, StatusGraduated, StatusTransferred}
}

// Claims are the identity facts carried by a student ID card.
// They are never modified after sealing.
type Claims struct {
	Version      int
	StudentID    int64
	Matricule    string
	FamilyName   string
	GivenName    string
	SchoolID     int64
	ClassLabel   string
	AcademicYear string
	Status       Status
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// Expired reports whether the card-level validity has passed at now.
func (c Claims) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Validate checks the structural invariants a sealed card must satisfy.
// It does not re-run record validation.
func (c Claims) Validate() error {
	switch {
	case c.Version != SchemaVersion:
		return ErrUnsupportedSchema
	case c.StudentID <= 0, c.SchoolID <= 0:
		return errors.Join(ErrMalformedClaims, errors.New("identifiers must be positive"))
	case c.Matricule == "", c.FamilyName == "", c.GivenName == "":
		return errors.Join(ErrMalformedClaims, errors.New("missing identity field"))
	case c.IssuedAt.Unix() <= 0, c.ExpiresAt.Unix() <= 0:
		return errors.Join(ErrMalformedClaims, errors.New("missing timestamp"))
	case c.IssuedAt.After(c.ExpiresAt):
		return errors.Join(ErrMalformedClaims, errors.New("issued after expiry"))
	case !c.validText():
		return errors.Join(ErrMalformedClaims, errInvalidText)
	}
	return nil
}

// validText reports whether every text field survives a JSON round trip
// unchanged. Invalid UTF-8 is rewritten to U+FFFD on encoding, which would
// change the claims digest between sealing and opening.
func (c Claims) validText() bool {
	for _, s := range []string{
		c.Matricule, c.FamilyName, c.GivenName,
		c.ClassLabel, c.AcademicYear, string(c.Status),
	} {
		if !utf8.ValidString(s) {
			return false
		}
	}
	return true
}
