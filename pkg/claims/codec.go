package claims

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"io"
	"time"
)

// wireClaims fixes the field order and the short keys of the canonical form.
// Reordering or renaming fields here changes every digest; bump SchemaVersion
// instead.
type wireClaims struct {
	Version      int    `json:"v"`
	StudentID    int64  `json:"id"`
	Matricule    string `json:"mat"`
	FamilyName   string `json:"nom"`
	GivenName    string `json:"pre"`
	SchoolID     int64  `json:"eco"`
	ClassLabel   string `json:"cls"`
	AcademicYear string `json:"an"`
	Status       string `json:"st"`
	IssuedAt     int64  `json:"iat"`
	ExpiresAt    int64  `json:"exp"`
}

// Marshal returns the canonical serialization of c. Identical claims always
// produce identical bytes. Text that is not valid UTF-8 is rejected rather
// than silently replaced.
func Marshal(c Claims) ([]byte, error) {
	if !c.validText() {
		return nil, errors.Join(ErrMalformedClaims, errInvalidText)
	}
	data, err := json.Marshal(wireClaims{
		Version:      c.Version,
		StudentID:    c.StudentID,
		Matricule:    c.Matricule,
		FamilyName:   c.FamilyName,
		GivenName:    c.GivenName,
		SchoolID:     c.SchoolID,
		ClassLabel:   c.ClassLabel,
		AcademicYear: c.AcademicYear,
		Status:       string(c.Status),
		IssuedAt:     c.IssuedAt.Unix(),
		ExpiresAt:    c.ExpiresAt.Unix(),
	})
	if err != nil {
		return nil, errors.Join(ErrMalformedClaims, err)
	}
	return data, nil
}

// Unmarshal parses the canonical form produced by Marshal. Unknown keys,
// trailing data and claims that fail Validate are rejected.
func Unmarshal(data []byte) (Claims, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var w wireClaims
	if err := dec.Decode(&w); err != nil {
		return Claims{}, errors.Join(ErrMalformedClaims, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Claims{}, errors.Join(ErrMalformedClaims, errors.New("trailing data after claims"))
	}

	c := Claims{
		Version:      w.Version,
		StudentID:    w.StudentID,
		Matricule:    w.Matricule,
		FamilyName:   w.FamilyName,
		GivenName:    w.GivenName,
		SchoolID:     w.SchoolID,
		ClassLabel:   w.ClassLabel,
		AcademicYear: w.AcademicYear,
		Status:       Status(w.Status),
		IssuedAt:     time.Unix(w.IssuedAt, 0).UTC(),
		ExpiresAt:    time.Unix(w.ExpiresAt, 0).UTC(),
	}
	if err := c.Validate(); err != nil {
		return Claims{}, err
	}
	return c, nil
}

// Digest returns SHA-256 over the canonical serialization of c.
func Digest(c Claims) ([sha256.Size]byte, error) {
	data, err := Marshal(c)
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	return sha256.Sum256(data), nil
}
