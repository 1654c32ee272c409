package claims

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/schoolkit/idcard/pkg/validator"
)

const (
	// DefaultValidity is how long a freshly issued card stays valid.
	DefaultValidity = 365 * 24 * time.Hour

	maxMatriculeLen = 32
	maxNameLen      = 64
	maxClassLen     = 32
)

var matriculePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Record is the subset of a student record needed to issue a card.
// It is loaded by the caller from the records store.
type Record struct {
	ID           int64  `json:"id" yaml:"id"`
	Matricule    string `json:"matricule" yaml:"matricule"`
	FamilyName   string `json:"family_name" yaml:"family_name"`
	GivenName    string `json:"given_name" yaml:"given_name"`
	SchoolID     int64  `json:"school_id" yaml:"school_id"`
	ClassLabel   string `json:"class_label" yaml:"class_label"`
	AcademicYear string `json:"academic_year" yaml:"academic_year"`
	Status       Status `json:"status" yaml:"status"`
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithValidity sets the card-level validity. Non-positive values are ignored.
func WithValidity(d time.Duration) BuilderOption {
	return func(b *Builder) {
		if d > 0 {
			b.validity = d
		}
	}
}

// WithClock overrides the time source. Nil is ignored.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// Builder turns validated records into Claims.
type Builder struct {
	validity time.Duration
	now      func() time.Time
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		validity: DefaultValidity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Validity returns the configured card-level validity.
func (b *Builder) Validity() time.Duration {
	return b.validity
}

// Build validates rec and returns Claims stamped with the current time.
// On failure the error wraps ErrInvalidRecord and validator.ValidationErrors.
func (b *Builder) Build(rec Record) (Claims, error) {
	rec = normalize(rec)
	if err := validateRecord(rec); err != nil {
		return Claims{}, errors.Join(ErrInvalidRecord, err)
	}

	now := b.now().UTC().Truncate(time.Second)
	return Claims{
		Version:      SchemaVersion,
		StudentID:    rec.ID,
		Matricule:    rec.Matricule,
		FamilyName:   rec.FamilyName,
		GivenName:    rec.GivenName,
		SchoolID:     rec.SchoolID,
		ClassLabel:   rec.ClassLabel,
		AcademicYear: rec.AcademicYear,
		Status:       rec.Status,
		IssuedAt:     now,
		ExpiresAt:    now.Add(b.validity),
	}, nil
}

// normalize trims text fields and puts them in NFC so that visually equal
// names always serialize to the same bytes.
func normalize(rec Record) Record {
	clean := func(s string) string {
		s = strings.TrimSpace(s)
		if !utf8.ValidString(s) {
			return s
		}
		return norm.NFC.String(s)
	}
	rec.Matricule = clean(rec.Matricule)
	rec.FamilyName = clean(rec.FamilyName)
	rec.GivenName = clean(rec.GivenName)
	rec.ClassLabel = clean(rec.ClassLabel)
	rec.AcademicYear = clean(rec.AcademicYear)
	rec.Status = Status(strings.ToLower(clean(string(rec.Status))))
	return rec
}

func validateRecord(rec Record) error {
	statuses := make([]string, 0, len(Statuses()))
	for _, s := range Statuses() {
		statuses = append(statuses, string(s))
	}

	return validator.Apply(
		validator.PositiveID("id", rec.ID),
		validator.RequiredString("matricule", rec.Matricule),
		validator.When(rec.Matricule != "", validator.Matches("matricule", rec.Matricule, matriculePattern, "matricule")),
		validator.MaxRunes("matricule", rec.Matricule, maxMatriculeLen),
		validator.RequiredString("family_name", rec.FamilyName),
		validator.ValidUTF8("family_name", rec.FamilyName),
		validator.MaxRunes("family_name", rec.FamilyName, maxNameLen),
		validator.RequiredString("given_name", rec.GivenName),
		validator.ValidUTF8("given_name", rec.GivenName),
		validator.MaxRunes("given_name", rec.GivenName, maxNameLen),
		validator.PositiveID("school_id", rec.SchoolID),
		validator.ValidUTF8("class_label", rec.ClassLabel),
		validator.MaxRunes("class_label", rec.ClassLabel, maxClassLen),
		validator.When(rec.AcademicYear != "", validator.AcademicYear("academic_year", rec.AcademicYear)),
		validator.When(rec.Status != "", validator.OneOfString("status", string(rec.Status), statuses)),
	)
}
