package idcard_test

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolkit/idcard/pkg/audit"
	"github.com/schoolkit/idcard/pkg/cardseal"
	"github.com/schoolkit/idcard/pkg/claims"
	"github.com/schoolkit/idcard/pkg/idcard"
	"github.com/schoolkit/idcard/pkg/keyring"
	"github.com/schoolkit/idcard/pkg/validator"
)

var issuedAt = time.Unix(1700000000, 0).UTC()

func testConfig() idcard.Config {
	return idcard.Config{
		Secret:          "a-long-enough-card-secret-for-tests",
		Validity:        365 * 24 * time.Hour,
		FreshnessWindow: 24 * time.Hour,
		QRSize:          256,
	}
}

func record() claims.Record {
	return claims.Record{
		ID:           42,
		Matricule:    "STU042",
		FamilyName:   "Doe",
		GivenName:    "Jane",
		SchoolID:     7,
		ClassLabel:   "CM2",
		AcademicYear: "2024-2025",
		Status:       claims.StatusEnrolled,
	}
}

func newService(t *testing.T, at time.Time, opts ...idcard.Option) *idcard.Service {
	t.Helper()
	opts = append([]idcard.Option{idcard.WithClock(func() time.Time { return at })}, opts...)
	svc, err := idcard.NewService(testConfig(), opts...)
	require.NoError(t, err)
	return svc
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*idcard.Config)
	}{
		{"missing secret", func(c *idcard.Config) { c.Secret = "" }},
		{"zero validity", func(c *idcard.Config) { c.Validity = 0 }},
		{"negative freshness", func(c *idcard.Config) { c.FreshnessWindow = -time.Hour }},
		{"zero qr size", func(c *idcard.Config) { c.QRSize = 0 }},
		{"huge qr size", func(c *idcard.Config) { c.QRSize = 10000 }},
	}

	require.NoError(t, testConfig().Validate())
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), idcard.ErrInvalidConfig)
		})
	}
}

func TestNewService_ShortSecret(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Secret = "short"
	_, err := idcard.NewService(cfg)
	require.ErrorIs(t, err, idcard.ErrInvalidConfig)
	require.ErrorIs(t, err, keyring.ErrInvalidConfiguration)
	require.ErrorIs(t, err, keyring.ErrSecretTooShort)
}

func TestService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := newService(t, issuedAt)
	card, err := svc.Issue(context.Background(), record())
	require.NoError(t, err)

	assert.Equal(t, issuedAt, card.Claims.IssuedAt)
	assert.Equal(t, issuedAt.Add(365*24*time.Hour), card.Claims.ExpiresAt)
	assert.LessOrEqual(t, len(card.Token), cardseal.MaxEncodedLength)

	img, err := png.Decode(bytes.NewReader(card.PNG))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())

	later := newService(t, issuedAt.Add(100*time.Second))
	scan := later.Verify(context.Background(), card.Token)
	assert.True(t, scan.Valid())
	assert.Equal(t, "valid", scan.Message)
	assert.Equal(t, 100*time.Second, scan.Age)
	require.NotNil(t, scan.Claims)
	assert.Equal(t, card.Claims, *scan.Claims)
}

func TestService_VerifyCollapsesFailures(t *testing.T) {
	t.Parallel()

	card, err := newService(t, issuedAt).Issue(context.Background(), record())
	require.NoError(t, err)

	tampered := []byte(card.Token)
	if tampered[40] == 'A' {
		tampered[40] = 'B'
	} else {
		tampered[40] = 'A'
	}

	tests := []struct {
		name    string
		at      time.Time
		token   string
		outcome cardseal.Outcome
		message string
	}{
		{"stale", issuedAt.Add(25 * time.Hour), card.Token, cardseal.OutcomeExpired, "expired, reissue"},
		{"tampered", issuedAt.Add(time.Minute), string(tampered), cardseal.OutcomeInvalid, "invalid card"},
		{"truncated", issuedAt.Add(time.Minute), card.Token[:len(card.Token)-10], cardseal.OutcomeInvalid, "invalid card"},
		{"garbage", issuedAt.Add(time.Minute), "hello", cardseal.OutcomeInvalid, "invalid card"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			scan := newService(t, tt.at).Verify(context.Background(), tt.token)
			assert.Equal(t, tt.outcome, scan.Outcome)
			assert.Equal(t, tt.message, scan.Message)
			assert.Nil(t, scan.Claims)
			assert.Zero(t, scan.Age)
		})
	}
}

func TestService_OtherSecretRejects(t *testing.T) {
	t.Parallel()

	card, err := newService(t, issuedAt).Issue(context.Background(), record())
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Secret = "base64:" + strings.Repeat("QUJD", 8)
	other, err := idcard.NewService(cfg, idcard.WithClock(func() time.Time { return issuedAt }))
	require.NoError(t, err)

	assert.Equal(t, cardseal.OutcomeInvalid, other.Verify(context.Background(), card.Token).Outcome)
}

func TestService_IssueInvalidRecord(t *testing.T) {
	t.Parallel()

	rec := record()
	rec.FamilyName = "  "
	rec.AcademicYear = "2024-2026"

	card, err := newService(t, issuedAt).Issue(context.Background(), rec)
	require.Error(t, err)
	assert.Nil(t, card)
	assert.ErrorIs(t, err, claims.ErrInvalidRecord)

	verrs := validator.ExtractValidationErrors(err)
	assert.True(t, verrs.Has("family_name"))
	assert.True(t, verrs.Has("academic_year"))
}

func TestService_AuditTrail(t *testing.T) {
	t.Parallel()

	store := audit.NewMemoryStorage()
	svc := newService(t, issuedAt, idcard.WithAuditStorage(store))
	ctx := idcard.WithScanner(context.Background(), "gate-2")

	card, err := svc.Issue(context.Background(), record())
	require.NoError(t, err)

	tok, err := cardseal.ParseToken(card.Token)
	require.NoError(t, err)
	tok.SecurityToken[0] ^= 0x01

	assert.True(t, svc.Verify(ctx, card.Token).Valid())
	assert.False(t, svc.Verify(ctx, tok.Encode()).Valid())

	events := store.Events()
	require.Len(t, events, 2)

	assert.Equal(t, idcard.AuditActionIssue, events[0].Action)
	assert.Equal(t, audit.ResultSuccess, events[0].Result)
	assert.Equal(t, "42", events[0].ResourceID)

	assert.Equal(t, cardseal.AuditAction, events[1].Action)
	assert.Equal(t, audit.ResultFailure, events[1].Result)
	assert.Equal(t, "gate-2", events[1].ScannerID)
	assert.Equal(t, "binding", events[1].Metadata["stage"])
	assert.Equal(t, issuedAt, events[1].CreatedAt)
}

func TestScannerFromContext(t *testing.T) {
	t.Parallel()

	_, ok := idcard.ScannerFromContext(context.Background())
	assert.False(t, ok)

	_, ok = idcard.ScannerFromContext(idcard.WithScanner(context.Background(), ""))
	assert.False(t, ok)

	id, ok := idcard.ScannerFromContext(idcard.WithScanner(context.Background(), "gate-7"))
	assert.True(t, ok)
	assert.Equal(t, "gate-7", id)
}
