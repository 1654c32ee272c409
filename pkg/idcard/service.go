package idcard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/schoolkit/idcard/pkg/audit"
	"github.com/schoolkit/idcard/pkg/cardseal"
	"github.com/schoolkit/idcard/pkg/claims"
	"github.com/schoolkit/idcard/pkg/keyring"
	"github.com/schoolkit/idcard/pkg/logger"
	"github.com/schoolkit/idcard/pkg/qrcode"
)

// AuditActionIssue is recorded for every issued card.
const AuditActionIssue = "idcard.issue"

// Card is an issued student ID card.
type Card struct {
	Claims claims.Claims
	Token  string
	// PNG is the QR code image of Token.
	PNG []byte
}

// Scan is the operator-facing verdict for a scanned card. It never says
// which check rejected the card.
type Scan struct {
	Outcome cardseal.Outcome
	Message string
	// Claims is set only when Outcome is valid.
	Claims *claims.Claims
	Age    time.Duration
}

// Valid reports whether the card was accepted.
func (s Scan) Valid() bool {
	return s.Outcome == cardseal.OutcomeValid
}

// Service issues and verifies cards. Build it once at startup; it is safe for
// concurrent use.
type Service struct {
	builder *claims.Builder
	codec   *cardseal.Codec
	trail   audit.Logger
	log     *slog.Logger
	qrSize  int
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	keys, err := keyring.FromString(cfg.Secret)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	log := o.logger.With(logger.Component("idcard"))

	var trail audit.Logger
	if o.storage != nil {
		trail = audit.NewLogger(o.storage,
			audit.WithClock(o.now),
			audit.WithScannerIDExtractor(ScannerFromContext),
		)
	}

	sealOpts := []cardseal.Option{
		cardseal.WithClock(o.now),
		cardseal.WithFreshnessWindow(cfg.FreshnessWindow),
		cardseal.WithLogger(o.logger),
		cardseal.WithRandom(o.random),
	}
	if trail != nil {
		sealOpts = append(sealOpts, cardseal.WithAuditLogger(trail))
	}
	codec, err := cardseal.New(keys, sealOpts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &Service{
		builder: claims.NewBuilder(claims.WithValidity(cfg.Validity), claims.WithClock(o.now)),
		codec:   codec,
		trail:   trail,
		log:     log,
		qrSize:  cfg.QRSize,
	}, nil
}

// Issue builds claims from rec, seals them and renders the QR code.
// Record problems are returned as claims.ErrInvalidRecord joined with
// validator.ValidationErrors.
func (s *Service) Issue(ctx context.Context, rec claims.Record) (*Card, error) {
	c, err := s.builder.Build(rec)
	if err != nil {
		return nil, err
	}

	token, err := s.codec.Seal(c)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to seal card", logger.StudentID(c.StudentID), logger.Error(err))
		return nil, err
	}

	png, err := qrcode.Generate(token, s.qrSize)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	s.log.InfoContext(ctx, "card issued",
		logger.StudentID(c.StudentID),
		logger.SchoolID(c.SchoolID),
		slog.Time("expires_at", c.ExpiresAt),
	)
	if s.trail != nil {
		if err := s.trail.Log(ctx, AuditActionIssue,
			audit.WithResource("student_card", strconv.FormatInt(c.StudentID, 10)),
			audit.WithMetadata("school_id", c.SchoolID),
			audit.WithMetadata("matricule", c.Matricule),
		); err != nil {
			s.log.ErrorContext(ctx, "failed to record audit event", logger.Error(err))
		}
	}

	return &Card{Claims: c, Token: token, PNG: png}, nil
}

// Verify opens a scanned token and collapses the result for the operator.
// Failure detail goes to the logger and audit trail only.
func (s *Service) Verify(ctx context.Context, token string) Scan {
	v, err := s.codec.Open(ctx, token)
	outcome := cardseal.Classify(err)
	scan := Scan{Outcome: outcome, Message: outcome.Message()}

	scanner, _ := ScannerFromContext(ctx)
	if err != nil {
		s.log.InfoContext(ctx, "card scan rejected", logger.Outcome(outcome.String()), logger.ScannerID(scanner))
		return scan
	}

	scan.Claims = &v.Claims
	scan.Age = v.Age
	s.log.InfoContext(ctx, "card scan accepted",
		logger.Outcome(outcome.String()),
		logger.ScannerID(scanner),
		logger.StudentID(v.Claims.StudentID),
		logger.TokenAge(v.Age),
	)
	return scan
}

// FreshnessWindow returns the configured maximum token age.
func (s *Service) FreshnessWindow() time.Duration {
	return s.codec.FreshnessWindow()
}
