package cardseal

import (
	"context"
	"crypto/hmac"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/schoolkit/idcard/pkg/audit"
	"github.com/schoolkit/idcard/pkg/claims"
	"github.com/schoolkit/idcard/pkg/keyring"
	"github.com/schoolkit/idcard/pkg/logger"
)

// AuditAction is the audit trail action recorded for rejected cards.
const AuditAction = "idcard.verify"

// Verification stages, reported in logs and audit metadata.
const (
	stageParse   = "parse"
	stageMAC     = "hmac"
	stageDecrypt = "decrypt"
	stageDecode  = "decode"
	stageBinding = "binding"
	stageExpiry  = "expiry"
)

// Verified is the result of a successful Open.
type Verified struct {
	Claims    claims.Claims
	Algorithm AlgorithmID
	// Age is the time elapsed since sealing, measured when Open started.
	Age      time.Duration
	IssuedAt time.Time
}

// Opener verifies and decrypts card tokens. Safe for concurrent use.
type Opener struct {
	suite *suite
	opts  *options
}

func NewOpener(keys *keyring.Keyring, opts ...Option) (*Opener, error) {
	s, err := newSuite(keys)
	if err != nil {
		return nil, err
	}
	return &Opener{suite: s, opts: applyOptions(opts)}, nil
}

// FreshnessWindow returns the configured maximum envelope age.
func (o *Opener) FreshnessWindow() time.Duration {
	return o.opts.freshness
}

// Open verifies token and returns its claims. Checks run in a fixed order and
// stop at the first failure; the returned error wraps exactly one of
// ErrMalformedToken, ErrTokenTampered or ErrTokenExpired plus a detail error.
//
// The context only carries request-scoped values for logging and auditing.
func (o *Opener) Open(ctx context.Context, token string) (*Verified, error) {
	now := o.opts.now()

	tok, err := ParseToken(token)
	if err != nil {
		return nil, o.reject(ctx, stageParse, nil, err)
	}

	if subtle.ConstantTimeCompare(o.suite.mac(tok), tok.MAC[:]) != 1 {
		return nil, o.reject(ctx, stageMAC, tok, errors.Join(ErrTokenTampered, ErrMACMismatch))
	}

	padded, err := o.suite.aead.Open(nil, tok.Nonce[:], tok.Ciphertext, associatedData(tok))
	if err != nil {
		// Wrong key and wrong tag must stay indistinguishable.
		return nil, o.reject(ctx, stageDecrypt, tok, errors.Join(ErrTokenTampered, ErrDecryptionFailed))
	}

	plaintext, err := unpad(padded)
	if err != nil {
		return nil, o.reject(ctx, stageDecode, tok, errors.Join(ErrMalformedToken, err))
	}
	c, err := claims.Unmarshal(plaintext)
	if err != nil {
		return nil, o.reject(ctx, stageDecode, tok, errors.Join(ErrMalformedToken, err))
	}

	digest, err := claims.Digest(c)
	if err != nil {
		return nil, o.reject(ctx, stageDecode, tok, errors.Join(ErrMalformedToken, err))
	}
	expected := securityToken(tok.IssuedAt, tok.Nonce[:], digest)
	if !hmac.Equal(expected[:], tok.SecurityToken[:]) {
		return nil, o.reject(ctx, stageBinding, tok, errors.Join(ErrTokenTampered, ErrBindingMismatch))
	}

	issuedAt := time.Unix(tok.IssuedAt, 0).UTC()
	age := now.Sub(issuedAt)
	switch {
	case age < 0:
		return nil, o.reject(ctx, stageExpiry, tok, errors.Join(ErrTokenExpired, ErrNotYetValid))
	case age > o.opts.freshness:
		return nil, o.reject(ctx, stageExpiry, tok, errors.Join(ErrTokenExpired, ErrEnvelopeStale))
	case c.Expired(now):
		return nil, o.reject(ctx, stageExpiry, tok, errors.Join(ErrTokenExpired, ErrCardExpired))
	}

	o.opts.logger.DebugContext(ctx, "card token verified",
		logger.Component("cardseal"),
		logger.StudentID(c.StudentID),
		logger.SchoolID(c.SchoolID),
		logger.Algorithm(tok.Algorithm.String()),
		logger.TokenAge(age),
	)

	return &Verified{
		Claims:    c,
		Algorithm: tok.Algorithm,
		Age:       age,
		IssuedAt:  issuedAt,
	}, nil
}

// reject logs full failure detail server-side and records integrity
// failures in the audit trail. It returns err unchanged.
func (o *Opener) reject(ctx context.Context, stage string, tok *SealedToken, err error) error {
	attrs := []any{
		logger.Component("cardseal"),
		logger.Stage(stage),
		logger.Outcome(Classify(err).String()),
		logger.Error(err),
	}
	if tok != nil {
		attrs = append(attrs,
			logger.Algorithm(tok.Algorithm.String()),
			slog.Int64("issued_at", tok.IssuedAt),
			slog.String("nonce", hex.EncodeToString(tok.Nonce[:])),
		)
	}

	if !errors.Is(err, ErrTokenTampered) {
		o.opts.logger.InfoContext(ctx, "card token rejected", attrs...)
		return err
	}

	o.opts.logger.WarnContext(ctx, "card token failed integrity check", attrs...)

	if o.opts.audit != nil {
		opts := []audit.EventOption{
			audit.WithResource("student_card", ""),
			audit.WithResult(audit.ResultFailure),
			audit.WithMetadata("stage", stage),
		}
		if tok != nil {
			opts = append(opts,
				audit.WithMetadata("nonce", hex.EncodeToString(tok.Nonce[:])),
				audit.WithMetadata("issued_at", tok.IssuedAt),
			)
		}
		if aerr := o.opts.audit.LogError(ctx, AuditAction, err, opts...); aerr != nil {
			o.opts.logger.ErrorContext(ctx, "failed to record audit event", logger.Error(aerr))
		}
	}
	return err
}
