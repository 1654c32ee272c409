package cardseal

import (
	"errors"

	"github.com/schoolkit/idcard/pkg/keyring"
)

// Failure classes. Every error returned by Open matches exactly one of them.
var (
	// ErrMalformedToken: the string cannot be parsed; it was never a valid token.
	ErrMalformedToken = errors.New("malformed card token")
	// ErrTokenTampered: an integrity check failed; forged or corrupted card.
	ErrTokenTampered = errors.New("card token failed integrity check")
	// ErrTokenExpired: authentic but outside the freshness or card validity window.
	ErrTokenExpired = errors.New("card token expired")
)

// ErrInvalidConfiguration is the keyring configuration error, re-exported so
// callers of this package need a single import to detect startup failures.
var ErrInvalidConfiguration = keyring.ErrInvalidConfiguration

// Sealing errors.
var (
	ErrNilKeyring            = errors.New("keyring is nil")
	ErrInvalidClaims         = errors.New("claims cannot be sealed")
	ErrRandomnessUnavailable = errors.New("secure random source unavailable")
	ErrTokenTooLarge         = errors.New("sealed token exceeds maximum length")
)

// Failure details, joined with one of the classes above.
var (
	ErrUnsupportedVersion   = errors.New("unsupported token version")
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	ErrInvalidEncoding      = errors.New("invalid token encoding")
	ErrInvalidLength        = errors.New("invalid token length")
	ErrInvalidTimestamp     = errors.New("invalid issued-at timestamp")
	ErrInvalidPadding       = errors.New("invalid plaintext padding")
	ErrMACMismatch          = errors.New("hmac mismatch")
	ErrDecryptionFailed     = errors.New("decryption failed")
	ErrBindingMismatch      = errors.New("security token does not match claims")
	ErrNotYetValid          = errors.New("token issued in the future")
	ErrEnvelopeStale        = errors.New("token freshness window exceeded")
	ErrCardExpired          = errors.New("card validity exceeded")
)
