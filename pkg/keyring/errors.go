package keyring

import "errors"

var (
	// ErrInvalidConfiguration marks every failure caused by missing or unusable
	// key material. Startup code should treat it as fatal.
	ErrInvalidConfiguration = errors.New("invalid key configuration")

	ErrSecretNotSet    = errors.New("secret is not set")
	ErrSecretTooShort  = errors.New("secret is too short")
	ErrInvalidEncoding = errors.New("secret has invalid encoding")

	// ErrKeyDerivationFailed is returned when HKDF cannot produce key material.
	ErrKeyDerivationFailed = errors.New("key derivation failed")

	ErrFailedToGenerateSecret = errors.New("failed to generate secret")
)
