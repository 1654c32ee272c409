package keyring

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	// MinSecretSize is the entropy floor for the long-term secret.
	MinSecretSize = 16

	// KeySize is the size of each derived key (AES-256 and HMAC-SHA256).
	KeySize = 32

	// GeneratedSecretSize is the size of secrets produced by GenerateSecret.
	GeneratedSecretSize = 32

	// base64Prefix marks an encoded secret in configuration values.
	base64Prefix = "base64:"

	// salt binds derivation to this protocol so the same secret reused in
	// another system yields unrelated keys.
	salt = "schoolkit-idcard-keyring-v1"

	confidentialityLabel = "confidentiality"
	integrityLabel       = "integrity"
)

// Keyring holds the key pair derived from the long-term secret.
// It is immutable after New returns and safe for concurrent use.
type Keyring struct {
	confidentiality [KeySize]byte
	integrity       [KeySize]byte
}

// New derives the confidentiality and integrity keys from secret.
// The secret is not retained.
func New(secret []byte) (*Keyring, error) {
	if len(secret) == 0 {
		return nil, errors.Join(ErrInvalidConfiguration, ErrSecretNotSet)
	}
	if len(secret) < MinSecretSize {
		return nil, errors.Join(ErrInvalidConfiguration, ErrSecretTooShort)
	}

	k := &Keyring{}
	if err := derive(secret, confidentialityLabel, k.confidentiality[:]); err != nil {
		return nil, err
	}
	if err := derive(secret, integrityLabel, k.integrity[:]); err != nil {
		return nil, err
	}
	return k, nil
}

// FromString builds a Keyring from a configuration value. Values prefixed with
// "base64:" are decoded with standard base64 first, ignoring surrounding
// whitespace; anything else is used as raw bytes, exactly as given. A value
// made only of whitespace counts as unset.
func FromString(s string) (*Keyring, error) {
	trimmed := strings.TrimSpace(s)
	if encoded, ok := strings.CutPrefix(trimmed, base64Prefix); ok {
		secret, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, errors.Join(ErrInvalidConfiguration, ErrInvalidEncoding, err)
		}
		defer clearBytes(secret)
		return New(secret)
	}
	if trimmed == "" {
		return New(nil)
	}
	return New([]byte(s))
}

// ConfidentialityKey returns a copy of the AEAD key.
func (k *Keyring) ConfidentialityKey() []byte {
	out := make([]byte, KeySize)
	copy(out, k.confidentiality[:])
	return out
}

// IntegrityKey returns a copy of the HMAC key.
func (k *Keyring) IntegrityKey() []byte {
	out := make([]byte, KeySize)
	copy(out, k.integrity[:])
	return out
}

// derive fills dst with HKDF-SHA256 output for the given label.
func derive(secret []byte, label string, dst []byte) error {
	r := hkdf.New(sha256.New, secret, []byte(salt), []byte(label))
	if _, err := io.ReadFull(r, dst); err != nil {
		return errors.Join(ErrInvalidConfiguration, ErrKeyDerivationFailed, err)
	}
	return nil
}

// GenerateSecret creates a random secret suitable for New.
func GenerateSecret() ([]byte, error) {
	secret := make([]byte, GeneratedSecretSize)
	if _, err := rand.Read(secret); err != nil {
		return nil, errors.Join(ErrFailedToGenerateSecret, err)
	}
	return secret, nil
}

// GenerateEncodedSecret returns a new secret in the "base64:" form accepted by
// FromString, ready to be stored in the environment.
func GenerateEncodedSecret() (string, error) {
	secret, err := GenerateSecret()
	if err != nil {
		return "", err
	}
	defer clearBytes(secret)
	return base64Prefix + base64.StdEncoding.EncodeToString(secret), nil
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
