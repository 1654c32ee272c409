// Package keyring derives the key pair used to seal student ID card tokens.
//
// A single long-term secret is expanded with HKDF-SHA256 into two independent
// 32-byte keys: a confidentiality key for AES-256-GCM and an integrity key for
// HMAC-SHA256. Each key is derived with its own label ("confidentiality",
// "integrity") under a fixed protocol salt, so learning one key reveals
// neither the other key nor the secret.
//
// # Usage
//
//	import "github.com/schoolkit/idcard/pkg/keyring"
//
//	keys, err := keyring.FromString(os.Getenv("IDCARD_SECRET"))
//	if err != nil {
//	    log.Fatal(err) // missing or weak secret, never fall back to a default
//	}
//
// A "base64:" value may carry surrounding whitespace. A raw value is hashed
// byte for byte, so a stray newline yields different keys.
//
// # Error Handling
//
// Every error caused by missing or unusable key material wraps
// ErrInvalidConfiguration. Detail is available through ErrSecretNotSet,
// ErrSecretTooShort and ErrInvalidEncoding:
//
//	if errors.Is(err, keyring.ErrInvalidConfiguration) {
//	    // halt startup
//	}
package keyring
