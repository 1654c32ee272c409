// Package cardseal seals student ID card claims into opaque, URL-safe tokens
// and verifies them offline.
//
// # Architecture
//
// Sealing runs these steps with keys from a keyring.Keyring:
//
//  1. Canonical serialization of the claims (claims.Marshal), padded to
//     16-byte blocks.
//  2. A fresh 128-bit nonce from crypto/rand.
//  3. AES-256-GCM encryption under the confidentiality key. The associated
//     data binds a context tag, the version, the algorithm id, the nonce and
//     the issue time.
//  4. HMAC-SHA256 under the integrity key over the version, algorithm id,
//     ciphertext+tag, nonce and issue time.
//  5. A security token SHA-256(issued_at ‖ nonce ‖ SHA-256(claims)) binding
//     the envelope to these exact claims.
//
// Open reverses this with fail-closed, ordered checks: parse, HMAC, AEAD,
// claims decoding, security token, then the freshness window and the
// card-level expiry. The first failing check aborts.
//
// # Wire Format
//
//	version:1 | algorithm:1 | nonce:16 | issued_at:8 | ciphertext+tag:16n | hmac:32 | security_token:32
//
// encoded with unpadded base64url and capped at MaxEncodedLength characters.
//
// # Usage
//
//	keys, err := keyring.FromString(cfg.Secret)
//	if err != nil {
//	    return err // fatal: ErrInvalidConfiguration
//	}
//	codec, err := cardseal.New(keys,
//	    cardseal.WithFreshnessWindow(24*time.Hour),
//	    cardseal.WithLogger(log),
//	)
//
//	token, err := codec.Seal(c)
//
//	v, err := codec.Open(ctx, token)
//	switch cardseal.Classify(err) {
//	case cardseal.OutcomeValid:   // v.Claims, v.Age
//	case cardseal.OutcomeExpired: // "expired, reissue"
//	default:                      // "invalid card"
//	}
//
// # Error Handling
//
// Open errors wrap one class: ErrMalformedToken (cannot be parsed),
// ErrTokenTampered (forged or corrupted) or ErrTokenExpired (authentic but out
// of its window), joined with a detail error such as ErrMACMismatch or
// ErrCardExpired. Details belong in server logs; operators should only see
// Classify(err).Message().
//
// Sealer, Opener and Codec hold no mutable state and are safe for concurrent
// use.
package cardseal
