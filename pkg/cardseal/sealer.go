package cardseal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"io"

	"github.com/schoolkit/idcard/pkg/claims"
	"github.com/schoolkit/idcard/pkg/keyring"
)

// contextTag is mixed into the AEAD associated data so ciphertexts from this
// protocol cannot be replayed into another one sharing the key.
const contextTag = "schoolkit/idcard"

// suite holds the primitives built from a Keyring. It carries no per-call
// state and is shared by Sealer and Opener.
type suite struct {
	aead   cipher.AEAD
	macKey []byte
}

func newSuite(keys *keyring.Keyring) (*suite, error) {
	if keys == nil {
		return nil, errors.Join(ErrInvalidConfiguration, ErrNilKeyring)
	}
	block, err := aes.NewCipher(keys.ConfidentialityKey())
	if err != nil {
		return nil, errors.Join(ErrInvalidConfiguration, err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfiguration, err)
	}
	return &suite{aead: aead, macKey: keys.IntegrityKey()}, nil
}

// associatedData binds the context tag and the full header to the AEAD tag.
func associatedData(t *SealedToken) []byte {
	h := t.header()
	ad := make([]byte, 0, len(contextTag)+len(h))
	ad = append(ad, contextTag...)
	return append(ad, h...)
}

// mac computes HMAC-SHA256 over version ‖ algorithm ‖ ciphertext+tag ‖
// nonce ‖ issued_at. Plaintext never enters the MAC.
func (s *suite) mac(t *SealedToken) []byte {
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(t.IssuedAt))

	m := hmac.New(sha256.New, s.macKey)
	m.Write([]byte{t.Version, byte(t.Algorithm)})
	m.Write(t.Ciphertext)
	m.Write(t.Nonce[:])
	m.Write(ts[:])
	return m.Sum(nil)
}

// securityToken is SHA-256(issued_at ‖ nonce ‖ SHA-256(claims)).
func securityToken(issuedAt int64, nonce []byte, claimsDigest [sha256.Size]byte) [SecurityTokenSize]byte {
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(issuedAt))

	h := sha256.New()
	h.Write(ts[:])
	h.Write(nonce)
	h.Write(claimsDigest[:])

	var out [SecurityTokenSize]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Sealer encrypts and signs claims into card tokens. Safe for concurrent use.
type Sealer struct {
	suite *suite
	opts  *options
}

func NewSealer(keys *keyring.Keyring, opts ...Option) (*Sealer, error) {
	s, err := newSuite(keys)
	if err != nil {
		return nil, err
	}
	return &Sealer{suite: s, opts: applyOptions(opts)}, nil
}

// Seal returns the transport string for c. It fails only on unusable claims
// or when the random source is unavailable.
func (s *Sealer) Seal(c claims.Claims) (string, error) {
	tok, err := s.SealToken(c)
	if err != nil {
		return "", err
	}
	encoded := tok.Encode()
	if len(encoded) > MaxEncodedLength {
		return "", errors.Join(ErrInvalidClaims, ErrTokenTooLarge)
	}
	return encoded, nil
}

// SealToken is Seal without the transport encoding.
func (s *Sealer) SealToken(c claims.Claims) (*SealedToken, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidClaims, err)
	}
	plaintext, err := claims.Marshal(c)
	if err != nil {
		return nil, errors.Join(ErrInvalidClaims, err)
	}

	tok := &SealedToken{
		Version:   Version,
		Algorithm: AlgAES256GCMHMACSHA256,
		IssuedAt:  s.opts.now().Unix(),
	}
	if _, err := io.ReadFull(s.opts.random, tok.Nonce[:]); err != nil {
		return nil, errors.Join(ErrRandomnessUnavailable, err)
	}

	tok.Ciphertext = s.suite.aead.Seal(nil, tok.Nonce[:], pad(plaintext), associatedData(tok))
	copy(tok.MAC[:], s.suite.mac(tok))
	tok.SecurityToken = securityToken(tok.IssuedAt, tok.Nonce[:], sha256.Sum256(plaintext))
	return tok, nil
}
