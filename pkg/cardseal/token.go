package cardseal

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"math"
)

const (
	// Version is the only wire format version produced and accepted.
	Version uint8 = 1

	NonceSize         = 16
	TagSize           = 16
	MACSize           = 32
	SecurityTokenSize = 32

	// blockSize is the plaintext padding granularity. Ciphertext lengths are
	// always a multiple of it, which hides the exact length of names and lets
	// the parser reject truncated tokens structurally.
	blockSize = 16

	// MaxEncodedLength keeps tokens well inside QR code capacity at the
	// medium recovery level.
	MaxEncodedLength = 2048

	headerSize  = 1 + 1 + NonceSize + 8
	trailerSize = MACSize + SecurityTokenSize
	minSealed   = blockSize + TagSize
)

// AlgorithmID names the primitive suite of a token.
type AlgorithmID uint8

const (
	// AlgAES256GCMHMACSHA256 is AES-256-GCM with a 16-byte nonce, an
	// HMAC-SHA256 envelope MAC and a SHA-256 security token.
	AlgAES256GCMHMACSHA256 AlgorithmID = 1
)

func (a AlgorithmID) String() string {
	switch a {
	case AlgAES256GCMHMACSHA256:
		return "A256GCM-HS256"
	default:
		return "unknown"
	}
}

var encoding = base64.RawURLEncoding.Strict()

// SealedToken is the parsed form of a card token. Its fields are not
// trustworthy until Opener has verified them.
//
// Wire layout:
//
//	version:1 | algorithm:1 | nonce:16 | issued_at:8 (BE unix seconds) |
//	ciphertext+tag:n*16 | hmac:32 | security_token:32
type SealedToken struct {
	Version       uint8
	Algorithm     AlgorithmID
	Nonce         [NonceSize]byte
	IssuedAt      int64
	Ciphertext    []byte
	MAC           [MACSize]byte
	SecurityToken [SecurityTokenSize]byte
}

// Bytes returns the binary wire form.
func (t *SealedToken) Bytes() []byte {
	out := make([]byte, 0, headerSize+len(t.Ciphertext)+trailerSize)
	out = append(out, t.header()...)
	out = append(out, t.Ciphertext...)
	out = append(out, t.MAC[:]...)
	out = append(out, t.SecurityToken[:]...)
	return out
}

// Encode returns the URL-safe transport string.
func (t *SealedToken) Encode() string {
	return encoding.EncodeToString(t.Bytes())
}

// header is version ‖ algorithm ‖ nonce ‖ issued_at.
func (t *SealedToken) header() []byte {
	h := make([]byte, headerSize)
	h[0] = t.Version
	h[1] = byte(t.Algorithm)
	copy(h[2:2+NonceSize], t.Nonce[:])
	binary.BigEndian.PutUint64(h[2+NonceSize:], uint64(t.IssuedAt))
	return h
}

// ParseToken decodes a transport string. It checks structure only; no
// cryptographic verification happens here. Every error wraps
// ErrMalformedToken.
func ParseToken(s string) (*SealedToken, error) {
	if len(s) > MaxEncodedLength {
		return nil, errors.Join(ErrMalformedToken, ErrInvalidLength)
	}
	raw, err := encoding.DecodeString(s)
	if err != nil {
		return nil, errors.Join(ErrMalformedToken, ErrInvalidEncoding, err)
	}
	return parseBytes(raw)
}

func parseBytes(raw []byte) (*SealedToken, error) {
	if len(raw) < headerSize+minSealed+trailerSize {
		return nil, errors.Join(ErrMalformedToken, ErrInvalidLength)
	}

	ctLen := len(raw) - headerSize - trailerSize
	if ctLen%blockSize != 0 {
		return nil, errors.Join(ErrMalformedToken, ErrInvalidLength)
	}

	t := &SealedToken{
		Version:   raw[0],
		Algorithm: AlgorithmID(raw[1]),
	}
	if t.Version != Version {
		return nil, errors.Join(ErrMalformedToken, ErrUnsupportedVersion)
	}
	if t.Algorithm != AlgAES256GCMHMACSHA256 {
		return nil, errors.Join(ErrMalformedToken, ErrUnsupportedAlgorithm)
	}

	copy(t.Nonce[:], raw[2:2+NonceSize])

	issued := binary.BigEndian.Uint64(raw[2+NonceSize : headerSize])
	if issued == 0 || issued > math.MaxInt64 {
		return nil, errors.Join(ErrMalformedToken, ErrInvalidTimestamp)
	}
	t.IssuedAt = int64(issued)

	body := raw[headerSize:]
	t.Ciphertext = append([]byte(nil), body[:ctLen]...)
	copy(t.MAC[:], body[ctLen:ctLen+MACSize])
	copy(t.SecurityToken[:], body[ctLen+MACSize:])
	return t, nil
}

// pad appends 0x80 followed by zeros up to the next block boundary
// (ISO/IEC 7816-4). At least one byte is always added.
func pad(data []byte) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	out[len(data)] = 0x80
	return out
}

func unpad(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidPadding
	}
	for i := len(data) - 1; i >= len(data)-blockSize; i-- {
		switch data[i] {
		case 0x00:
			continue
		case 0x80:
			return data[:i], nil
		default:
			return nil, ErrInvalidPadding
		}
	}
	return nil, ErrInvalidPadding
}
