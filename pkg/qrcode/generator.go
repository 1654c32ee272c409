package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// Error variables for QR code generation
var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrContentTooLarge is returned when content exceeds the symbol capacity.
	ErrContentTooLarge = errors.New("content exceeds QR code capacity")
	// ErrorFailedToGenerateQRCode is returned when the QR code generation fails.
	ErrorFailedToGenerateQRCode = errors.New("failed to generate QR code")
)

const (
	// defaultSize is the size in pixels used when no size is specified
	defaultSize = 256

	// MaxContentLength is the byte-mode capacity of a version 40 symbol at
	// the medium recovery level.
	MaxContentLength = 2331

	recoveryLevel = skipqrcode.Medium
)

// Fits reports whether content can be encoded in a single symbol.
func Fits(content string) bool {
	return len(content) <= MaxContentLength
}

// Generate creates a QR code image in PNG format with the given content.
// Returns the image as a byte slice or an error if generation fails.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if !Fits(content) {
		return nil, ErrContentTooLarge
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(content, recoveryLevel, size)
	if err != nil {
		return nil, errors.Join(ErrorFailedToGenerateQRCode, err)
	}
	return png, nil
}

// GenerateBase64Image returns the PNG produced by Generate as a data URI,
// ready for an <img src="..."> attribute in a card preview.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}
