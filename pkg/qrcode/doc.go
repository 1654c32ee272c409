// Package qrcode renders sealed card tokens as QR code images, either as raw
// PNG bytes for printing or as a data URI for embedding in an HTML card
// preview.
//
// The package is a thin wrapper around github.com/skip2/go-qrcode. It always
// encodes at the medium recovery level, which tolerates worn or scratched
// cards while leaving room for the longest token the sealer produces.
//
// # Usage
//
//	import "github.com/schoolkit/idcard/pkg/qrcode"
//
//	png, err := qrcode.Generate(token, 256)
//	if err != nil {
//		// handle error
//	}
//
//	dataURI, err := qrcode.GenerateBase64Image(token, 256)
//
// # Error Handling
//
//   - ErrEmptyContent: the content argument was empty.
//   - ErrContentTooLarge: the content exceeds MaxContentLength.
//   - ErrorFailedToGenerateQRCode: the underlying library failed.
//
// Use Fits to check a payload before rendering.
package qrcode
