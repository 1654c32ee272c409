package idcard

import "errors"

var (
	// ErrInvalidConfig is returned by NewService and Config.Validate. It is
	// joined with keyring.ErrInvalidConfiguration when the secret is unusable.
	ErrInvalidConfig = errors.New("invalid id card configuration")

	ErrRenderFailed = errors.New("failed to render card image")
)
