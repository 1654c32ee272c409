package cardseal

import "github.com/schoolkit/idcard/pkg/keyring"

// Codec bundles a Sealer and an Opener over the same keyring. Build one at
// startup and inject it wherever cards are issued or scanned.
type Codec struct {
	*Sealer
	*Opener
}

func New(keys *keyring.Keyring, opts ...Option) (*Codec, error) {
	s, err := NewSealer(keys, opts...)
	if err != nil {
		return nil, err
	}
	o, err := NewOpener(keys, opts...)
	if err != nil {
		return nil, err
	}
	return &Codec{Sealer: s, Opener: o}, nil
}
