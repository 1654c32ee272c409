package idcard

import (
	"errors"
	"time"
)

// Config is loaded from the environment with config.Load.
type Config struct {
	// Secret is the long-term card secret, raw or "base64:" prefixed.
	Secret          string        `env:"IDCARD_SECRET,required"`
	Validity        time.Duration `env:"IDCARD_VALIDITY" envDefault:"8760h"`
	FreshnessWindow time.Duration `env:"IDCARD_FRESHNESS_WINDOW" envDefault:"24h"`
	QRSize          int           `env:"IDCARD_QR_SIZE" envDefault:"256"`
}

const maxQRSize = 4096

func (c Config) Validate() error {
	switch {
	case c.Secret == "":
		return errors.Join(ErrInvalidConfig, errors.New("secret is required"))
	case c.Validity <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("validity must be positive"))
	case c.FreshnessWindow <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("freshness window must be positive"))
	case c.QRSize <= 0, c.QRSize > maxQRSize:
		return errors.Join(ErrInvalidConfig, errors.New("qr size out of range"))
	}
	return nil
}
