package redis

import "time"

// Config holds the audit stream settings. An empty ConnectionURL disables
// the Redis audit trail.
type Config struct {
	ConnectionURL  string        `env:"IDCARD_REDIS_URL"`
	Stream         string        `env:"IDCARD_REDIS_AUDIT_STREAM" envDefault:"idcard:audit"`
	StreamMaxLen   int64         `env:"IDCARD_REDIS_AUDIT_MAXLEN" envDefault:"100000"`
	RetryAttempts  int           `env:"IDCARD_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"IDCARD_REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"IDCARD_REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
