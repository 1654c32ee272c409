package pg

import "time"

// Config holds the audit database settings. An empty ConnectionString
// disables the Postgres audit trail.
type Config struct {
	ConnectionString string        `env:"IDCARD_PG_URL"`
	MaxOpenConns     int32         `env:"IDCARD_PG_MAX_OPEN_CONNS" envDefault:"4"`
	MaxIdleConns     int32         `env:"IDCARD_PG_MAX_IDLE_CONNS" envDefault:"1"`
	MaxConnIdleTime  time.Duration `env:"IDCARD_PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime  time.Duration `env:"IDCARD_PG_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"IDCARD_PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"IDCARD_PG_RETRY_INTERVAL" envDefault:"2s"`

	MigrationsTable string `env:"IDCARD_PG_MIGRATIONS_TABLE" envDefault:"idcard_schema_migrations"`
}

// Enabled reports whether a connection string is configured.
func (c Config) Enabled() bool {
	return c.ConnectionString != ""
}
