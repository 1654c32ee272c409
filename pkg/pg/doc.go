// Package pg connects to PostgreSQL with pgx/v5 and applies the schema of
// the audit trail with goose/v3.
//
// The database is optional: Config.Enabled reports whether IDCARD_PG_URL is
// set. When it is, the CLI opens a pool, runs Migrate and stores audit events
// through audit.NewPostgresStorage.
//
// # Usage
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//	    return err
//	}
//
// Migrations are embedded in the binary; there is no migrations directory to
// ship alongside it.
package pg
