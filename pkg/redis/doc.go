// Package redis connects to Redis with go-redis/v9 for the audit event
// stream.
//
// Config.Enabled reports whether IDCARD_REDIS_URL is set. When it is, the
// CLI connects and appends audit events to Config.Stream through
// audit.NewRedisStreamStorage, where a security dashboard can consume them.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	storage := audit.NewRedisStreamStorage(client, cfg.Stream, cfg.StreamMaxLen)
package redis
