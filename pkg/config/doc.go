// Package config loads the IDCARD_* settings from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads .env files into the process environment. It is always
//     explicit; nothing reads ./.env behind the caller's back.
//   - Load parses the environment into a struct annotated with env tags
//     (idcard.Config, pg.Config, redis.Config) and keeps the first
//     successful result per type. ResetCache and ForceReloadConfig exist
//     for tests.
//
// # Usage
//
//	if err := config.LoadEnv("/etc/idcard/scanner.env"); err != nil {
//	    return err
//	}
//	var cfg idcard.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err // e.g. IDCARD_SECRET not set
//	}
//
// Variables already present in the process environment win over file values.
//
// # Error Handling
//
//   - ErrParsingConfig: env vars could not be parsed into the struct.
//   - ErrLoadingEnvFile: a requested .env file could not be read.
//   - ErrNilPointer: nil pointer passed to Load or ForceReloadConfig.
package config
