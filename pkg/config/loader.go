package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// registry holds one parsed value per configuration type. Only successful
// parses are stored, so a failed Load can be retried once the environment
// is fixed.
type registry struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}

var loaded = &registry{values: make(map[reflect.Type]any)}

// Load parses the process environment into v using its env struct tags.
// The first successful parse of a type is kept; later calls for the same
// type receive a copy of it even if the environment changed since.
//
// Load never reads .env files. Call LoadEnv first when a file is wanted;
// cmd/idcard does that for its -env flag.
//
//	var cfg idcard.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	key := reflect.TypeOf((*T)(nil)).Elem()

	loaded.mu.Lock()
	defer loaded.mu.Unlock()

	if cached, ok := loaded.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	loaded.values[key] = parsed
	*v = parsed
	return nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// LoadEnv loads one or more .env files into the process environment without
// overriding variables that are already set. With no paths it loads ./.env.
// Values already cached by Load are not affected.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// ResetCache forgets every parsed configuration. Intended for tests.
func ResetCache() {
	loaded.mu.Lock()
	defer loaded.mu.Unlock()
	clear(loaded.values)
}

// ForceReloadConfig parses the environment into v again and replaces the
// cached value for its type. On failure the cache is left untouched.
func ForceReloadConfig[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	loaded.mu.Lock()
	loaded.values[reflect.TypeOf((*T)(nil)).Elem()] = parsed
	loaded.mu.Unlock()

	*v = parsed
	return nil
}
