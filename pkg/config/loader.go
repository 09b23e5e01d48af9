package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// entry holds the cached value for one configuration type together with the
// sync.Once guarding its first parse.
type entry struct {
	once   sync.Once
	value  any
	loaded bool
}

var (
	mu      sync.Mutex
	entries = make(map[string]*entry)

	dotenvOnce sync.Once
)

// Load populates the provided configuration struct from environment
// variables. Each unique configuration type is parsed only once per process;
// subsequent calls for the same type receive the cached value.
//
// The first call loads the default .env file if one exists, then parses
// environment variables into the struct based on `env` field tags.
//
// Example:
//
//	type RedisConfig struct {
//		URL         string        `env:"REDIS_URL,required"`
//		Retention   time.Duration `env:"REDIS_RETENTION" envDefault:"48h"`
//	}
//
//	var cfg RedisConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// Missing .env files are fine, real env vars still apply.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	e := entryFor[T]()

	var parseErr error
	e.once.Do(func() {
		if err := env.Parse(v); err != nil {
			parseErr = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = *v
		e.loaded = true
	})
	if parseErr != nil {
		return parseErr
	}

	if !e.loaded {
		// The first Do for this type failed, so nothing was cached.
		return ErrConfigNotLoaded
	}
	*v = e.value.(T)
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// Use it for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func entryFor[T any]() *entry {
	name := typeName[T]()
	mu.Lock()
	defer mu.Unlock()
	e, ok := entries[name]
	if !ok {
		e = &entry{}
		entries[name] = e
	}
	return e
}

func typeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
