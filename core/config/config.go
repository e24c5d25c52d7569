package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> any (value of the struct type)
)

// loadDotenv loads .env from the working directory once.
// A missing file is not an error; existing environment variables win.
func loadDotenv() {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// Load populates cfg from the environment. cfg must be a non-nil pointer to a
// struct. The first successful load of each type is cached and copied into
// later calls.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	typ := reflect.TypeOf(cfg).Elem()
	if typ.Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %s", ErrNotStruct, typ.Kind())
	}

	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	loadDotenv()

	var fresh T
	if err := env.Parse(&fresh); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	actual, _ := cache.LoadOrStore(typ, fresh)
	*cfg = actual.(T)
	return nil
}

// MustLoad is like Load but panics on error. Intended for application startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops every cached configuration. Used by tests.
func Reset() {
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}
