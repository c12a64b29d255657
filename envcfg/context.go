package envcfg

import (
	"context"

	"github.com/lanternworks/lantern-common/contexts"
)

type envContextKey string

// WithOverride returns a context that carries a value for the given key.
// Readers in this package consult overrides before the process environment,
// so tests and embedded callers can configure values without os.Setenv.
func WithOverride(ctx context.Context, key string, value string) context.Context {
	return contexts.WithValue[envContextKey, string](ctx, envContextKey(key), value)
}

// WithOverrides applies WithOverride for every entry in env.
func WithOverrides(ctx context.Context, env map[string]string) context.Context {
	for key, value := range env {
		ctx = WithOverride(ctx, key, value)
	}

	return ctx
}

func getOverride(ctx context.Context, key string) (string, bool) {
	return contexts.GetValue[envContextKey, string](ctx, envContextKey(key))
}
