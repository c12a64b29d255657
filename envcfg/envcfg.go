// Package envcfg reads typed configuration values from the process
// environment. Every reader takes a context first, so tests and embedded
// callers can inject values with WithOverride instead of mutating the
// process environment.
package envcfg

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// get returns a Reader for the given environment variable key. Context
// overrides win over the process environment.
func get(ctx context.Context, key string) Reader[string] {
	if val, ok := getOverride(ctx, key); ok {
		return Reader[string]{
			key:     key,
			present: true,
			value:   val,
		}
	}

	val, ok := os.LookupEnv(key)

	return Reader[string]{
		key:     key,
		present: ok,
		value:   val,
	}
}

// NewReader returns a Reader for the given raw data. If you feel like
// you want to branch out from using the environment variables directly,
// this will provide the same functionality - except you need to provide
// the initial values yourself.
func NewReader[T any](key string, present bool, err error, value T) Reader[T] {
	return Reader[T]{
		key:     key,
		present: present,
		value:   value,
		err:     err,
	}
}

func NoValue[T any]() Reader[T] {
	return Reader[T]{
		key:     "",
		present: false,
	}
}

// String returns a Reader for the given environment variable key.
func String(ctx context.Context, key string, opts ...Option[string]) Reader[string] {
	rdr := get(ctx, key)
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

func Bool(ctx context.Context, key string, opts ...Option[bool]) Reader[bool] {
	rdr := Map(get(ctx, key), parseBool)
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

func Int[I Intish](ctx context.Context, key string, opts ...Option[I]) Reader[I] {
	rdr := Map(Map(get(ctx, key), parseInt64), castNumeric[int64, I])
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

func Uint[U Uintish](ctx context.Context, key string, opts ...Option[U]) Reader[U] {
	rdr := Map(Map(get(ctx, key), parseUint64), castNumeric[uint64, U])
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

func Float64(ctx context.Context, key string, opts ...Option[float64]) Reader[float64] {
	rdr := Map(get(ctx, key), parseFloat64)
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

func Duration(ctx context.Context, key string, opts ...Option[time.Duration]) Reader[time.Duration] {
	rdr := Map(get(ctx, key), parseDuration)
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// SlogLevel returns a Reader for the given environment variable key.
func SlogLevel(ctx context.Context, key string, opts ...Option[slog.Level]) Reader[slog.Level] {
	rdr := Map(Map(Map(get(ctx, key), trimSpace), toLower), parseSlogLevel)
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}
