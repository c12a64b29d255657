package envcfg

import (
	"context"
	"fmt"
	"maps"
	"os"
	"strings"
)

// Loader provides an isolated, mutable collection of environment variables.
// Unlike directly modifying os.Setenv, a Loader maintains its own environment
// map that can be manipulated independently of the process environment.
//
// Layering is done by loading multiple sources in priority order:
//
//	ldr := envcfg.NewLoader()
//	ldr.LoadEnv()              // base: current process environment
//	_, _ = ldr.LoadFile(".env") // overrides from a file
//	ldr.Set("LOG_LEVEL", "debug")
//
//	ctx := ldr.EnhanceContext(context.Background())
//	level := envcfg.SlogLevel(ctx, "LOG_LEVEL").ValueOrElse(slog.LevelInfo)
//
// Loader is NOT thread-safe. The loader never calls os.Setenv; the process
// environment is left untouched.
type Loader struct {
	environment map[string]string
}

// NewLoader creates a new empty Loader with no environment variables.
// Use LoadEnv to include the current process environment, or LoadFile to
// load from configuration files.
func NewLoader() *Loader {
	return &Loader{
		environment: make(map[string]string),
	}
}

// LoadEnv snapshots the current process environment into the loader,
// overriding any existing variables with the same key.
func (l *Loader) LoadEnv() {
	for _, line := range os.Environ() {
		// Split on first equals sign to allow values to contain '='
		parts := strings.SplitN(line, "=", 2) //nolint:mnd // 2 is required for SplitN to split on first '='
		if len(parts) != 2 {                  //nolint:mnd // len must be 2 for valid KEY=VALUE format
			continue
		}

		l.environment[parts[0]] = parts[1]
	}
}

// LoadFile reads environment variables from a file and merges them into the
// loader, overriding existing keys. It returns the number of variables loaded.
// If the file can't be read or parsed, the loader's state is unchanged.
//
// See LoadEnvFile for the supported file formats.
func (l *Loader) LoadFile(filename string) (int64, error) {
	env, err := LoadEnvFile(filename)
	if err != nil {
		return 0, err
	}

	num := len(env)

	maps.Copy(l.environment, env)

	return int64(num), nil
}

// Get retrieves the value of an environment variable from the loader.
// Returns the value and true if the key exists, or an empty string and
// false if not found.
func (l *Loader) Get(key string) (string, bool) {
	val, found := l.environment[key]

	return val, found
}

// Set adds or updates an environment variable in the loader.
func (l *Loader) Set(key string, value string) {
	l.environment[key] = value
}

// SetAll adds or updates multiple environment variables from a map.
func (l *Loader) SetAll(env map[string]string) {
	for k, v := range env {
		l.Set(k, v)
	}
}

// Delete removes an environment variable from the loader. If the key
// doesn't exist, this is a no-op.
func (l *Loader) Delete(key string) {
	delete(l.environment, key)
}

// Contains checks if an environment variable exists in the loader,
// regardless of its value.
func (l *Loader) Contains(key string) bool {
	_, found := l.environment[key]

	return found
}

// Keys returns a slice of all environment variable names in the loader.
// The order of keys is not guaranteed.
func (l *Loader) Keys() []string {
	keys := make([]string, 0, len(l.environment))

	for k := range l.environment {
		keys = append(keys, k)
	}

	return keys
}

// AsMap returns a copy of the loader's environment as a map. The returned
// map is independent of the loader.
func (l *Loader) AsMap() map[string]string {
	return maps.Clone(l.environment)
}

// AsSlice returns the loader's environment as a slice of "KEY=VALUE"
// strings, compatible with exec.Cmd.Env.
func (l *Loader) AsSlice() []string {
	out := make([]string, 0, len(l.environment))

	for k := range l.environment {
		out = append(out, fmt.Sprintf("%s=%s", k, l.environment[k]))
	}

	return out
}

// EnhanceContext creates a new context with all loader environment variables
// as overrides. Readers in this package will use the loader's environment
// instead of the process environment when called with this context.
func (l *Loader) EnhanceContext(ctx context.Context) context.Context {
	return WithOverrides(ctx, l.AsMap())
}
