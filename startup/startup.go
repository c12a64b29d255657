// Package startup provides utilities for application initialization and
// environment configuration.
//
// The primary use case is loading environment variables from files during
// application startup, which is useful for local development, container
// initialization, and testing scenarios.
package startup

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lanternworks/lantern-common/envcfg"
)

// Option is a functional option for configuring environment loading behavior.
type Option func(*options)

// options holds the configuration for environment variable loading.
type options struct {
	// allowOverride determines whether variables loaded from files can
	// override existing process environment variables. When false (default),
	// the process environment takes precedence.
	allowOverride bool
}

// WithAllowOverride configures whether loaded environment variables can
// override existing process environment variables.
//
// When allowOverride is true, file values shadow process variables with the
// same name. When false (default), existing variables keep their values and
// files only contribute names the process does not define.
func WithAllowOverride(allowOverride bool) Option {
	return func(o *options) {
		o.allowOverride = allowOverride
	}
}

// ConfigureEnvironment loads environment variables from the files named by
// ENV_FILE (a semicolon-separated list of paths) and returns a context whose
// envcfg readers see the loaded values. The process environment is never
// modified; file values are layered as context overrides.
//
// If ENV_FILE is not set or names no files, the context is returned
// unchanged.
func ConfigureEnvironment(ctx context.Context, opts ...Option) (context.Context, error) {
	raw := envcfg.String(ctx, "ENV_FILE").ValueOrElse("")

	return ConfigureEnvironmentFromFiles(ctx, splitFileList(raw), opts...)
}

// ConfigureEnvironmentFromFiles loads environment variables from the given
// files and returns a context whose envcfg readers see them. Later files
// override earlier ones.
func ConfigureEnvironmentFromFiles(ctx context.Context, envFiles []string, opts ...Option) (context.Context, error) {
	if len(envFiles) == 0 {
		// Nothing to do - no files specified
		return ctx, nil
	}

	cfg := getOptions(opts)

	loader := envcfg.NewLoader()

	for _, file := range envFiles {
		_, err := loader.LoadFile(file)
		if err != nil {
			return ctx, fmt.Errorf("loading environment variables from file %q: %w", file, err)
		}
	}

	if !cfg.allowOverride {
		// Process variables keep precedence: drop file values the process
		// already defines so reads fall through to the real environment.
		for _, key := range loader.Keys() {
			if _, exists := os.LookupEnv(key); exists {
				loader.Delete(key)
			}
		}
	}

	return loader.EnhanceContext(ctx), nil
}

// splitFileList splits the ENV_FILE value on semicolons, dropping empty and
// whitespace-only entries.
func splitFileList(raw string) []string {
	parts := strings.Split(raw, ";")

	out := make([]string, 0, len(parts))

	for _, s := range parts {
		s = strings.TrimSpace(s)
		if len(s) == 0 {
			continue
		}

		out = append(out, s)
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// getOptions applies the provided functional options and returns the
// resulting configuration. Nil options are safely ignored.
func getOptions(opts []Option) *options {
	cfg := &options{}

	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	return cfg
}
