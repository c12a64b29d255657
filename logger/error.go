package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// AnnotateError attaches structured logging attributes to an error. The
// attributes travel with the error up the call stack, and are expanded into
// the log record when the error is eventually logged through a logger from
// this package.
//
// This lets the site that detected a failure record what it knew (the state
// label, the hook that failed, the event kind) without forcing every caller
// to thread those values through its own return path.
//
// Example:
//
//	if err := active.OnStart(ctx, res); err != nil {
//	    return logger.AnnotateError(err, "state", active.Label(), "hook", "on_start")
//	}
//
// Args are interpreted the way slog interprets them: alternating keys and
// values, or slog.Attr values. Returns nil if err is nil, and err unchanged
// if no args are given.
func AnnotateError(err error, args ...any) error {
	if err == nil {
		return nil
	}

	if len(args) == 0 {
		return err
	}

	// A throwaway record gives us slog's args-to-attrs conversion.
	r := slog.NewRecord(time.Now(), slog.LevelDebug, "", 0)
	r.Add(args...)

	var errAttrs []slog.Attr

	r.Attrs(func(attr slog.Attr) bool {
		errAttrs = append(errAttrs, attr)

		return true
	})

	return &slogError{
		err:   err,
		attrs: errAttrs,
	}
}

// slogError is an error carrying slog attributes. It wraps the original
// error, so errors.Is and errors.As continue to see the full chain.
type slogError struct {
	err   error
	attrs []slog.Attr
}

func (s *slogError) Error() string {
	return s.err.Error()
}

func (s *slogError) Unwrap() error {
	return s.err
}

var _ error = (*slogError)(nil)

// slogErrorLogger is a slog.Handler decorator that expands annotated errors.
// When a record carries an error value created via AnnotateError, the
// embedded attributes are lifted into the record itself and the error attr
// is replaced with the unannotated error, so the output stays readable.
// Joined errors are flattened into indexed attrs ("error[0]", "error[1]")
// with the annotations of every member extracted.
//
// ConfigureLoggingWithOptions installs this decorator in front of every
// configured handler.
type slogErrorLogger struct {
	inner slog.Handler
}

var _ slog.Handler = (*slogErrorLogger)(nil)

func (s *slogErrorLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return s.inner.Enabled(ctx, level)
}

// Handle rewrites records that carry annotated errors. Records without any
// annotations pass through untouched.
func (s *slogErrorLogger) Handle(ctx context.Context, record slog.Record) error {
	var (
		baseAttrs []slog.Attr
		errAttrs  []slog.Attr
	)

	record.Attrs(func(attr slog.Attr) bool {
		val := attr.Value.Any()

		err, ok := val.(error)
		if !ok {
			baseAttrs = append(baseAttrs, attr)

			return true
		}

		leaves, extracted := flattenErrors(err)
		if len(extracted) == 0 {
			baseAttrs = append(baseAttrs, attr)

			return true
		}

		if len(leaves) == 1 {
			baseAttrs = append(baseAttrs, slog.Attr{
				Key:   attr.Key,
				Value: slog.AnyValue(leaves[0]),
			})
		} else {
			for i, leaf := range leaves {
				baseAttrs = append(baseAttrs, slog.Attr{
					Key:   fmt.Sprintf("%s[%d]", attr.Key, i),
					Value: slog.AnyValue(leaf),
				})
			}
		}

		errAttrs = append(errAttrs, extracted...)

		return true
	})

	if len(errAttrs) > 0 {
		r := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
		r.AddAttrs(baseAttrs...)
		r.AddAttrs(errAttrs...)

		return s.inner.Handle(ctx, r)
	}

	return s.inner.Handle(ctx, record)
}

func (s *slogErrorLogger) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &slogErrorLogger{
		inner: s.inner.WithAttrs(attrs),
	}
}

func (s *slogErrorLogger) WithGroup(name string) slog.Handler {
	return &slogErrorLogger{
		inner: s.inner.WithGroup(name),
	}
}

// flattenErrors strips annotation layers from an error and flattens joined
// errors into a flat list of leaves. It returns the leaves alongside every
// annotation attribute gathered on the way down.
func flattenErrors(err error) ([]error, []slog.Attr) {
	unwrapped, attrs := collectAnnotations(err)

	joined, ok := unwrapped.(interface{ Unwrap() []error })
	if !ok {
		return []error{unwrapped}, attrs
	}

	members := joined.Unwrap()
	leaves := make([]error, 0, len(members))

	for _, member := range members {
		memberLeaves, memberAttrs := flattenErrors(member)
		leaves = append(leaves, memberLeaves...)
		attrs = append(attrs, memberAttrs...)
	}

	return leaves, attrs
}

// collectAnnotations peels annotation layers off the front of a wrap chain,
// gathering their attributes in outermost-first order. It stops at the first
// non-annotated error.
func collectAnnotations(err error) (error, []slog.Attr) {
	var attrs []slog.Attr

	for {
		se, ok := err.(*slogError) //nolint:errorlint // peeling direct layers only
		if !ok {
			return err, attrs
		}

		attrs = append(attrs, se.attrs...)
		err = se.err
	}
}
